//go:build windows

package etw

import (
	"fmt"

	plog "github.com/phuslu/log"
	"golang.org/x/sys/windows"

	"etw_minilog/internal/logger"
	"etw_minilog/internal/windowsapi"
)

// EnabledProvider is the relationship "this provider's events are captured
// by this session". It holds non-owning copies of the session handle and the
// provider identity, so it must be disabled no later than either side is
// torn down.
type EnabledProvider struct {
	session windowsapi.TraceHandle
	guid    windows.GUID
	log     plog.Logger
}

func enableProvider(session windowsapi.TraceHandle, providerID windows.GUID, sessionName string) (*EnabledProvider, error) {
	e := &EnabledProvider{
		session: session,
		guid:    providerID,
		log:     logger.NewSessionLogger("etw_enablement", sessionName),
	}
	err := windowsapi.EnableTraceEx2(session, &e.guid,
		windowsapi.EVENT_CONTROL_CODE_ENABLE_PROVIDER,
		windowsapi.TRACE_LEVEL_INFORMATION)
	if err != nil {
		return nil, fmt.Errorf("enabling provider in session %q: %w", sessionName, err)
	}
	e.log.Debug().Str("guid", providerID.String()).Msg("Provider enabled in session")
	return e, nil
}

// Disable issues the matching disable call. Best-effort: failures are
// logged, never returned.
func (e *EnabledProvider) Disable() {
	err := windowsapi.EnableTraceEx2(e.session, &e.guid,
		windowsapi.EVENT_CONTROL_CODE_DISABLE_PROVIDER,
		windowsapi.TRACE_LEVEL_INFORMATION)
	if err != nil {
		e.log.Warn().Err(err).Msg("Disabling provider failed")
	}
}
