//go:build windows

package etw

import (
	"errors"
	"fmt"

	plog "github.com/phuslu/log"
	"golang.org/x/sys/windows"

	"etw_minilog/internal/logger"
	"etw_minilog/internal/windowsapi"
)

// Session owns one live event tracing session: the controller handle plus
// the control block it was started with.
type Session struct {
	name   string
	nameW  *uint16
	handle windowsapi.TraceHandle
	props  *windowsapi.TracePropertiesBuffer
	log    plog.Logger
}

// ValidateSessionName converts name for platform use. It returns an error
// for names that cannot be represented (interior NUL) and panics if the name
// overflows the control block's reserved region, which is a programmer
// error. Neither case touches the platform.
func ValidateSessionName(name string) ([]uint16, error) {
	nameUTF16, err := windows.UTF16FromString(name)
	if err != nil {
		return nil, fmt.Errorf("session name: %w", err)
	}
	if len(nameUTF16) > windowsapi.SessionNameCap {
		panic(fmt.Sprintf("etw: session name exceeds %d UTF-16 units: %q", windowsapi.SessionNameCap, name))
	}
	return nameUTF16, nil
}

// StartSession starts a session under name with identity id, flushing to
// logFilePath with bufferSizeKB kilobytes per buffer.
//
// Session names are a scarce systemwide resource (the platform caps how many
// sessions of this class can be live at once), and a crashed prior run can
// leak one under the same name. On ERROR_ALREADY_EXISTS the stale session is
// stopped by name and the start retried exactly once; any other failure, or
// a failure on the retry, is returned.
//
// Panics if name does not fit the control block's reserved region. That is a
// programmer error and is caught before any platform call.
func StartSession(id windows.GUID, name, logFilePath string, bufferSizeKB uint32) (*Session, error) {
	nameUTF16, err := ValidateSessionName(name)
	if err != nil {
		return nil, err
	}

	s := &Session{
		name:  name,
		nameW: &nameUTF16[0],
		log:   logger.NewSessionLogger("etw_session", name),
	}

	props := windowsapi.NewTraceProperties(id, bufferSizeKB, logFilePath)
	err = windowsapi.StartTrace(&s.handle, s.nameW, props)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		s.log.Warn().Msg("Session name already in use, stopping stale session and retrying")
		Metrics().SessionStartRetries.Inc()

		// StartTrace scribbles on the control block, so the stop and the
		// retry each get a freshly packed one.
		stopProps := windowsapi.NewTraceProperties(id, bufferSizeKB, logFilePath)
		if stopErr := windowsapi.ControlTrace(0, s.nameW, stopProps, windowsapi.EVENT_TRACE_CONTROL_STOP); stopErr != nil {
			s.log.Warn().Err(stopErr).Msg("Stopping stale session failed")
		}

		props = windowsapi.NewTraceProperties(id, bufferSizeKB, logFilePath)
		err = windowsapi.StartTrace(&s.handle, s.nameW, props)
	}
	if err != nil {
		return nil, fmt.Errorf("starting session %q: %w", name, err)
	}

	s.props = props
	Metrics().SessionsStarted.Inc()
	Metrics().OpenSessions.Inc()
	s.log.Debug().Msg("Session started")
	return s, nil
}

// Name returns the session name.
func (s *Session) Name() string { return s.name }

// Handle returns the controller handle for the live session.
func (s *Session) Handle() windowsapi.TraceHandle { return s.handle }

// EnableProvider makes this session capture events from the provider
// identified by providerID. The returned EnabledProvider must be disabled
// no later than this session is stopped.
func (s *Session) EnableProvider(providerID windows.GUID) (*EnabledProvider, error) {
	return enableProvider(s.handle, providerID, s.name)
}

// Stop stops the session. Teardown is best-effort: failures are logged,
// never returned, so callers can unwind unconditionally.
func (s *Session) Stop() {
	if err := windowsapi.ControlTrace(s.handle, nil, s.props, windowsapi.EVENT_TRACE_CONTROL_STOP); err != nil {
		s.log.Warn().Err(err).Msg("Stopping session failed")
	} else {
		s.log.Debug().Msg("Session stopped")
	}
	Metrics().OpenSessions.Dec()
}
