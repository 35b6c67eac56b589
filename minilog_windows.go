//go:build windows

package minilog

import (
	"fmt"
	"os"
	"path/filepath"

	plog "github.com/phuslu/log"
	"golang.org/x/sys/windows"

	"etw_minilog/internal/etw"
	"etw_minilog/internal/logger"
	"etw_minilog/internal/windowsapi"
)

// LogFileName is the name of the trace file created inside the output
// folder.
const LogFileName = "log.etl"

// MiniLog owns an event provider, a tracing session flushing to a file, and
// the enablement binding the two. A MiniLog is either fully constructed and
// usable or never comes into existence; there is no partial state.
//
// One MiniLog drives one session synchronously and is not safe for
// concurrent use. Multiple instances may coexist in a process, each under
// its own session name, up to the platform's cap on live private sessions
// per process (8 since Windows 10 1703, 2 before); hitting the cap surfaces
// as a construction error.
type MiniLog struct {
	provider *etw.Provider
	session  *etw.Session
	enabled  *etw.EnabledProvider
	log      plog.Logger
	closed   bool
}

// New builds a logger writing to <outputFolder>/log.etl. The folder is
// created if missing. bufferSizeKB is the per-buffer size of the session's
// buffer ring, clamped to the platform maximum of 16384 KB.
//
// A fresh identity is generated and used for both the provider and the
// session. Construction order: register the provider, start the session,
// enable the provider inside it (a private in-process session wants its
// provider registered before it starts). On any failure the parts already
// built are torn down in reverse, so nothing leaks.
//
// Panics if sessionName overflows the control block's reserved region; that
// is a programmer error, caught before anything is created.
func New(sessionName, outputFolder string, bufferSizeKB uint32) (*MiniLog, error) {
	if _, err := etw.ValidateSessionName(sessionName); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputFolder, 0o755); err != nil {
		return nil, fmt.Errorf("creating output folder: %w", err)
	}

	id, err := windowsapi.NewGUID()
	if err != nil {
		return nil, err
	}

	provider, err := etw.RegisterProvider(id)
	if err != nil {
		return nil, err
	}

	session, err := etw.StartSession(id, sessionName,
		filepath.Join(outputFolder, LogFileName), bufferSizeKB)
	if err != nil {
		provider.Close()
		return nil, err
	}

	enabled, err := session.EnableProvider(id)
	if err != nil {
		session.Stop()
		provider.Close()
		return nil, err
	}

	l := &MiniLog{
		provider: provider,
		session:  session,
		enabled:  enabled,
		log:      logger.NewSessionLogger("minilog", sessionName),
	}
	l.log.Info().Str("provider", id.String()).Str("folder", outputFolder).Msg("Logger ready")
	return l, nil
}

// Write emits payload as one record: exactly one call, exactly one record on
// disk, byte length preserved. There is no framing, batching or buffering
// here beyond the session's own buffer ring.
func (l *MiniLog) Write(payload []byte) error {
	return l.provider.Write(payload)
}

// ProviderID returns the identity this logger's records are written under.
// Consumers reading a shared log match on it to pick out this source.
func (l *MiniLog) ProviderID() windows.GUID {
	return l.provider.GUID()
}

// Close tears the three resources down in the required order: disable the
// provider in the session, stop the session, unregister the provider. Each
// step is best-effort with failures logged, so Close never fails and is safe
// to call more than once.
func (l *MiniLog) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.enabled.Disable()
	l.session.Stop()
	l.provider.Close()
	l.log.Debug().Msg("Logger closed")
}
