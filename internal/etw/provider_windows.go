//go:build windows

package etw

import (
	"fmt"
	"runtime"

	plog "github.com/phuslu/log"
	"golang.org/x/sys/windows"

	"etw_minilog/internal/logger"
	"etw_minilog/internal/windowsapi"
)

// Provider owns one live event source registration. Events are written
// through its registration handle.
type Provider struct {
	guid   windows.GUID
	handle windowsapi.RegHandle
	log    plog.Logger
}

// RegisterProvider registers id as an event source with the platform.
func RegisterProvider(id windows.GUID) (*Provider, error) {
	p := &Provider{
		guid: id,
		log:  logger.NewLoggerWithContext("etw_provider"),
	}
	if err := windowsapi.EventRegister(&p.guid, &p.handle); err != nil {
		return nil, fmt.Errorf("registering provider: %w", err)
	}
	p.log.Debug().Str("guid", id.String()).Msg("Provider registered")
	return p, nil
}

// GUID returns the provider identity. It is fixed for the provider's
// lifetime.
func (p *Provider) GUID() windows.GUID { return p.guid }

// Write emits payload verbatim as one event: a fixed descriptor paired with
// exactly one data block over the payload bytes. One call produces exactly
// one record, original byte length preserved, including length zero.
func (p *Provider) Write(payload []byte) error {
	descriptor := windowsapi.EventDescriptor{Id: 1, Version: 1}
	data := windowsapi.NewEventDataDescriptor(payload)
	err := windowsapi.EventWrite(p.handle, &descriptor, 1, &data)
	runtime.KeepAlive(payload)
	if err != nil {
		Metrics().WriteErrors.Inc()
		return fmt.Errorf("writing event: %w", err)
	}
	Metrics().RecordsWritten.Inc()
	return nil
}

// Close unregisters the provider. Best-effort: failures are logged, never
// returned.
func (p *Provider) Close() {
	if err := windowsapi.EventUnregister(p.handle); err != nil {
		p.log.Warn().Err(err).Msg("Unregistering provider failed")
	}
}
