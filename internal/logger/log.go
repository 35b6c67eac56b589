package logger

import (
	"github.com/phuslu/log"
)

// NewLoggerWithContext creates a new logger by copying the global
// DefaultLogger and adding component-specific context. Callers that want a
// different level or writer configure log.DefaultLogger before constructing
// any component.
func NewLoggerWithContext(component string) log.Logger {
	bl := &log.DefaultLogger
	return log.Logger{
		Level:        bl.Level,
		Caller:       0, // Disable caller for component loggers to avoid confusion
		TimeField:    bl.TimeField,
		TimeFormat:   bl.TimeFormat,
		TimeLocation: bl.TimeLocation,
		Writer:       bl.Writer,
		Context:      log.NewContext(bl.Context).Str("component", component).Value(),
	}
}

// NewSessionLogger returns a component logger additionally tagged with the
// tracing session name, so coexisting sessions stay distinguishable.
func NewSessionLogger(component, session string) log.Logger {
	l := NewLoggerWithContext(component)
	l.Context = log.NewContext(l.Context).Str("session", session).Value()
	return l
}
