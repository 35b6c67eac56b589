//go:build windows

package windowsapi

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Logging mode and control constants from evntrace.h.
const (
	EVENT_TRACE_FILE_MODE_SEQUENTIAL = 0x00000001
	EVENT_TRACE_PRIVATE_LOGGER_MODE  = 0x00000800
	EVENT_TRACE_PRIVATE_IN_PROC      = 0x00020000

	WNODE_FLAG_TRACED_GUID = 0x00020000

	EVENT_TRACE_CONTROL_STOP = 1

	EVENT_CONTROL_CODE_DISABLE_PROVIDER = 0
	EVENT_CONTROL_CODE_ENABLE_PROVIDER  = 1

	TRACE_LEVEL_INFORMATION = 4
)

// MaxBufferSizeKB is the largest per-buffer size ETW accepts, in kilobytes.
const MaxBufferSizeKB = 16384

// Capacities of the trailing string regions, in UTF-16 units.
const (
	SessionNameCap = 256
	LogFilePathCap = 1024
)

// WnodeHeader is WNODE_HEADER, the leading part of EVENT_TRACE_PROPERTIES.
type WnodeHeader struct {
	BufferSize        uint32
	ProviderId        uint32
	HistoricalContext uint64
	TimeStamp         int64
	Guid              windows.GUID
	ClientContext     uint32
	Flags             uint32
}

// EventTraceProperties is EVENT_TRACE_PROPERTIES.
type EventTraceProperties struct {
	Wnode               WnodeHeader
	BufferSize          uint32
	MinimumBuffers      uint32
	MaximumBuffers      uint32
	MaximumFileSize     uint32
	LogFileMode         uint32
	FlushTimer          uint32
	EnableFlags         uint32
	AgeLimit            int32
	NumberOfBuffers     uint32
	FreeBuffers         uint32
	EventsLost          uint32
	BuffersWritten      uint32
	LogBuffersLost      uint32
	RealTimeBuffersLost uint32
	LoggerThreadId      uintptr
	LogFileNameOffset   uint32
	LoggerNameOffset    uint32
}

// TracePropertiesBuffer is the session control block handed to StartTrace
// and ControlTrace. EVENT_TRACE_PROPERTIES requires the session name and log
// file path to live in trailing storage after the fixed fields, addressed by
// byte offsets from the start of the allocation rather than by pointer, so
// the whole thing is one contiguous struct.
type TracePropertiesBuffer struct {
	Properties  EventTraceProperties
	SessionName [SessionNameCap]uint16
	LogFilePath [LogFilePathCap]uint16
}

// NewTraceProperties packs a control block for a private, in-process session
// that writes sequentially to logFilePath. The requested per-buffer size is
// clamped to [0, MaxBufferSizeKB] kilobytes. Offsets to the trailing regions
// are computed from the struct's own layout.
//
// The session name region is left zeroed; StartTrace fills it in.
//
// It panics if logFilePath does not fit its trailing region, or contains a
// NUL. Both are programmer errors, caught before any platform call.
func NewTraceProperties(sessionID windows.GUID, bufferSizeKB uint32, logFilePath string) *TracePropertiesBuffer {
	p := &TracePropertiesBuffer{} // zero value: trailing regions start zero-filled

	p.Properties.Wnode.BufferSize = uint32(unsafe.Sizeof(*p))
	p.Properties.Wnode.Guid = sessionID
	p.Properties.Wnode.ClientContext = 1 // QPC clock resolution
	p.Properties.Wnode.Flags = WNODE_FLAG_TRACED_GUID

	p.Properties.LoggerNameOffset = uint32(unsafe.Offsetof(p.SessionName))
	p.Properties.LogFileNameOffset = uint32(unsafe.Offsetof(p.LogFilePath))

	p.Properties.LogFileMode = EVENT_TRACE_FILE_MODE_SEQUENTIAL |
		EVENT_TRACE_PRIVATE_LOGGER_MODE |
		EVENT_TRACE_PRIVATE_IN_PROC

	p.Properties.BufferSize = min(bufferSizeKB, MaxBufferSizeKB)

	p.SetLogFilePath(logFilePath)
	return p
}

// SetLogFilePath overwrites the log file path region, clearing any previous
// contents so a shorter path never leaves stale units behind. Panics if the
// path does not fit or contains a NUL.
func (p *TracePropertiesBuffer) SetLogFilePath(logFilePath string) {
	u, err := windows.UTF16FromString(logFilePath)
	if err != nil {
		panic(fmt.Sprintf("windowsapi: log file path contains NUL: %q", logFilePath))
	}
	if len(u) > len(p.LogFilePath) {
		panic(fmt.Sprintf("windowsapi: log file path exceeds %d UTF-16 units: %q", LogFilePathCap, logFilePath))
	}
	clear(p.LogFilePath[:])
	copy(p.LogFilePath[:], u)
}
