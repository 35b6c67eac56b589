//go:build windows

package windowsapi

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Raw advapi32 entry points for the event tracing producer path.
// Every wrapper funnels the returned win32 code through CheckResult so
// callers get one error shape carrying the code, the system message and
// the call site context.

var (
	advapi32 = windows.NewLazySystemDLL("advapi32.dll")

	procStartTraceW     = advapi32.NewProc("StartTraceW")
	procControlTraceW   = advapi32.NewProc("ControlTraceW")
	procEnableTraceEx2  = advapi32.NewProc("EnableTraceEx2")
	procEventRegister   = advapi32.NewProc("EventRegister")
	procEventUnregister = advapi32.NewProc("EventUnregister")
	procEventWrite      = advapi32.NewProc("EventWrite")
)

// TraceHandle is a TRACEHANDLE, the controller-side handle to a session.
type TraceHandle uint64

// RegHandle is a REGHANDLE, the handle to a registered event provider.
type RegHandle uint64

// StartTrace starts a session named name using the given control block and
// stores the session handle in handle.
func StartTrace(handle *TraceHandle, name *uint16, props *TracePropertiesBuffer) error {
	r1, _, _ := procStartTraceW.Call(
		uintptr(unsafe.Pointer(handle)),
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(&props.Properties)))
	return CheckResult(uint32(r1), "StartTrace")
}

// ControlTrace issues a session control request (stop, query, update).
// The session may be addressed by handle or, with handle zero, by name.
func ControlTrace(handle TraceHandle, name *uint16, props *TracePropertiesBuffer, controlCode uint32) error {
	r1, _, _ := procControlTraceW.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(&props.Properties)),
		uintptr(controlCode))
	return CheckResult(uint32(r1), "ControlTrace")
}

// EnableTraceEx2 enables or disables the provider identified by guid inside
// the session identified by handle. Keyword filtering is not used here.
func EnableTraceEx2(handle TraceHandle, guid *windows.GUID, controlCode uint32, level uint8) error {
	r1, _, _ := procEnableTraceEx2.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(guid)),
		uintptr(controlCode),
		uintptr(level),
		0, // MatchAnyKeyword
		0, // MatchAllKeyword
		0, // Timeout: asynchronous
		0) // EnableParameters
	return CheckResult(uint32(r1), "EnableTraceEx2")
}

// EventRegister registers guid as an event provider and stores the
// registration handle in handle. No enable callback is installed.
func EventRegister(guid *windows.GUID, handle *RegHandle) error {
	r1, _, _ := procEventRegister.Call(
		uintptr(unsafe.Pointer(guid)),
		0,
		0,
		uintptr(unsafe.Pointer(handle)))
	return CheckResult(uint32(r1), "EventRegister")
}

// EventUnregister removes the provider registration.
func EventUnregister(handle RegHandle) error {
	r1, _, _ := procEventUnregister.Call(uintptr(handle))
	return CheckResult(uint32(r1), "EventUnregister")
}

// EventWrite writes one event built from descriptor and count user data
// descriptors through the registration handle.
func EventWrite(handle RegHandle, descriptor *EventDescriptor, count uint32, data *EventDataDescriptor) error {
	r1, _, _ := procEventWrite.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(descriptor)),
		uintptr(count),
		uintptr(unsafe.Pointer(data)))
	return CheckResult(uint32(r1), "EventWrite")
}

// NewGUID asks the platform for a fresh globally unique identifier.
func NewGUID() (windows.GUID, error) {
	guid, err := windows.GenerateGUID()
	if err != nil {
		return windows.GUID{}, fmt.Errorf("CoCreateGuid: %w", err)
	}
	return guid, nil
}
