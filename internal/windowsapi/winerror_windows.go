//go:build windows

package windowsapi

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/windows"
)

// Error is a failed platform call. It keeps the raw win32 code, resolves the
// system message text for it on demand, and carries the call site context.
type Error struct {
	Code    uint32
	Context string
}

func (e *Error) Error() string {
	// syscall.Errno consults the system message table for codes it has no
	// canned text for, so every code gets at least some description.
	return fmt.Sprintf("%s: %s (code %#x)", e.Context, syscall.Errno(e.Code).Error(), e.Code)
}

// Unwrap exposes the underlying Errno so callers can match specific codes
// with errors.Is.
func (e *Error) Unwrap() error {
	return syscall.Errno(e.Code)
}

// CheckResult turns the win32 result of a platform call into either nil, on
// ERROR_SUCCESS, or an *Error describing the failure in the given context.
func CheckResult(code uint32, context string) error {
	if syscall.Errno(code) == windows.ERROR_SUCCESS {
		return nil
	}
	return &Error{Code: code, Context: context}
}
