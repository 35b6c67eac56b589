//go:build windows

package windowsapi

import (
	"strings"
	"testing"
	"unsafe"

	"golang.org/x/sys/windows"
)

func TestTracePropertiesLayout(t *testing.T) {
	sessionID := windows.GUID{Data1: 0xdeadbeef, Data2: 0x1234}
	props := NewTraceProperties(sessionID, 4, `C:\temp\log.etl`)

	var zero TracePropertiesBuffer
	if got, want := props.Properties.Wnode.BufferSize, uint32(unsafe.Sizeof(zero)); got != want {
		t.Errorf("Wnode.BufferSize = %d, want %d (full block incl. trailing regions)", got, want)
	}
	if got, want := props.Properties.LoggerNameOffset, uint32(unsafe.Offsetof(zero.SessionName)); got != want {
		t.Errorf("LoggerNameOffset = %d, want %d", got, want)
	}
	if got, want := props.Properties.LogFileNameOffset, uint32(unsafe.Offsetof(zero.LogFilePath)); got != want {
		t.Errorf("LogFileNameOffset = %d, want %d", got, want)
	}

	// Both offsets must land in trailing storage, past the fixed fields.
	fixed := uint32(unsafe.Sizeof(zero.Properties))
	if props.Properties.LoggerNameOffset < fixed {
		t.Errorf("LoggerNameOffset %d points inside the fixed fields (%d)", props.Properties.LoggerNameOffset, fixed)
	}
	if props.Properties.LogFileNameOffset < fixed {
		t.Errorf("LogFileNameOffset %d points inside the fixed fields (%d)", props.Properties.LogFileNameOffset, fixed)
	}

	if props.Properties.Wnode.Guid != sessionID {
		t.Errorf("Wnode.Guid = %v, want %v", props.Properties.Wnode.Guid, sessionID)
	}
	if props.Properties.Wnode.ClientContext != 1 {
		t.Errorf("Wnode.ClientContext = %d, want 1 (QPC)", props.Properties.Wnode.ClientContext)
	}
	if props.Properties.Wnode.Flags != WNODE_FLAG_TRACED_GUID {
		t.Errorf("Wnode.Flags = %#x, want WNODE_FLAG_TRACED_GUID", props.Properties.Wnode.Flags)
	}

	wantMode := uint32(EVENT_TRACE_FILE_MODE_SEQUENTIAL | EVENT_TRACE_PRIVATE_LOGGER_MODE | EVENT_TRACE_PRIVATE_IN_PROC)
	if props.Properties.LogFileMode != wantMode {
		t.Errorf("LogFileMode = %#x, want %#x", props.Properties.LogFileMode, wantMode)
	}

	// The session name region is StartTrace's to fill, so it starts zeroed.
	for i, u := range props.SessionName {
		if u != 0 {
			t.Fatalf("SessionName[%d] = %#x, want zero-filled region", i, u)
		}
	}
}

func TestTracePropertiesBufferSizeClamp(t *testing.T) {
	tests := []struct {
		name      string
		requested uint32
		want      uint32
	}{
		{"zero", 0, 0},
		{"small", 4, 4},
		{"at max", MaxBufferSizeKB, MaxBufferSizeKB},
		{"above max", MaxBufferSizeKB + 1, MaxBufferSizeKB},
		{"way above max", 1 << 30, MaxBufferSizeKB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := NewTraceProperties(windows.GUID{}, tt.requested, `C:\temp\log.etl`)
			if props.Properties.BufferSize != tt.want {
				t.Errorf("BufferSize = %d, want %d", props.Properties.BufferSize, tt.want)
			}
		})
	}
}

func TestSetLogFilePathOverwrite(t *testing.T) {
	long := `C:\some\rather\deeply\nested\output\folder\log.etl`
	short := `C:\out\log.etl`

	props := NewTraceProperties(windows.GUID{}, 4, long)
	props.SetLogFilePath(short)

	if got := windows.UTF16ToString(props.LogFilePath[:]); got != short {
		t.Errorf("LogFilePath decodes to %q, want %q", got, short)
	}

	// A shorter path must not leave units of the previous one behind.
	for i := len(short) + 1; i < len(props.LogFilePath); i++ {
		if props.LogFilePath[i] != 0 {
			t.Fatalf("LogFilePath[%d] = %#x, stale contents after overwrite", i, props.LogFilePath[i])
		}
	}
}

func TestLogFilePathTooLongPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for oversized log file path")
		}
	}()
	NewTraceProperties(windows.GUID{}, 4, strings.Repeat("a", LogFilePathCap+1))
}

func TestLogFilePathWithNULPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for path containing NUL")
		}
	}()
	NewTraceProperties(windows.GUID{}, 4, "C:\\out\x00\\log.etl")
}
