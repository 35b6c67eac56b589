//go:build windows

package etw

import (
	"strings"
	"testing"

	"etw_minilog/internal/windowsapi"
)

func TestValidateSessionName(t *testing.T) {
	u, err := ValidateSessionName("Mini logger")
	if err != nil {
		t.Fatalf("ValidateSessionName: %v", err)
	}
	if len(u) != len("Mini logger")+1 {
		t.Errorf("UTF-16 length = %d, want %d incl. terminator", len(u), len("Mini logger")+1)
	}
}

func TestValidateSessionNameRejectsNUL(t *testing.T) {
	if _, err := ValidateSessionName("bad\x00name"); err == nil {
		t.Error("expected error for name containing NUL")
	}
}

func TestValidateSessionNameTooLongPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for oversized session name")
		}
	}()
	ValidateSessionName(strings.Repeat("x", windowsapi.SessionNameCap+1))
}

func TestValidateSessionNameAtCapacity(t *testing.T) {
	// Exactly at capacity, terminator included, must pass.
	if _, err := ValidateSessionName(strings.Repeat("x", windowsapi.SessionNameCap-1)); err != nil {
		t.Errorf("name at capacity rejected: %v", err)
	}
}
