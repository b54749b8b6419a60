package utils

import (
	"encoding/hex"
	"testing"
)

func TestRandomToken(t *testing.T) {
	a, err := RandomToken(OneTimeTokenBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := RandomToken(OneTimeTokenBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a) != OneTimeTokenBytes*2 {
		t.Errorf("expected %d hex chars, got %d", OneTimeTokenBytes*2, len(a))
	}
	if _, err := hex.DecodeString(a); err != nil {
		t.Errorf("expected hex, got %q", a)
	}
	if a == b {
		t.Error("expected distinct tokens")
	}
}
