package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"
)

func TestHasher_HashString_MatchesHMAC(t *testing.T) {
	h := NewHasher("key")

	mac := hmac.New(sha256.New, []byte("key"))
	mac.Write([]byte("payload"))
	expected := hex.EncodeToString(mac.Sum(nil))

	if got := h.HashString("payload"); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestHasher_DifferentKeys(t *testing.T) {
	a := NewHasher("key-a").HashString("payload")
	b := NewHasher("key-b").HashString("payload")

	if a == b {
		t.Error("expected different digests for different keys")
	}
}

func TestHasher_Deterministic(t *testing.T) {
	h := NewHasher("key")

	if h.HashString("x") != h.HashString("x") {
		t.Error("expected equal digests for equal input")
	}
	if h.HashString("x") == h.HashString("y") {
		t.Error("expected different digests for different input")
	}
}

func TestHasher_Concurrent(t *testing.T) {
	h := NewHasher("key")
	expected := h.HashString("payload")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := h.HashString("payload"); got != expected {
				t.Errorf("expected %s, got %s", expected, got)
			}
		}()
	}
	wg.Wait()
}
