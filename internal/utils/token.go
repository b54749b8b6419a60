package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// OneTimeTokenBytes is the entropy of a one-time token before hex encoding.
const OneTimeTokenBytes = 32

// RandomToken returns n cryptographically random bytes, hex-encoded.
func RandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
