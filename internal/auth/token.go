package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// sessionTokenBytes is the entropy of one session token: 128 bits.
const sessionTokenBytes = 16

// NewSessionToken returns a fixed-length, hex-encoded token drawn from the
// cryptographic random source. No state is retained between calls.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
