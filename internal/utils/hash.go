package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// RawTokenBytes is the entropy of a one-time token: 256 bits.
const RawTokenBytes = 32

// GenerateRawToken returns a hex-encoded random value suitable for
// password reset and email verification links.
//
// Example usage:
//
//	raw, err := utils.GenerateRawToken()
//	hash := utils.HashToken(raw) // persist hash, email raw
func GenerateRawToken() (string, error) {
	buf := make([]byte, RawTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// HashToken returns the hex-encoded SHA-256 of a raw token. Only this value
// is stored; lookups always hash the presented token first.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
