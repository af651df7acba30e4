package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const sessionIDBytes = 32

// GenerateSessionID generates a cryptographically secure visitor session ID:
// 32 random bytes encoded as a URL-safe base64 string.
func GenerateSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return base64.URLEncoding.EncodeToString(b), nil
}

// ValidSessionID reports whether id has the shape GenerateSessionID
// produces. Cookies carrying anything else are replaced with a new session.
func ValidSessionID(id string) bool {
	b, err := base64.URLEncoding.DecodeString(id)
	return err == nil && len(b) == sessionIDBytes
}
