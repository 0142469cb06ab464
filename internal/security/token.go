package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const SessionTokenBytes = 32

// GenerateSessionToken returns SessionTokenBytes of crypto/rand output, hex-encoded.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
