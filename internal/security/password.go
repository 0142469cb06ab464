package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// ErrMalformedHash means a stored password hash could not be parsed. It points
// at corrupted or foreign data, not at a wrong password.
var ErrMalformedHash = errors.New("malformed password hash")

const hashDelimiter = "."

type ScryptParams struct {
	N       int
	R       int
	P       int
	KeyLen  int
	SaltLen int
}

var defaultParams = ScryptParams{
	N:       16384,
	R:       8,
	P:       1,
	KeyLen:  64,
	SaltLen: 16,
}

func DefaultParams() ScryptParams {
	return defaultParams
}

// HashPasswordWithParams returns "<hex key>.<hex salt>".
func HashPasswordWithParams(password string, params ScryptParams) (string, error) {
	salt := make([]byte, params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	encodedSalt := hex.EncodeToString(salt)

	// the encoded salt string is the KDF salt input
	key, err := scrypt.Key([]byte(password), []byte(encodedSalt), params.N, params.R, params.P, params.KeyLen)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return hex.EncodeToString(key) + hashDelimiter + encodedSalt, nil
}

// VerifyPasswordWithParams reports ErrMalformedHash for anything that could
// not have come from HashPasswordWithParams with the same params.
func VerifyPasswordWithParams(password string, stored string, params ScryptParams) (bool, error) {
	encodedKey, salt, ok := strings.Cut(stored, hashDelimiter)
	if !ok || encodedKey == "" || salt == "" {
		return false, ErrMalformedHash
	}

	key, err := hex.DecodeString(encodedKey)
	if err != nil {
		return false, fmt.Errorf("%w: decode key: %v", ErrMalformedHash, err)
	}
	if len(key) != params.KeyLen {
		return false, fmt.Errorf("%w: key is %d bytes, want %d", ErrMalformedHash, len(key), params.KeyLen)
	}

	computed, err := scrypt.Key([]byte(password), []byte(salt), params.N, params.R, params.P, len(key))
	if err != nil {
		return false, fmt.Errorf("derive key: %w", err)
	}

	return subtle.ConstantTimeCompare(key, computed) == 1, nil
}
