package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Token size constants (in bytes before encoding).
const (
	// TokenSize128 provides 128 bits of entropy (32 chars hex).
	TokenSize128 = 16
	// TokenSize256 provides 256 bits of entropy (64 chars hex).
	TokenSize256 = 32
)

// GenerateHex creates a cryptographically secure random token of the given
// byte length, hex encoded. This matches the opaque token shape the game
// client expects (exchange codes, refresh tokens, session ids).
func GenerateHex(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// MustGenerateHex is like GenerateHex but panics on error.
// Use this only during initialization or in contexts where failure is unrecoverable.
func MustGenerateHex(size int) string {
	token, err := GenerateHex(size)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate token: %v", err))
	}
	return token
}

// GeneratePadding returns size random bytes, standard-base64 encoded. Used
// for the anti-analysis filler claim in signed tokens; the value is never
// consumed semantically.
func GeneratePadding(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("padding size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate padding: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}
