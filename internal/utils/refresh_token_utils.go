package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// GenerateSecureRandomString returns a hex-encoded random string of
// byteLength random bytes, suitable for use as a refresh token.
func GenerateSecureRandomString(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashRefreshToken returns the hex-encoded SHA-256 digest of a refresh token.
// Only the hash is persisted; the raw token is returned to the client once.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash compares a raw refresh token against a stored hash
// in constant time.
func CompareRefreshTokenHash(token, storedHash string) bool {
	computed := HashRefreshToken(token)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
