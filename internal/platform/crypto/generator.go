package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

// GenerateSecureRandomString creates a cryptographically secure random string.
// n is the number of bytes of randomness; the URL-safe encoding is longer.
func GenerateSecureRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashString returns the URL-safe SHA-256 digest of s, used to keep raw identifiers out of logs.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
