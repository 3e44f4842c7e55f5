package util

import (
	"crypto/rand"
	"encoding/hex"
)

// tokenLength is the byte length of login tokens before hex encoding.
const tokenLength = 32

// GenerateToken creates a cryptographically secure opaque bearer token.
func GenerateToken() (string, error) {
	bytes := make([]byte, tokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
