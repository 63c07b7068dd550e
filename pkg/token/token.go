// Package token generates high-entropy random tokens for refresh and
// verification flows.
package token

import (
	"crypto/rand"
	"encoding/hex"
)

// Generate returns n random bytes, hex-encoded.
func Generate(n int) (string, error) {
	b := make([]byte, n)

	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
