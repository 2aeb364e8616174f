package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const recoveryCodeCount = 10

// GenerateRecoveryCodes returns one-time codes of the form XXXX-XXXX.
// Plaintext codes are shown to the user once; only hashes are stored.
func GenerateRecoveryCodes() ([]string, error) {
	codes := make([]string, recoveryCodeCount)
	buf := make([]byte, 4)

	for i := range codes {
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate recovery code: %w", err)
		}
		hexCode := strings.ToUpper(hex.EncodeToString(buf))
		codes[i] = hexCode[:4] + "-" + hexCode[4:]
	}

	return codes, nil
}

// HashString returns the hex-encoded SHA-256 of s.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func HashRecoveryCodes(codes []string) []string {
	hashed := make([]string, len(codes))
	for i, code := range codes {
		hashed[i] = HashString(code)
	}
	return hashed
}
