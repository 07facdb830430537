package credential

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// stampBytes is the amount of random data in a security stamp.
const stampBytes = 24

// NewSecurityStamp returns a fresh random security stamp.
func NewSecurityStamp() (string, error) {
	buf := make([]byte, stampBytes)

	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}
