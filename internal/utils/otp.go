package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateAuthCode generates a cryptographically secure 6-digit auth code,
// drawn uniformly from [0, 999999] and left-padded with zeros.
func GenerateAuthCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
