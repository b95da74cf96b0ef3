package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeSpace is exclusive, so codes range 000000–999999 with uniform
// probability per digit.
var codeSpace = big.NewInt(1_000_000)

// New generates a 6-digit numeric one-time code. Codes are not checked for
// global uniqueness; collisions across emails are harmless because each code
// is only ever compared against its own pending registration.
func New() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
