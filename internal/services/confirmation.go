package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const confirmationCodeLength = 6

var codeDigits = big.NewInt(10)

// GenerateConfirmationCode returns a random 6-digit numeric code. Each digit
// is drawn with rand.Int so no digit is more likely than another.
func GenerateConfirmationCode() (string, error) {
	code := make([]byte, confirmationCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, codeDigits)
		if err != nil {
			return "", fmt.Errorf("failed to generate confirmation code: %w", err)
		}
		code[i] = '0' + byte(n.Int64())
	}
	return string(code), nil
}
