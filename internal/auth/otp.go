package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"io"
	"math/big"

	"github.com/pquerna/otp"
)

// codeDigits is the length of a reset code.
const codeDigits = otp.DigitsSix

var codeSpace = big.NewInt(1_000_000)

// generateCode draws a code uniformly from 000000-999999. r is normally
// crypto/rand.Reader.
func generateCode(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	n, err := rand.Int(r, codeSpace)
	if err != nil {
		return "", err
	}
	return codeDigits.Format(int32(n.Int64())), nil
}

// codesEqual compares a candidate against the stored code in constant time.
func codesEqual(stored, candidate string) bool {
	if len(candidate) != codeDigits.Length() || len(stored) != len(candidate) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
