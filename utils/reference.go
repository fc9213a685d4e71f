package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const referenceCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCode returns n random characters from an unambiguous A-Z/2-9 alphabet.
// rand.Int avoids modulo bias.
func GenerateCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(referenceCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(referenceCharset[num.Int64()])
	}
	return sb.String(), nil
}

// NewWalkInReference returns a booking reference like "WI-7KQ2-M9XD".
func NewWalkInReference() (string, error) {
	raw, err := GenerateCode(8)
	if err != nil {
		return "", err
	}
	return "WI-" + raw[:4] + "-" + raw[4:], nil
}

// NormalizeReference upper-cases a reference typed at the desk and drops whitespace.
func NormalizeReference(ref string) string {
	return strings.ToUpper(strings.Join(strings.Fields(ref), ""))
}
