package otp

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
)

// ErrInvalidDigits is returned when a generator is built with an unsupported
// code length.
var ErrInvalidDigits = errors.New("otp: digits must be between 4 and 9")

// Generator produces numeric codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric draws codes uniformly from [10^(digits-1), 10^digits - 1], so a
// code never has a leading zero.
type Numeric struct {
	low  int64
	span *big.Int
}

// NewNumeric builds a generator for codes of the given length.
func NewNumeric(digits int) (*Numeric, error) {
	if digits < 4 || digits > 9 {
		return nil, ErrInvalidDigits
	}

	low := int64(1)
	for range digits - 1 {
		low *= 10
	}

	return &Numeric{low: low, span: big.NewInt(low*10 - low)}, nil
}

// Generate returns the next code.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(rand.Reader, n.span)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.low+v.Int64(), 10), nil
}
