package model

import (
	"fmt"
	"strings"
)

// Nominal is the code identifying one account in the chart, e.g. "1010".
type Nominal string

// NewNominal validates and returns a Nominal. Codes must be non-empty and
// alphanumeric.
func NewNominal(code string) (Nominal, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("%w: empty code", ErrInvalidNominal)
	}
	for _, r := range code {
		if !isAlnum(r) {
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidNominal, code, r)
		}
	}
	return Nominal(code), nil
}

// MustNominal is like NewNominal but panics on invalid input. Intended for
// literals in default charts and tests.
func MustNominal(code string) Nominal {
	n, err := NewNominal(code)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Nominal) String() string {
	return string(n)
}

func isAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
