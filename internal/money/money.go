// Package money converts between minor currency units and decimal amounts.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrPrecision is returned when an amount has more decimal places than the
// currency allows.
var ErrPrecision = errors.New("amount exceeds currency precision")

// ErrRange is returned when an amount does not fit in int64 minor units.
var ErrRange = errors.New("amount out of range")

// Currency describes how minor units are displayed.
type Currency struct {
	Code      string `yaml:"code"`
	Symbol    string `yaml:"symbol"`
	Precision int32  `yaml:"precision"`
}

// GBP is the default currency.
var GBP = Currency{Code: "GBP", Symbol: "£", Precision: 2}

// Decimal returns minor as a major-unit decimal, e.g. 1050 -> 10.50.
func (c Currency) Decimal(minor int64) decimal.Decimal {
	return decimal.New(minor, -c.Precision)
}

// String formats minor with the currency's precision but no symbol.
func (c Currency) String(minor int64) string {
	return c.Decimal(minor).StringFixed(c.Precision)
}

// Format formats minor with the currency symbol, e.g. "£10.50".
func (c Currency) Format(minor int64) string {
	d := c.Decimal(minor)
	if d.IsNegative() {
		return "-" + c.Symbol + d.Neg().StringFixed(c.Precision)
	}
	return c.Symbol + d.StringFixed(c.Precision)
}

// Parse converts a major-unit string such as "10.50" to minor units.
// The currency symbol is accepted as a prefix.
func (c Currency) Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, c.Symbol)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return c.FromDecimal(d)
}

// FromDecimal converts a major-unit decimal to minor units exactly.
func (c Currency) FromDecimal(d decimal.Decimal) (int64, error) {
	shifted := d.Shift(c.Precision)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("%s has more than %d decimal places: %w", d, c.Precision, ErrPrecision)
	}
	if !shifted.BigInt().IsInt64() {
		return 0, fmt.Errorf("%s in minor units: %w", d, ErrRange)
	}
	return shifted.IntPart(), nil
}

// Formatter renders minor-unit amounts for display.
type Formatter interface {
	Format(minor int64) string
}
