// Package money represents monetary values as integer minor units (cents)
// so that balance and fee arithmetic is exact. Decimal conversion happens
// only at the boundaries, rounding half-up to two places.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a value cannot be read as a monetary amount.
var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a monetary value in minor units. Amount arithmetic never rounds.
type Amount int64

// Zero is the zero amount.
const Zero Amount = 0

// FromDecimal converts a decimal value to an Amount, rounding to two
// decimal places half-up.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Round(2).Shift(2).IntPart())
}

// Parse reads a decimal string ("210.50") into an Amount.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d), nil
}

// MustParse is Parse for trusted literals; it panics on malformed input.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Decimal returns the amount as a two-place decimal.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount { return a + b }

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount { return a - b }

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool { return a < 0 }

// IsPositive reports whether the amount is above zero.
func (a Amount) IsPositive() bool { return a > 0 }

// String renders the amount with exactly two decimal places.
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as a fixed-point JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts JSON numbers and decimal strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
