// Package fee computes the platform fee charged on withdrawal requests.
package fee

import (
	"github.com/shopspring/decimal"

	"pawncarry/internal/money"
)

// DefaultRate is the fee rate applied when none is configured (5%).
var DefaultRate = decimal.RequireFromString("0.05")

// Policy maps a requested amount to a fee and a total. It is a pure value:
// no state, no I/O, same input always yields the same output.
type Policy struct {
	rate decimal.Decimal
}

// NewPolicy creates a policy with the given fee rate.
func NewPolicy(rate decimal.Decimal) Policy {
	return Policy{rate: rate}
}

// DefaultPolicy creates a policy with DefaultRate.
func DefaultPolicy() Policy {
	return NewPolicy(DefaultRate)
}

// Rate returns the configured fee rate.
func (p Policy) Rate() decimal.Decimal {
	return p.rate
}

// Compute returns the fee and total for a requested amount. The fee is
// amount * rate rounded to two places half-up; the total is the exact
// minor-unit sum of amount and fee, so no compounding rounding occurs.
// Fails with ErrInvalidAmount if amount is not strictly positive.
func (p Policy) Compute(amount money.Amount) (fee, total money.Amount, err error) {
	if !amount.IsPositive() {
		return 0, 0, ErrInvalidAmount
	}
	fee = money.FromDecimal(amount.Decimal().Mul(p.rate))
	total = amount.Add(fee)
	return fee, total, nil
}
