// Package money holds the fixed-point rules shared by every amount and
// balance in the ledger: two fractional digits, never binary floating point.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits stored for amounts and balances.
const Scale = 2

// Max is the largest value a numeric(12,2) column holds. Amounts and
// balances above it are rejected before they reach storage.
var Max = decimal.RequireFromString("9999999999.99")

// Parse reads a decimal string such as "40.00" and rejects values with more
// than Scale fractional digits.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !HasValidScale(d) {
		return decimal.Zero, fmt.Errorf("invalid amount %q: more than %d decimal places", s, Scale)
	}
	return d, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// HasValidScale reports whether d fits in Scale fractional digits.
func HasValidScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(Scale))
}

// InRange reports whether d lies in [0, Max].
func InRange(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(Max)
}

// IsValidAmount reports whether d can be used as a transaction amount.
func IsValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThanOrEqual(Max) && HasValidScale(d)
}

// Format renders d with exactly Scale fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// Sum adds amounts exactly.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
