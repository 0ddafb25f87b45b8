package draft

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Commission and slippage are stored as fractional rates but edited as
// percentages. The transform runs through decimals so that any value with at
// most four decimal places round-trips exactly.

var hundred = decimal.NewFromInt(100)

// RateToPercent formats a fractional rate for display, e.g. 0.0005 -> "0.0500".
func RateToPercent(rate float64) string {
	return decimal.NewFromFloat(rate).Mul(hundred).StringFixed(4)
}

// PercentToRate parses user percentage input back to a rate, e.g. "0.05" -> 0.0005.
func PercentToRate(input string) (float64, error) {
	d, err := decimal.NewFromString(input)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q: %w", input, err)
	}
	return d.Div(hundred).InexactFloat64(), nil
}
