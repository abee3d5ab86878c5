package utils

import (
	"github.com/shopspring/decimal"
)

var centsPerDollar = decimal.NewFromInt(100)

// CentsToUSD converts an integer-cent amount to a 2-decimal dollar value.
// All source tables store money as integer cents; conversion to dollars
// happens exactly once, at the reporting boundary.
func CentsToUSD(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(centsPerDollar).Round(2)
}

// RoundUSD rounds a dollar amount to 2 decimal places for output.
func RoundUSD(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func Ptr[T any](v T) *T {
	return &v
}
