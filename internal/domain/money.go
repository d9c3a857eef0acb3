package domain

import "github.com/shopspring/decimal"

// RoundCurrency rounds to 2 decimal places, half away from zero, and
// returns the result as a float for the merged record.
func RoundCurrency(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// CurrencyFromFloat converts a float currency amount into a decimal for
// exact arithmetic.
func CurrencyFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
