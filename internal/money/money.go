// Package money implements fixed-point currency arithmetic in integer
// céntimos. All coverage and change comparisons in the system happen on
// Centavos values; decimal.Decimal appears only at the API boundary where
// amounts are parsed from or rendered to JSON.
package money

import "github.com/shopspring/decimal"

// Centavos is a currency amount in integer minor units (1/100 of a sol).
type Centavos int64

// ToCentavos converts a boundary decimal amount to minor units, rounding
// half-up at two decimal places. 45.505 → 4551.
func ToCentavos(d decimal.Decimal) Centavos {
	return Centavos(d.Round(2).Shift(2).IntPart())
}

// FromCentavos renders minor units back as a two-decimal amount.
func FromCentavos(c Centavos) decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Decimal is a convenience alias for FromCentavos.
func (c Centavos) Decimal() decimal.Decimal { return FromCentavos(c) }

// String renders the amount with exactly two decimals ("38.00").
func (c Centavos) String() string { return FromCentavos(c).StringFixed(2) }
