package types

import "github.com/shopspring/decimal"

// Time is a point on the model time axis, in years.
type Time = float64

// Money is a currency amount.
type Money = decimal.Decimal

// Real is the set of value types a parameter can carry and be integrated over.
type Real interface {
	~float32 | ~float64
}

// MoneyFromFloat converts a float amount to Money rounded to places decimals.
func MoneyFromFloat(v float64, places int32) Money {
	return decimal.NewFromFloat(v).Round(places)
}
