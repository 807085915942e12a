// Package money provides decimal-backed helpers for balance arithmetic.
// Amounts are stored as float64 on the models but every mutation goes
// through these helpers so repeated operations cannot accumulate binary
// floating point drift.
package money

import "github.com/shopspring/decimal"

// Round2 rounds to two decimal places, half up.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Add returns a+b rounded to two decimal places.
func Add(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Round(2).Float64()
	return f
}

// Sub returns a-b rounded to two decimal places.
func Sub(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).Float64()
	return f
}

// Fee returns amount*rate rounded to two decimal places, half up.
func Fee(amount, rate float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate)).Round(2).Float64()
	return f
}
