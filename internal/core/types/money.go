// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

var hundred = decimal.NewFromInt(100)

// ValidPercent reports whether p is a usable commission percentage (0..100).
func ValidPercent(p Money) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

// SplitCommission splits a gross amount into commission and net parts
// using the given percentage. The commission is rounded to 2 decimal
// places and the net part is derived by subtraction, so
// commission + net == amount holds exactly.
func SplitCommission(amount, percent Money) (commission, net Money) {
	commission = amount.Mul(percent).Div(hundred).Round(2)
	net = amount.Sub(commission)
	return commission, net
}
