package mathutil

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	// RatePrecision is the number of fractional digits of informational rates.
	RatePrecision = 18
	// MaxDigits bounds both the integer and the fractional digits of the
	// operands accepted by ConvertAmount and Rate.
	MaxDigits = 64
)

var (
	// ErrDivisionByZero is returned when dividing by a zero decimal.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNegativeAmount is returned when converting a negative amount.
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrOutOfRange is returned for operands with more than MaxDigits integer
	// or fractional digits.
	ErrOutOfRange = errors.New("operand out of range")
)

// ConvertAmount takes an amount of asset valued priceIn and returns the
// equivalent amount of an asset valued priceOut, amount * priceIn / priceOut,
// truncated toward zero to the given number of fractional digits.
// The division is made with remainder so that the result is never rounded up.
func ConvertAmount(
	amount, priceIn, priceOut decimal.Decimal, precision uint,
) (decimal.Decimal, error) {
	if !inRange(amount) || !inRange(priceIn) || !inRange(priceOut) {
		return decimal.Zero, ErrOutOfRange
	}
	if priceOut.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}

	quotient, _ := amount.Mul(priceIn).QuoRem(priceOut, int32(precision))
	return quotient, nil
}

// Rate returns x / y truncated to RatePrecision fractional digits.
func Rate(x, y decimal.Decimal) (decimal.Decimal, error) {
	if !inRange(x) || !inRange(y) {
		return decimal.Zero, ErrOutOfRange
	}
	if y.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	quotient, _ := x.QuoRem(y, RatePrecision)
	return quotient, nil
}

// TruncateToPrecision truncates x toward zero to the given number of
// fractional digits.
func TruncateToPrecision(x decimal.Decimal, precision uint) decimal.Decimal {
	return x.Truncate(int32(precision))
}

// HasPrecision returns whether x has at most the given number of fractional
// digits.
func HasPrecision(x decimal.Decimal, precision uint) bool {
	return x.Equal(TruncateToPrecision(x, precision))
}

func inRange(x decimal.Decimal) bool {
	exp := int64(x.Exponent())
	return exp >= -MaxDigits && int64(x.NumDigits())+exp <= MaxDigits
}
