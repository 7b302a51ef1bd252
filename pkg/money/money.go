// Package money holds the amount policy shared by the ledger and bank
// domains: monetary values are fixed-point decimals with two fraction
// digits, rounded with banker's rounding.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Code is an ISO 4217 currency code.
type Code string

// SEK is the default currency for imported bank feeds.
const SEK Code = "SEK"

var (
	// ErrAmountNegative is returned when an amount is below zero.
	ErrAmountNegative = errors.New("amount must not be negative")
	// ErrAmountPrecision is returned when an amount carries more than two
	// fraction digits.
	ErrAmountPrecision = errors.New("amount must have at most two decimal places")
	// ErrInvalidCurrencyCode is returned when a currency code is not a
	// three-letter ISO 4217 code.
	ErrInvalidCurrencyCode = errors.New("invalid currency code")
)

// Round applies the uniform rounding policy: banker's rounding at two
// decimal places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// ValidateAmount enforces the posting amount contract: non-negative with at
// most two fraction digits.
func ValidateAmount(d decimal.Decimal) error {
	if d.IsNegative() {
		return ErrAmountNegative
	}
	if !d.Equal(d.Truncate(2)) {
		return ErrAmountPrecision
	}
	return nil
}

// ValidateCode checks the shape of a currency code. An empty code is valid
// here; callers substitute the default for it.
func ValidateCode(c Code) error {
	if c == "" {
		return nil
	}
	if len(c) != 3 {
		return ErrInvalidCurrencyCode
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return ErrInvalidCurrencyCode
		}
	}
	return nil
}

// OrDefault returns c, or SEK when c is empty.
func OrDefault(c Code) Code {
	if c == "" {
		return SEK
	}
	return c
}
