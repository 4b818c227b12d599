// Package core provides money parsing and handling utilities.
//
// Amounts are kept in integer cents. User input goes through shopspring/decimal
// so that "12.345" or "1e2" parse the same way a number field would, and the
// result is rounded half-up to two decimals.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// maxCents keeps |amount| well inside int64 so sums cannot overflow for any
// realistic list.
const maxCents = int64(1) << 53

// ParseAmount converts a decimal string to cents with half-up rounding.
//
// Both dot (12.34) and comma (12,34) separators are accepted. Negative values
// are allowed here; callers decide what the sign means.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234, nil
//	ParseAmount("12,345") -> 1235, nil
//	ParseAmount("-3")     -> -300, nil
//	ParseAmount("abc")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if cents.Abs().GreaterThan(decimal.NewFromInt(maxCents)) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// CoerceAmount parses s like a numeric form field: anything that does not
// parse becomes zero. The result is never an error.
func CoerceAmount(s string) Money {
	m, err := ParseAmount(s)
	if err != nil {
		return Money{}
	}
	return m
}

// SignedAmount applies the sign rule: expenses are negative, income positive,
// whatever sign the magnitude was entered with.
func SignedAmount(t TransactionType, m Money) Money {
	abs := m.Abs()
	if t == Expense {
		return Money{Cents: -abs.Cents}
	}
	return abs
}

func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

func (m Money) IsNegative() bool {
	return m.Cents < 0
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String renders the amount with two decimals and no grouping, as used in
// form inputs.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Units returns the value in major units for display purposes.
// Use Cents for calculations.
func (m Money) Units() float64 {
	f, _ := m.Decimal().Float64()
	return f
}
