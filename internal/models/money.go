package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places stored for every price.
const MoneyScale = 2

// maxMoney is the exclusive upper bound imposed by a decimal(10,2) column.
var maxMoney = decimal.New(1, 8)

// Money is a fixed-point amount with two decimal places.
// It marshals to a JSON string ("10.00") so clients never see binary floats.
type Money struct {
	decimal.Decimal
}

// Parse limits. The length cap also bounds the digit count. Rescaling a
// decimal allocates a power of ten the size of its exponent, so amounts
// outside these bounds are rejected before any arithmetic.
const (
	maxAmountLength   = 32
	minAmountExponent = -8
	maxAmountExponent = 8
)

// ErrAmountOutOfRange reports an amount that parsed but is too large or too
// precise to be considered at all.
var ErrAmountOutOfRange = errors.New("amount out of range")

// NewMoney parses s as a decimal amount.
func NewMoney(s string) (Money, error) {
	if len(s) > maxAmountLength {
		return Money{}, fmt.Errorf("invalid amount: %w", ErrAmountOutOfRange)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if exp := d.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, ErrAmountOutOfRange)
	}
	return Money{Decimal: d}, nil
}

// MustMoney is NewMoney for literals known to be valid.
func MustMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// String renders the amount with exactly two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(MoneyScale)
}

// Equal reports whether both amounts have the same value.
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// Problem returns a human readable reason why m cannot be stored as a
// price, or an empty string when it can.
func (m Money) Problem() string {
	switch {
	case !m.Decimal.IsPositive():
		return "must be greater than 0"
	case !m.Decimal.Equal(m.Decimal.Round(MoneyScale)):
		return "can have at most 2 decimal places"
	case m.Decimal.GreaterThanOrEqual(maxMoney):
		return "must be less than 100000000"
	}
	return ""
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both "10.00" and 10.00.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := NewMoney(s)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	parsed, err := NewMoney(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner. SQLite hands back numeric columns as int64 or
// float64, PostgreSQL as text; all of them are normalised to two places.
func (m *Money) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("scan money: %w", err)
	}
	m.Decimal = d.Round(MoneyScale)
	return nil
}
