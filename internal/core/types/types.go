// Package types provides fixed-point numeric types shared across the domain.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity is a fixed-point weight in kilograms with 4 decimal places (scale = 1e4).
//
// Rationale:
// - Matches Postgres NUMERIC(15,4) semantics without floating point errors
// - Easy to store as BIGINT in DB (scaled integer)
// - JSON remains a number with up to 4 decimals
type Quantity int64

const QuantityScale int64 = 10_000

func NewQuantityFromFloat64(v float64) Quantity {
	return Quantity(math.Round(v * float64(QuantityScale)))
}

func NewQuantityFromInt64Scaled(v int64) Quantity { return Quantity(v) }

func (q Quantity) Int64Scaled() int64 { return int64(q) }

func (q Quantity) Float64() float64 { return float64(q) / float64(QuantityScale) }

func (q Quantity) IsZero() bool { return q == 0 }

func (q Quantity) IsPositive() bool { return q > 0 }

// String returns a decimal string with 4 fractional digits.
func (q Quantity) String() string { return fixedPointString(int64(q), 4) }

// MarshalJSON encodes Quantity as a JSON number (not string), preserving 4 digits.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalJSON accepts either a JSON number or string and parses to fixed-point.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	v, err := parseFixedPoint(data, 4)
	if err != nil {
		return err
	}
	*q = Quantity(v)
	return nil
}

// Money is a fixed-point currency amount in minor units (scale = 1e2).
// Prices per kilogram and order totals both use it.
type Money int64

const MoneyScale int64 = 100

func NewMoneyFromFloat64(v float64) Money {
	return Money(math.Round(v * float64(MoneyScale)))
}

func NewMoneyFromInt64Scaled(v int64) Money { return Money(v) }

func (m Money) Int64Scaled() int64 { return int64(m) }

func (m Money) Float64() float64 { return float64(m) / float64(MoneyScale) }

func (m Money) IsNegative() bool { return m < 0 }

// String returns a decimal string with 2 fractional digits.
func (m Money) String() string { return fixedPointString(int64(m), 2) }

// MarshalJSON encodes Money as a JSON number with 2 digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number or string and parses to fixed-point.
func (m *Money) UnmarshalJSON(data []byte) error {
	v, err := parseFixedPoint(data, 2)
	if err != nil {
		return err
	}
	*m = Money(v)
	return nil
}

// Amount computes quantity * pricePerKg through decimal arithmetic, rounding
// half-up to the nearest minor unit. Used for order totals and report costs.
func Amount(q Quantity, pricePerKg Money) Money {
	total := decimal.New(int64(q), -4).Mul(decimal.New(int64(pricePerKg), -2))
	return Money(total.Shift(2).Round(0).IntPart())
}

// --- fixed-point parsing helpers ---

func fixedPointString(v int64, digits int) string {
	scale := int64(1)
	for i := 0; i < digits; i++ {
		scale *= 10
	}
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%d.%0*d", v/scale, digits, v%scale)
	if neg {
		return "-" + s
	}
	return s
}

func parseFixedPoint(data []byte, digits int) (int64, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, nil
	}

	// If string, unquote first.
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		return parseFixedPointString(s, digits)
	}

	return parseFixedPointString(string(data), digits)
}

func parseFixedPointString(s string, digits int) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse fixed-point %q: %w", s, err)
	}

	scaled := d.Shift(int32(digits)).Round(0)
	if scaled.Cmp(decimal.NewFromInt(math.MaxInt64)) > 0 || scaled.Cmp(decimal.NewFromInt(math.MinInt64)) < 0 {
		return 0, fmt.Errorf("parse fixed-point %q: out of range", s)
	}
	return scaled.IntPart(), nil
}
