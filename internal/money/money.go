// Package money provides the fixed-point currency type used across posledger.
package money

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits every stored amount carries.
const Places = 2

// ErrInvalidAmount is returned when text cannot be read as a decimal amount.
var ErrInvalidAmount = errors.New("money: invalid amount")

// maxDigits bounds both the coefficient length and the exponent of parsed text.
const maxDigits = 28

var hundred = decimal.NewFromInt(100)

// Money is a decimal amount with exactly two fractional digits.
// Every constructor and arithmetic result is rounded half-up to Places.
//
// Examples:
//   - MustParse("19.90") = R$ 19.90
//   - MustParse("10,005") = R$ 10.01
//   - FromCents(5970) = R$ 59.70
type Money struct {
	d decimal.Decimal
}

// Zero is the zero amount.
func Zero() Money { return Money{} }

// New rounds d to two places.
func New(d decimal.Decimal) Money { return Money{d: Round(d)} }

// FromCents creates an amount from an integer count of cents.
func FromCents(cents int64) Money { return Money{d: decimal.New(cents, -Places)} }

// FromInt creates a whole amount.
func FromInt(units int64) Money { return Money{d: decimal.NewFromInt(units)} }

// Round applies the canonical half-up rounding to two places.
func Round(d decimal.Decimal) decimal.Decimal { return d.Round(Places) }

// Parse reads decimal text. Either '.' or ',' may separate the fraction.
func Parse(s string) (Money, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if raw == "" {
		return Money{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if exp := d.Exponent(); exp > maxDigits || exp < -maxDigits || d.NumDigits() > maxDigits {
		return Money{}, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}
	return New(d), nil
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Arithmetic

// Add returns round(m + other).
func (m Money) Add(other Money) Money { return New(m.d.Add(other.d)) }

// Sub returns round(m - other).
func (m Money) Sub(other Money) Money { return New(m.d.Sub(other.d)) }

// MulInt returns round(m * qty).
func (m Money) MulInt(qty int) Money { return New(m.d.Mul(decimal.NewFromInt(int64(qty)))) }

// Discount returns round(m * (1 - percent/100)).
func (m Money) Discount(percent Money) Money {
	factor := decimal.NewFromInt(1).Sub(percent.d.Div(hundred))
	return New(m.d.Mul(factor))
}

// Sum returns round(sum(values)). The sum of nothing is Zero.
func Sum(values ...Money) Money {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v.d)
	}
	return New(total)
}

// Comparison

// Cmp returns -1, 0 or +1.
func (m Money) Cmp(other Money) int { return m.d.Cmp(other.d) }

// Equal reports exact equality.
func (m Money) Equal(other Money) bool { return m.d.Equal(other.d) }

func (m Money) LessThan(other Money) bool { return m.d.LessThan(other.d) }

func (m Money) GreaterThan(other Money) bool { return m.d.GreaterThan(other.d) }

func (m Money) IsZero() bool { return m.d.IsZero() }

func (m Money) IsNegative() bool { return m.d.IsNegative() }

// Decimal exposes the underlying value.
func (m Money) Decimal() decimal.Decimal { return m.d }

// Formatting

// Text returns the bare decimal with two fractional digits: "19.90".
func (m Money) Text() string { return m.d.StringFixed(Places) }

// String returns currency text: "R$ 19.90".
func (m Money) String() string { return "R$ " + m.Text() }

// Boundary codecs

// MarshalJSON writes the amount as a decimal string.
func (m Money) MarshalJSON() ([]byte, error) { return json.Marshal(m.Text()) }

// UnmarshalJSON accepts a decimal string or a JSON number.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*m = Money{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidAmount, b)
		}
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Value stores the amount as TEXT.
func (m Money) Value() (driver.Value, error) { return m.Text(), nil }

// Scan reads TEXT, BLOB, integer or float columns.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = Money{}
		return nil
	case string:
		return m.scanText(v)
	case []byte:
		return m.scanText(string(v))
	case int64:
		*m = FromInt(v)
		return nil
	case float64:
		*m = New(decimal.NewFromFloat(v))
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidAmount, src)
	}
}

func (m *Money) scanText(s string) error {
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
