package money

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundsHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"19.90", "19.90"},
		{"19,9", "19.90"},
		{" 7 ", "7.00"},
		{"0.015", "0.02"},
		{"0.014999", "0.01"},
		{"100", "100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Text())
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "1,2,3", "12.3.4", "R$ 5", "1e999999999", "1e-999999999", "1e29", "12345678901234567890123456789"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidAmount), "got %v", err)
		})
	}
}

func TestParseAcceptsBoundaryMagnitudes(t *testing.T) {
	m, err := Parse("1e28")
	require.NoError(t, err)
	assert.Equal(t, "10000000000000000000000000000.00", m.Text())

	m, err = Parse("1e-28")
	require.NoError(t, err)
	assert.Equal(t, "0.00", m.Text())
}

func TestJSONRejectsHugeExponent(t *testing.T) {
	var m Money
	err := json.Unmarshal([]byte(`1e999999999`), &m)
	assert.True(t, errors.Is(err, ErrInvalidAmount), "got %v", err)
}

func TestArithmetic(t *testing.T) {
	price := MustParse("19.90")

	line := price.MulInt(3)
	assert.Equal(t, "59.70", line.Text())

	total := line.Discount(MustParse("10"))
	assert.Equal(t, "53.73", total.Text())

	assert.Equal(t, "59.70", line.Discount(Zero()).Text())
	assert.Equal(t, "0.00", line.Discount(MustParse("100")).Text())

	assert.Equal(t, "3.33", MustParse("3.333").Add(Zero()).Text())
	assert.Equal(t, "1.50", MustParse("2").Sub(MustParse("0.5")).Text())
	assert.Equal(t, "0.00", Sum().Text())
	assert.Equal(t, "6.60", Sum(MustParse("1.10"), MustParse("2.20"), MustParse("3.30")).Text())
}

func TestDiscountRoundsOnce(t *testing.T) {
	// 0.35 * 0.5 = 0.175 -> 0.18
	assert.Equal(t, "0.18", MustParse("0.35").Discount(MustParse("50")).Text())
	// 33.33 * 0.6701 = 22.334433
	assert.Equal(t, "22.33", MustParse("33.33").Discount(MustParse("32.99")).Text())
}

func TestComparison(t *testing.T) {
	a := MustParse("1.10")
	b := FromCents(110)
	c := FromInt(2)

	assert.True(t, a.Equal(b))
	assert.Equal(t, 0, a.Cmp(b))
	assert.True(t, a.LessThan(c))
	assert.True(t, c.GreaterThan(a))
	assert.True(t, Zero().IsZero())
	assert.True(t, MustParse("-0.01").IsNegative())
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "R$ 19.90", MustParse("19.9").String())
	assert.Equal(t, "R$ 0.00", Zero().String())
	assert.Equal(t, "0.00", Money{}.Text())
}

func TestJSONCodec(t *testing.T) {
	b, err := json.Marshal(MustParse("59.7"))
	require.NoError(t, err)
	assert.Equal(t, `"59.70"`, string(b))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"19.90"`), &m))
	assert.Equal(t, "19.90", m.Text())

	require.NoError(t, json.Unmarshal([]byte(`12.5`), &m))
	assert.Equal(t, "12.50", m.Text())

	err = json.Unmarshal([]byte(`"nope"`), &m)
	assert.True(t, errors.Is(err, ErrInvalidAmount))
}

func TestSQLCodec(t *testing.T) {
	v, err := MustParse("4.5").Value()
	require.NoError(t, err)
	assert.Equal(t, "4.50", v)

	var m Money
	require.NoError(t, m.Scan("8.25"))
	assert.Equal(t, "8.25", m.Text())
	require.NoError(t, m.Scan([]byte("1,5")))
	assert.Equal(t, "1.50", m.Text())
	require.NoError(t, m.Scan(int64(3)))
	assert.Equal(t, "3.00", m.Text())
	require.Error(t, m.Scan(true))
}
