package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("40.00")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(40)))

	d, err = Parse("0.1")
	require.NoError(t, err)
	assert.Equal(t, "0.10", Format(d))

	_, err = Parse("1.005")
	assert.Error(t, err)

	_, err = Parse("abc")
	assert.Error(t, err)
}

func TestIsValidAmount(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"0.01", true},
		{"100", true},
		{"0", false},
		{"-5", false},
		{"10.001", false},
		{"9999999999.99", true},
		{"10000000000.00", false},
		{"123456789012345678.91", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidAmount(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestSum_NoFloatDrift(t *testing.T) {
	// 0.1 added ten times drifts in float64; decimals must land on 1.00 exactly.
	parts := make([]decimal.Decimal, 10)
	for i := range parts {
		parts[i] = MustParse("0.10")
	}
	assert.Equal(t, "1.00", Format(Sum(parts...)))
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("1.234") })
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(decimal.Zero))
	assert.True(t, InRange(Max))
	assert.False(t, InRange(Max.Add(MustParse("0.01"))))
	assert.False(t, InRange(MustParse("-0.01")))
}
