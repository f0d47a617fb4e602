package promagg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected Value
	}{
		{"1", Int(1)},
		{"-42", Int(-42)},
		{"0.42", Float(0.42)},
		{"1e3", Float(1000)},
		{"9223372036854775808", Float(9223372036854775808)},
		{"up", String("up")},
		{"", String("")},
		{"0x10", String("0x10")},
		{"NaN", String("NaN")},
		{"-Inf", String("-Inf")},
		{"1e400", String("1e400")},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ParseValue(tc.input))
		})
	}
}

func TestValueString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "7", Int(7).String())
	assert.Equal(t, "0.42", Float(0.42).String())
	assert.Equal(t, "up", String("up").String())
}
