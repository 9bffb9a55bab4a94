package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMXN(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"999", "$999.00"},
		{"1000", "$1,000.00"},
		{"10000", "$10,000.00"},
		{"1234567.89", "$1,234,567.89"},
		{"120000.5", "$120,000.50"},
		{"-12500", "-$12,500.00"},
	}
	for _, tc := range cases {
		got := FormatMXN(decimal.RequireFromString(tc.in))
		assert.Equal(t, tc.want, got, "FormatMXN(%s)", tc.in)
	}
}
