package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMXN formats a money amount as a string like "$1,234,567.89".
// Uses comma as thousands separator and always two decimals (Mexican pesos).
func FormatMXN(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	intPart := fixed
	decPart := "00"
	if dot := strings.IndexByte(fixed, '.'); dot >= 0 {
		intPart = fixed[:dot]
		decPart = fixed[dot+1:]
	}

	var b strings.Builder
	b.Grow(len(fixed) + len(intPart)/3 + 2)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(decPart)

	return b.String()
}
