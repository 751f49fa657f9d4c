package formatter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatInt renders an integer with Brazilian thousands separators,
// e.g. 1234567 becomes "1.234.567".
func FormatInt(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)
	out := strings.Join(groups, ".")
	if neg {
		return "-" + out
	}
	return out
}

// FormatDecimal renders a decimal in pt-BR notation with the given number of
// fraction digits, e.g. 1234.5 with 2 places becomes "1.234,50".
func FormatDecimal(d decimal.Decimal, places int) string {
	fixed := d.StringFixed(int32(places))
	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)
	out := strings.Join(groups, ".")
	if fracPart != "" {
		out += "," + fracPart
	}
	if neg {
		return "-" + out
	}
	return out
}

// FormatWeight renders a kilogram quantity like "1.234,500 kg".
func FormatWeight(kg decimal.Decimal) string {
	return FormatDecimal(kg, 3) + " kg"
}

// FormatMoney renders a cost like "R$ 1.250,00".
func FormatMoney(v decimal.Decimal) string {
	return "R$ " + FormatDecimal(v, 2)
}

// Truncate shortens a string to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
