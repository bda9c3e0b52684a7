package summary

import (
	"math"
	"strconv"
	"strings"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "€"

// Money formats a positive amount as "€<n>" using the shortest decimal form of n.
// Amounts of 1e21 and above or below 1e-6 switch to exponent notation ("€1e+21",
// "€5e-7"), as browsers print them. Absent, zero, negative and NaN amounts
// yield ("", false).
func Money(n *float64) (string, bool) {
	if n == nil {
		return "", false
	}
	return formatAmount(*n)
}

func formatAmount(v float64) (string, bool) {
	if math.IsNaN(v) || v <= 0 {
		return "", false
	}
	if math.IsInf(v, 1) {
		return CurrencySymbol + "Infinity", true
	}
	return CurrencySymbol + formatNumber(v), true
}

func formatNumber(v float64) string {
	if v >= 1e21 || v < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
