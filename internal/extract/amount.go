package extract

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a raw bureau amount. Unparsable or empty values are zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseCount parses a raw integer count. ok is false when it is not an integer.
func ParseCount(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// countOrZero is ParseCount with the failure case folded to 0.
func countOrZero(s string) int {
	n, _ := ParseCount(s)
	return n
}

var thousand = decimal.NewFromInt(1000)

// inThousands converts an amount to thousands as a float for banding.
func inThousands(d decimal.Decimal) float64 {
	return d.Div(thousand).InexactFloat64()
}
