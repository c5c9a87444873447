// ABOUTME: Numeric formatting that rounds away floating-point summation drift.
// ABOUTME: Calories and sodium round to whole numbers; other nutrients to 2 places.
package insight

import (
	"math"
	"strconv"
	"strings"
)

// DefaultDecimals is the precision used for all nutrients except calories and sodium.
const DefaultDecimals = 2

// Format rounds v to decimals fractional digits, half away from zero.
// NaN and infinities become 0.
func Format(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if decimals < 0 {
		decimals = 0
	}
	p := math.Pow10(decimals)
	r := math.Round(v*p) / p
	if r == 0 {
		// normalize -0
		return 0
	}
	return r
}

// FormatAmount parses s and formats it. Unparseable input yields 0.
func FormatAmount(s string, decimals int) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return Format(v, decimals)
}

// formatDefault formats at DefaultDecimals.
func formatDefault(v float64) float64 {
	return Format(v, DefaultDecimals)
}

// formatWhole formats at 0 decimals.
func formatWhole(v float64) float64 {
	return Format(v, 0)
}
