package exporter

import (
	"strconv"
)

// formatFloat formats a float64 value for CSV output with six decimal
// places, enough to round-trip daily return magnitudes.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}
