package exporter

import "strconv"

// formatFloat formats a float64 with the fewest digits that still parse
// back to the same value
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// roundTo rounds f to the given number of decimal places for report cells
func roundTo(f float64, places int) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', places, 64), 64)
	if err != nil {
		return f
	}
	return v
}
