package exporter

import (
	"math"
	"strconv"

	"boxscorecli/internal/dataprocessing"
)

// FormatValue renders a cell for text output. Numbers use the shortest
// representation that parses back to the same float64; missing and undefined
// numbers render as an empty string.
func FormatValue(v dataprocessing.Value) string {
	switch v.Kind() {
	case dataprocessing.KindNumber:
		f, _ := v.Float()
		return formatFloat(f)
	case dataprocessing.KindString:
		return v.Text()
	default:
		return ""
	}
}

// formatFloat formats a float64 without exponent notation so ids stay readable
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatRow renders every cell of a row
func formatRow(row []dataprocessing.Value) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = FormatValue(v)
	}
	return out
}
