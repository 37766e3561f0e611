package core

import (
	"math"
	"strconv"
	"strings"
)

// FormatValue renders v rounded to a whole number with comma thousands
// separators. Zero, and anything that rounds to zero, renders as "0".
// v must be finite; Merge and ReportView.Items reject anything else.
func FormatValue(v float64) string {
	rounded := math.Round(v)
	if rounded == 0 {
		return "0"
	}

	digits := strconv.FormatFloat(math.Abs(rounded), 'f', 0, 64)
	var b strings.Builder
	if rounded < 0 {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
