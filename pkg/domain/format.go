package domain

import (
	"strconv"
	"strings"
)

// FormatValue renders a number with at least one decimal place (36 -> "36.0").
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
