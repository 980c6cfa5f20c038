package utils

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ToSnakeCase converts a string from CamelCase to snake_case.
func ToSnakeCase(s string) string {
	var res strings.Builder
	res.Grow(len(s) + 5)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := rune(s[i-1])
				var next rune
				if i < len(s)-1 {
					next = rune(s[i+1])
				}
				if (!unicode.IsUpper(prev) && prev != '_') ||
					(unicode.IsUpper(prev) && next != 0 && !unicode.IsUpper(next) && next != '_') {
					res.WriteRune('_')
				}
			}
			res.WriteRune(unicode.ToLower(r))
		} else {
			res.WriteRune(r)
		}
	}
	return res.String()
}

// FormatFloat renders a float as an MLIR float literal: it always carries a decimal point,
// so 1 becomes "1.0" and 1e-05 becomes "1.0e-05".
//
// Non-finite values are rendered in the hexadecimal bit form MLIR accepts for f32.
func FormatFloat(f float32) string {
	switch {
	case math.IsNaN(float64(f)):
		return "0x7FC00000"
	case math.IsInf(float64(f), 1):
		return "0x7F800000"
	case math.IsInf(float64(f), -1):
		return "0xFF800000"
	}
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if strings.ContainsRune(s, '.') {
		return s
	}
	if mantissa, exponent, found := strings.Cut(s, "e"); found {
		return mantissa + ".0e" + exponent
	}
	return s + ".0"
}
