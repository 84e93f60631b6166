package utils

import "strings"

// NormalizePhone strips every non-digit character from a phone number
// (e.g. "010-1234-5678" -> "01012345678").
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
