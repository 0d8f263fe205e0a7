package textutil

import (
	"strings"
	"unicode"
)

// SanitizeTitle keeps letters, digits, spaces, hyphens and underscores and
// trims trailing whitespace, producing a file-name-safe stem.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}
