package domain

import (
	"strings"
	"unicode"
)

// FoldWord prepares a headword for case-insensitive sources: trims
// surrounding whitespace and lower-cases it. Inner characters, including
// apostrophes, hyphens and diacritics, are preserved.
func FoldWord(word string) string {
	return strings.Map(unicode.ToLower, strings.TrimSpace(word))
}

// HasUpper reports whether s contains an upper-case letter.
func HasUpper(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}
