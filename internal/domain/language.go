package domain

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is a normalized, lower-cased BCP-47-like language code such as
// "en-us". It partitions dictionaries, rule sets and grapheme tables.
type Language string

func (l Language) String() string { return string(l) }

// Base returns the primary language subtag: "en-us" → "en".
func (l Language) Base() Language {
	s := string(l)
	if i := strings.IndexByte(s, '-'); i > 0 {
		return Language(s[:i])
	}
	return l
}

// ParseLanguage normalizes a language code. Tags that x/text understands are
// canonicalized ("EN_us" → "en-us"); other codes made only of ASCII letters,
// digits and hyphens are accepted as-is after lower-casing.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewValidationError("language", "required")
	}
	s = strings.ReplaceAll(s, "_", "-")

	if tag, err := language.Parse(s); err == nil {
		return Language(strings.ToLower(tag.String())), nil
	}

	s = strings.ToLower(s)
	if !isLanguageCode(s) {
		return "", NewValidationError("language", "invalid code "+quote(s))
	}
	return Language(s), nil
}

// MustParseLanguage is ParseLanguage for literals; it panics on error.
func MustParseLanguage(s string) Language {
	l, err := ParseLanguage(s)
	if err != nil {
		panic(err)
	}
	return l
}

func isLanguageCode(s string) bool {
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}

func quote(s string) string { return "\"" + s + "\"" }
