package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// vowelRunes are the IPA vowel letters. A symbol is a vowel when its first
// rune is one of them ("aɪ", "iː" and "ɚ" all count).
var vowelRunes = map[rune]bool{
	'a': true, 'e': true, 'i': true, 'o': true, 'u': true, 'y': true,
	'æ': true, 'ɑ': true, 'ɒ': true, 'ɐ': true, 'ə': true, 'ɚ': true,
	'ɛ': true, 'ɜ': true, 'ɝ': true, 'ɞ': true, 'ɪ': true, 'ɨ': true,
	'ʉ': true, 'ʊ': true, 'ʌ': true, 'ɔ': true, 'ø': true, 'œ': true,
	'ɶ': true, 'ʏ': true, 'ɤ': true, 'ɯ': true, 'ɵ': true, 'ɘ': true,
}

func firstRune(s Symbol) rune {
	r, _ := utf8.DecodeRuneInString(strings.TrimLeft(string(s), "ˈˌ"))
	return r
}

// IsStress reports whether s is a stress mark.
func IsStress(s Symbol) bool { return s == PrimaryStress || s == SecondaryStress }

// IsVowel reports whether s is a vowel symbol.
func IsVowel(s Symbol) bool {
	return !IsStress(s) && vowelRunes[firstRune(s)]
}

// IsConsonant reports whether s is a consonant: a letter symbol that is not
// a vowel. Stress marks and punctuation are neither.
func IsConsonant(s Symbol) bool {
	if s == "" || IsStress(s) {
		return false
	}
	r := firstRune(s)
	return unicode.IsLetter(r) && !vowelRunes[r]
}
