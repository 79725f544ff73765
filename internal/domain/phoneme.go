package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Symbol is one phoneme symbol. It may span several runes ("tʃ", "aɪ", "ɾ̃").
type Symbol string

// Stress marks are standalone symbols placed before the stressed vowel.
const (
	PrimaryStress   Symbol = "ˈ"
	SecondaryStress Symbol = "ˌ"
)

// Sequence is an ordered phoneme sequence.
type Sequence []Symbol

// String renders the sequence as a transcription by concatenating symbols.
func (s Sequence) String() string {
	var b strings.Builder
	for _, sym := range s {
		b.WriteString(string(sym))
	}
	return b.String()
}

// Equal reports whether two sequences hold the same symbols in the same order.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no backing array with s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Seq builds a Sequence from symbol literals.
func Seq(symbols ...string) Sequence {
	out := make(Sequence, len(symbols))
	for i, s := range symbols {
		out[i] = Symbol(s)
	}
	return out
}

// multiRuneSymbols are cut as one symbol when a transcription has no spaces.
// Longest first.
var multiRuneSymbols = []string{
	"tʃ", "dʒ",
	"aɪ", "aʊ", "eɪ", "oʊ", "ɔɪ", "əʊ",
}

// modifiers attach to the preceding symbol.
var modifiers = map[rune]bool{
	'ː': true, 'ˑ': true, 'ʰ': true, 'ʲ': true, 'ʷ': true,
	'ˠ': true, 'ˤ': true, '̃': true, '˞': true,
}

const (
	tieBelow = '͜'
	tieAbove = '͡'
)

// SplitSymbols parses a textual transcription into symbols.
//
// Whitespace-separated input ("k æ t") is split on whitespace. Compact input
// ("kæt") is cut rune by rune: known affricates and diphthongs stay whole,
// combining marks and modifier letters join the preceding symbol, a tie bar
// joins the next rune, and stress marks stand alone. Surrounding "/…/" or "[…]"
// delimiters are removed.
func SplitSymbols(s string) Sequence {
	s = norm.NFC.String(strings.TrimSpace(s))
	s = trimDelimiters(s)
	if s == "" {
		return nil
	}

	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		fields := strings.Fields(s)
		out := make(Sequence, 0, len(fields))
		for _, f := range fields {
			out = append(out, Symbol(f))
		}
		return out
	}

	var out Sequence
	joinNext := false
	for i := 0; i < len(s); {
		if sym, ok := matchMultiRune(s[i:]); ok && !joinNext {
			out = append(out, Symbol(sym))
			i += len(sym)
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case joinNext && len(out) > 0:
			out[len(out)-1] += Symbol(s[i : i+size])
			joinNext = false
		case r == tieAbove || r == tieBelow:
			if len(out) > 0 {
				out[len(out)-1] += Symbol(s[i : i+size])
			}
			joinNext = true
		case Symbol(s[i:i+size]) == PrimaryStress || Symbol(s[i:i+size]) == SecondaryStress:
			out = append(out, Symbol(s[i:i+size]))
		case (unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || modifiers[r]) && len(out) > 0:
			out[len(out)-1] += Symbol(s[i : i+size])
		default:
			out = append(out, Symbol(s[i:i+size]))
		}
		i += size
	}
	return out
}

func matchMultiRune(s string) (string, bool) {
	for _, m := range multiRuneSymbols {
		if !strings.HasPrefix(s, m) {
			continue
		}
		// A following tie bar or combining mark belongs to the last rune of
		// the cluster, so leave the cut to the rune loop.
		rest := s[len(m):]
		if r, _ := utf8.DecodeRuneInString(rest); r == tieAbove || r == tieBelow {
			return "", false
		}
		return m, true
	}
	return "", false
}

func trimDelimiters(s string) string {
	if len(s) >= 2 {
		if (s[0] == '/' && s[len(s)-1] == '/') || (s[0] == '[' && s[len(s)-1] == ']') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
