// Package segment splits text into word tokens.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one whitespace-delimited piece of text.
type Token struct {
	Text     string // the token as it appears in the input
	Index    int    // position among all tokens
	Start    int    // byte offset of Text in the input
	End      int    // byte offset just past Text
	Sentence int    // zero-based sentence number

	// Text split into leading punctuation, the word and trailing punctuation.
	// A token made only of punctuation has it all in Prefix.
	Prefix string
	Core   string
	Suffix string
}

// HasPunctuation reports whether the token has leading or trailing
// punctuation around its core.
func (t Token) HasPunctuation() bool { return t.Prefix != "" || t.Suffix != "" }

const sentenceEnds = ".!?…"

// Segment splits text on runs of Unicode whitespace. Leading and trailing
// whitespace is dropped and token order follows the input. Empty or
// whitespace-only text yields no tokens.
func Segment(text string) []Token {
	var tokens []Token
	sentence := 0
	start := -1

	flush := func(end int) {
		tok := newToken(text[start:end], len(tokens), start, end, sentence)
		tokens = append(tokens, tok)
		if endsSentence(tok) {
			sentence++
		}
		start = -1
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			if start >= 0 {
				flush(i)
			}
		} else if start < 0 {
			start = i
		}
		i += size
	}
	if start >= 0 {
		flush(len(text))
	}
	return tokens
}

// Words returns the token texts only.
func Words(text string) []string {
	tokens := Segment(text)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func newToken(text string, index, start, end, sentence int) Token {
	core := strings.TrimLeftFunc(text, unicode.IsPunct)
	prefix := text[:len(text)-len(core)]
	trimmed := strings.TrimRightFunc(core, unicode.IsPunct)
	suffix := core[len(trimmed):]

	return Token{
		Text:     text,
		Index:    index,
		Start:    start,
		End:      end,
		Sentence: sentence,
		Prefix:   prefix,
		Core:     trimmed,
		Suffix:   suffix,
	}
}

func endsSentence(t Token) bool {
	tail := t.Suffix
	if t.Core == "" {
		tail = t.Prefix
	}
	return strings.ContainsAny(tail, sentenceEnds)
}
