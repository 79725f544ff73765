// Package fallback derives phonemes from spelling for words that no
// dictionary knows.
package fallback

import (
	"maps"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// Table maps grapheme clusters to phoneme sequences for one language.
type Table struct {
	graphemes map[string]domain.Sequence
	maxLen    int // longest key, in runes
	stress    bool
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithInitialStress puts a primary stress mark before the first vowel.
func WithInitialStress() TableOption {
	return func(t *Table) { t.stress = true }
}

// NewTable builds a table from cluster → transcription pairs. Transcriptions
// are cut with domain.SplitSymbols; an empty one makes the cluster silent.
func NewTable(graphemes map[string]string, opts ...TableOption) *Table {
	t := &Table{graphemes: make(map[string]domain.Sequence, len(graphemes))}
	for k, v := range graphemes {
		t.set(k, domain.SplitSymbols(v))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Table) set(key string, seq domain.Sequence) {
	key = norm.NFC.String(strings.ToLower(key))
	if key == "" {
		return
	}
	if seq == nil {
		seq = domain.Sequence{}
	}
	t.graphemes[key] = seq
	if n := utf8.RuneCountInString(key); n > t.maxLen {
		t.maxLen = n
	}
}

// with returns a copy of t with extra clusters added or overridden.
func (t *Table) with(extra map[string]domain.Sequence) *Table {
	out := &Table{
		graphemes: maps.Clone(t.graphemes),
		maxLen:    t.maxLen,
		stress:    t.stress,
	}
	if out.graphemes == nil {
		out.graphemes = make(map[string]domain.Sequence, len(extra))
	}
	for k, v := range extra {
		out.set(k, v.Clone())
	}
	return out
}

// Len returns the number of clusters in the table.
func (t *Table) Len() int { return len(t.graphemes) }

var identity = &Table{graphemes: map[string]domain.Sequence{}}

// Resolver picks a grapheme table by language and applies it. It is
// immutable and safe for concurrent use.
type Resolver struct {
	tables map[domain.Language]*Table
}

// NewResolver creates a resolver over the given tables.
func NewResolver(tables map[domain.Language]*Table) *Resolver {
	return &Resolver{tables: maps.Clone(tables)}
}

// Default returns a resolver with the built-in en, es and de tables.
func Default() *Resolver {
	return NewResolver(map[domain.Language]*Table{
		"en": NewTable(englishGraphemes, WithInitialStress()),
		"es": NewTable(spanishGraphemes),
		"de": NewTable(germanGraphemes),
	})
}

// Extend returns a resolver whose table for lang also holds extra. The new
// table starts from the one lang currently resolves to.
func (r *Resolver) Extend(lang domain.Language, extra map[string]domain.Sequence) *Resolver {
	tables := maps.Clone(r.tables)
	if tables == nil {
		tables = make(map[domain.Language]*Table)
	}
	tables[lang] = r.table(lang).with(extra)
	return &Resolver{tables: tables}
}

// Languages returns the languages with a table of their own.
func (r *Resolver) Languages() []domain.Language {
	out := make([]domain.Language, 0, len(r.tables))
	for lang := range r.tables {
		out = append(out, lang)
	}
	return out
}

func (r *Resolver) table(lang domain.Language) *Table {
	if t, ok := r.tables[lang]; ok {
		return t
	}
	if t, ok := r.tables[lang.Base()]; ok {
		return t
	}
	return identity
}

// Resolve maps word to phonemes with the table of lang: exact language, then
// its base language, then identity. The word is lower-cased and scanned left
// to right taking the longest cluster the table knows; a rune the table does
// not cover becomes a symbol of its own. Apostrophes and hyphens are silent.
// A non-empty word never yields an empty sequence.
func (r *Resolver) Resolve(word string, lang domain.Language) domain.Sequence {
	w := []rune(norm.NFC.String(strings.ToLower(word)))
	if len(w) == 0 {
		return nil
	}
	t := r.table(lang)

	var out domain.Sequence
	for i := 0; i < len(w); {
		if isSilent(w[i]) {
			i++
			continue
		}
		n := t.match(w[i:])
		if n == 0 {
			out = append(out, domain.Symbol(string(w[i])))
			i++
			continue
		}
		out = append(out, t.graphemes[string(w[i:i+n])]...)
		i += n
	}

	if len(out) == 0 {
		out = t.naive(w)
	}
	if t.stress {
		out = stressFirstVowel(out)
	}
	return out
}

// match returns the rune length of the longest cluster at the start of w,
// or 0. Clusters never span a silent separator.
func (t *Table) match(w []rune) int {
	limit := min(t.maxLen, len(w))
	for i := 1; i < limit; i++ {
		if isSilent(w[i]) {
			limit = i
			break
		}
	}
	for n := limit; n >= 1; n-- {
		if _, ok := t.graphemes[string(w[:n])]; ok {
			return n
		}
	}
	return 0
}

// naive maps every rune on its own, ignoring silence, so that a word made
// only of silent clusters still sounds like something.
func (t *Table) naive(w []rune) domain.Sequence {
	out := make(domain.Sequence, 0, len(w))
	for _, r := range w {
		if unicode.IsSpace(r) {
			continue
		}
		if seq := t.graphemes[string(r)]; len(seq) > 0 {
			out = append(out, seq...)
			continue
		}
		out = append(out, domain.Symbol(string(r)))
	}
	return out
}

func isSilent(r rune) bool {
	switch r {
	case '\'', '’', '-', '‐':
		return true
	}
	return false
}

func stressFirstVowel(seq domain.Sequence) domain.Sequence {
	at := -1
	for i, s := range seq {
		if domain.IsStress(s) {
			return seq
		}
		if at < 0 && domain.IsVowel(s) {
			at = i
		}
	}
	if at < 0 {
		return seq
	}
	out := make(domain.Sequence, 0, len(seq)+1)
	out = append(out, seq[:at]...)
	out = append(out, domain.PrimaryStress)
	return append(out, seq[at:]...)
}
