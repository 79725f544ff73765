// Package dictionary holds per-language pronunciation dictionaries and the
// store that swaps them in atomically.
package dictionary

import (
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// Record is the serialized unit of a dictionary source.
type Record struct {
	Word     string
	Phonemes domain.Sequence
	POS      domain.PartOfSpeech
}

// Stats describes one parsed source.
type Stats struct {
	Records    int // records read from the source, duplicates included
	Words      int // distinct words installed
	Duplicates int
	Skipped    int // cmu pronunciation variants
}

// Dictionary is an immutable word→Entry map for one language.
// It is never mutated after construction, so it can be shared between
// goroutines without locking.
type Dictionary struct {
	lang     domain.Language
	format   Format
	entries  map[string]domain.Entry
	stats    Stats
	loadedAt time.Time
}

// FromRecords builds a dictionary from records in source order. When a word
// appears more than once the last record wins. Records without a word or
// without phonemes are rejected.
func FromRecords(lang domain.Language, records []Record) (*Dictionary, error) {
	d := &Dictionary{
		lang:     lang,
		format:   FormatRecords,
		entries:  make(map[string]domain.Entry, len(records)),
		loadedAt: time.Now(),
	}
	for i, r := range records {
		if r.Word == "" {
			return nil, domain.NewSourceError(string(d.format), i+1, "record has no word")
		}
		if len(r.Phonemes) == 0 {
			return nil, domain.NewSourceError(string(d.format), i+1, "word "+quote(r.Word)+" has no phonemes")
		}
		if _, dup := d.entries[r.Word]; dup {
			d.stats.Duplicates++
		}
		d.entries[r.Word] = domain.Entry{Phonemes: r.Phonemes.Clone(), POS: r.POS}
	}
	d.stats.Records = len(records)
	d.stats.Words = len(d.entries)
	return d, nil
}

// Lookup returns the entry for word. Matching is exact and case-sensitive.
// The returned phonemes are a copy.
func (d *Dictionary) Lookup(word string) (domain.Entry, bool) {
	if d == nil {
		return domain.Entry{}, false
	}
	e, ok := d.entries[word]
	if !ok {
		return domain.Entry{}, false
	}
	e.Phonemes = e.Phonemes.Clone()
	return e, true
}

func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

func (d *Dictionary) Language() domain.Language { return d.lang }
func (d *Dictionary) Format() Format            { return d.format }
func (d *Dictionary) Stats() Stats              { return d.stats }
func (d *Dictionary) LoadedAt() time.Time       { return d.loadedAt }

// Records returns the dictionary content sorted by word.
func (d *Dictionary) Records() []Record {
	out := make([]Record, 0, len(d.entries))
	for w, e := range d.entries {
		out = append(out, Record{Word: w, Phonemes: e.Phonemes.Clone(), POS: e.POS})
	}
	slices.SortFunc(out, func(a, b Record) int { return strings.Compare(a.Word, b.Word) })
	return out
}

func quote(s string) string { return "\"" + s + "\"" }
