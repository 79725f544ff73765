package domain

import "strings"

// PartOfSpeech represents the grammatical category of a dictionary word.
// The zero value means the source did not say.
type PartOfSpeech string

const (
	PartOfSpeechNone         PartOfSpeech = ""
	PartOfSpeechNoun         PartOfSpeech = "NOUN"
	PartOfSpeechVerb         PartOfSpeech = "VERB"
	PartOfSpeechAdjective    PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb       PartOfSpeech = "ADVERB"
	PartOfSpeechPronoun      PartOfSpeech = "PRONOUN"
	PartOfSpeechPreposition  PartOfSpeech = "PREPOSITION"
	PartOfSpeechConjunction  PartOfSpeech = "CONJUNCTION"
	PartOfSpeechInterjection PartOfSpeech = "INTERJECTION"
	PartOfSpeechDeterminer   PartOfSpeech = "DETERMINER"
	PartOfSpeechNumeral      PartOfSpeech = "NUMERAL"
	PartOfSpeechOther        PartOfSpeech = "OTHER"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNone, PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective,
		PartOfSpeechAdverb, PartOfSpeechPronoun, PartOfSpeechPreposition,
		PartOfSpeechConjunction, PartOfSpeechInterjection, PartOfSpeechDeterminer,
		PartOfSpeechNumeral, PartOfSpeechOther:
		return true
	}
	return false
}

// posMap maps lowercase POS spellings found in pronunciation sources.
var posMap = map[string]PartOfSpeech{
	"noun": PartOfSpeechNoun, "n": PartOfSpeechNoun, "name": PartOfSpeechNoun,
	"verb": PartOfSpeechVerb, "v": PartOfSpeechVerb,
	"adjective": PartOfSpeechAdjective, "adj": PartOfSpeechAdjective,
	"adverb": PartOfSpeechAdverb, "adv": PartOfSpeechAdverb,
	"pronoun": PartOfSpeechPronoun, "pron": PartOfSpeechPronoun,
	"preposition": PartOfSpeechPreposition, "prep": PartOfSpeechPreposition,
	"conjunction": PartOfSpeechConjunction, "conj": PartOfSpeechConjunction,
	"interjection": PartOfSpeechInterjection, "intj": PartOfSpeechInterjection,
	"determiner": PartOfSpeechDeterminer, "det": PartOfSpeechDeterminer, "article": PartOfSpeechDeterminer,
	"numeral": PartOfSpeechNumeral, "num": PartOfSpeechNumeral,
}

// ParsePartOfSpeech converts a source POS string to the enum. The lookup is
// case-insensitive and also accepts the enum spelling ("NOUN"). Empty input
// maps to PartOfSpeechNone, anything unrecognised to PartOfSpeechOther.
func ParsePartOfSpeech(s string) PartOfSpeech {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PartOfSpeechNone
	}
	if pos, ok := posMap[s]; ok {
		return pos
	}
	return PartOfSpeechOther
}

// Entry is a dictionary pronunciation for one word.
type Entry struct {
	Phonemes Sequence
	POS      PartOfSpeech
}
