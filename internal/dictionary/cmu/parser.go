// Package cmu parses CMU Pronouncing Dictionary sources into IPA phoneme
// sequences. Pure function: reader in, pronunciations out.
package cmu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// errSkipLine signals that a line should be skipped (comment, empty).
var errSkipLine = errors.New("skip line")

type arpabet struct {
	ipa   domain.Symbol
	vowel bool
}

// arpabetMap maps ARPAbet phonemes (without stress markers) to IPA symbols.
var arpabetMap = map[string]arpabet{
	"AA": {"ɑ", true},
	"AE": {"æ", true},
	"AH": {"ʌ", true},
	"AO": {"ɔ", true},
	"AW": {"aʊ", true},
	"AY": {"aɪ", true},
	"EH": {"ɛ", true},
	"ER": {"ɝ", true},
	"EY": {"eɪ", true},
	"IH": {"ɪ", true},
	"IY": {"i", true},
	"OW": {"oʊ", true},
	"OY": {"ɔɪ", true},
	"UH": {"ʊ", true},
	"UW": {"u", true},

	"B":  {"b", false},
	"CH": {"tʃ", false},
	"D":  {"d", false},
	"DH": {"ð", false},
	"F":  {"f", false},
	"G":  {"ɡ", false},
	"HH": {"h", false},
	"JH": {"dʒ", false},
	"K":  {"k", false},
	"L":  {"l", false},
	"M":  {"m", false},
	"N":  {"n", false},
	"NG": {"ŋ", false},
	"P":  {"p", false},
	"R":  {"ɹ", false},
	"S":  {"s", false},
	"SH": {"ʃ", false},
	"T":  {"t", false},
	"TH": {"θ", false},
	"V":  {"v", false},
	"W":  {"w", false},
	"Y":  {"j", false},
	"Z":  {"z", false},
	"ZH": {"ʒ", false},
}

// reduced holds the IPA for unstressed (stress 0) vowels that differ from
// their stressed quality.
var reduced = map[string]domain.Symbol{
	"AH": "ə",
	"ER": "ɚ",
}

// Pronunciation is one parsed CMU line.
type Pronunciation struct {
	Word     string
	Variant  int // 0 for primary, 1 for (2), 2 for (3), etc.
	Phonemes domain.Sequence
	Line     int
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines   int
	CommentLines int
	ParsedLines  int
	Variants     int
	UniqueWords  int
}

// Result holds the parsed CMU data in file order.
type Result struct {
	Pronunciations []Pronunciation
	Stats          Stats
}

// Primary returns only the primary (variant 0) pronunciation of each word,
// keeping file order. A word listed only through variants keeps its first one.
func (r Result) Primary() []Pronunciation {
	seen := make(map[string]int, len(r.Pronunciations))
	out := make([]Pronunciation, 0, len(r.Pronunciations))
	for _, p := range r.Pronunciations {
		idx, ok := seen[p.Word]
		switch {
		case !ok:
			seen[p.Word] = len(out)
			out = append(out, p)
		case p.Variant == 0 && out[idx].Variant != 0:
			out[idx] = p
		case p.Variant == 0:
			// duplicate primary: last one wins
			out[idx] = p
		}
	}
	return out
}

// Parse reads a CMU dictionary. Malformed lines fail the whole parse with a
// domain.SourceError; comments and blank lines are skipped.
func Parse(r io.Reader) (Result, error) {
	var result Result
	words := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		result.Stats.TotalLines++
		line := scanner.Text()

		p, err := parseLine(line)
		if errors.Is(err, errSkipLine) {
			if isComment(strings.TrimSpace(line)) {
				result.Stats.CommentLines++
			}
			continue
		}
		if err != nil {
			return Result{}, domain.NewSourceError("cmu", result.Stats.TotalLines, err.Error())
		}

		p.Line = result.Stats.TotalLines
		result.Stats.ParsedLines++
		if p.Variant > 0 {
			result.Stats.Variants++
		}
		words[p.Word] = struct{}{}
		result.Pronunciations = append(result.Pronunciations, p)
	}

	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("scanner error: %w", err)
	}

	result.Stats.UniqueWords = len(words)
	return result, nil
}

func isComment(line string) bool {
	return strings.HasPrefix(line, ";;;") || strings.HasPrefix(line, "#")
}

// splitStress separates the trailing stress marker (0, 1, 2) from an ARPAbet
// phoneme. Stress is -1 for phonemes without a marker.
func splitStress(phoneme string) (string, int) {
	if phoneme == "" {
		return phoneme, -1
	}
	last := phoneme[len(phoneme)-1]
	if last >= '0' && last <= '2' {
		return phoneme[:len(phoneme)-1], int(last - '0')
	}
	return phoneme, -1
}

// toSequence converts ARPAbet phonemes to IPA symbols. Primary and secondary
// stress become ˈ and ˌ before the vowel.
func toSequence(phonemes []string) (domain.Sequence, error) {
	seq := make(domain.Sequence, 0, len(phonemes)+2)
	for _, raw := range phonemes {
		base, stress := splitStress(strings.ToUpper(raw))
		a, ok := arpabetMap[base]
		if !ok {
			return nil, fmt.Errorf("unknown ARPAbet phoneme %q", raw)
		}
		if !a.vowel {
			if stress >= 0 {
				return nil, fmt.Errorf("stress marker on consonant %q", raw)
			}
			seq = append(seq, a.ipa)
			continue
		}

		switch stress {
		case 1:
			seq = append(seq, domain.PrimaryStress, a.ipa)
		case 2:
			seq = append(seq, domain.SecondaryStress, a.ipa)
		case 0:
			if r, ok := reduced[base]; ok {
				seq = append(seq, r)
			} else {
				seq = append(seq, a.ipa)
			}
		default:
			seq = append(seq, a.ipa)
		}
	}
	return seq, nil
}

// parseLine parses a single line. Both the classic two-space layout
// ("HELLO  HH AH0 L OW1") and the single-space cmudict.dict layout are
// accepted; a "# ..." annotation is ignored, and a line holding only one
// is a comment.
func parseLine(line string) (Pronunciation, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, ";;;") {
		return Pronunciation{}, errSkipLine
	}
	if i := strings.IndexByte(trimmed, '#'); i >= 0 {
		trimmed = strings.TrimSpace(trimmed[:i])
		if trimmed == "" {
			return Pronunciation{}, errSkipLine
		}
	}

	fields := strings.Fields(trimmed)
	if len(fields) < 2 {
		return Pronunciation{}, fmt.Errorf("word %q has no phonemes", trimmed)
	}

	word, variant := parseWordAndVariant(fields[0])
	seq, err := toSequence(fields[1:])
	if err != nil {
		return Pronunciation{}, fmt.Errorf("word %q: %w", fields[0], err)
	}

	return Pronunciation{
		Word:     word,
		Variant:  variant,
		Phonemes: seq,
	}, nil
}

// parseWordAndVariant splits a raw CMU word like "HOUSE(2)" into the folded
// word and variant index. "(2)" maps to 1, "(3)" to 2, etc.
func parseWordAndVariant(raw string) (string, int) {
	idx := strings.IndexByte(raw, '(')
	if idx <= 0 || !strings.HasSuffix(raw, ")") {
		return domain.FoldWord(raw), 0
	}

	n, err := strconv.Atoi(raw[idx+1 : len(raw)-1])
	if err != nil || n < 1 {
		return domain.FoldWord(raw), 0
	}

	return domain.FoldWord(raw[:idx]), n - 1
}
