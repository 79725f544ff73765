package dictionary

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// parseTSV reads word<TAB>phonemes[<TAB>pos] lines. Phonemes may be slashed
// ("/kæt/") and may list alternatives separated by " | ", of which the first
// is kept. Lines starting with '#' are comments.
func parseTSV(src []byte) ([]Record, error) {
	scanner := bufio.NewScanner(bytes.NewReader(bytes.TrimPrefix(src, utf8BOM)))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var records []Record
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if t := strings.TrimSpace(text); t == "" || strings.HasPrefix(t, "#") {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) < 2 || len(fields) > 3 {
			return nil, domain.NewSourceError(string(FormatTSV), line, "expected word<TAB>phonemes[<TAB>pos]")
		}

		word := strings.TrimSpace(fields[0])
		if word == "" {
			return nil, domain.NewSourceError(string(FormatTSV), line, "record has no word")
		}
		ipa, _, _ := strings.Cut(fields[1], "|")
		seq := domain.SplitSymbols(ipa)
		if len(seq) == 0 {
			return nil, domain.NewSourceError(string(FormatTSV), line, "word "+quote(word)+" has no phonemes")
		}

		r := Record{Word: word, Phonemes: seq}
		if len(fields) == 3 {
			r.POS = domain.ParsePartOfSpeech(fields[2])
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewSourceError(string(FormatTSV), line+1, err.Error())
	}
	return records, nil
}
