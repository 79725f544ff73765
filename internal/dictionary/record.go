package dictionary

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// rawRecord is the shape shared by the json, jsonl and yaml formats.
type rawRecord struct {
	Word     string       `json:"word" yaml:"word"`
	Phonemes phonemeField `json:"phonemes" yaml:"phonemes"`
	POS      string       `json:"pos,omitempty" yaml:"pos,omitempty"`

	line int
}

// phonemeField accepts either a list of symbols, taken verbatim, or a
// transcription string cut with domain.SplitSymbols.
type phonemeField domain.Sequence

func (p *phonemeField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = phonemeField(domain.SplitSymbols(s))
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("phonemes must be a string or a list of strings")
	}
	*p = fromList(list)
	return nil
}

func (p *phonemeField) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*p = phonemeField(domain.SplitSymbols(value.Value))
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*p = fromList(list)
		return nil
	}
	return fmt.Errorf("line %d: phonemes must be a string or a list of strings", value.Line)
}

func fromList(list []string) phonemeField {
	out := make(phonemeField, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, domain.Symbol(norm.NFC.String(s)))
	}
	return out
}

// toRecords validates raw records. line is the record's source line when the
// decoder knows it, otherwise its 1-based position.
func toRecords(format Format, raws []rawRecord) ([]Record, error) {
	out := make([]Record, 0, len(raws))
	for i, r := range raws {
		line := r.line
		if line == 0 {
			line = i + 1
		}
		word := strings.TrimSpace(r.Word)
		if word == "" {
			return nil, domain.NewSourceError(string(format), line, "record has no word")
		}
		if len(r.Phonemes) == 0 {
			return nil, domain.NewSourceError(string(format), line, "word "+quote(word)+" has no phonemes")
		}
		out = append(out, Record{
			Word:     word,
			Phonemes: domain.Sequence(r.Phonemes),
			POS:      domain.ParsePartOfSpeech(r.POS),
		})
	}
	return out, nil
}
