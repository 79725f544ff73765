package dictionary

import (
	"bytes"
	"errors"

	"github.com/heartmarshall/miskai-core/internal/dictionary/cmu"
	"github.com/heartmarshall/miskai-core/internal/domain"
)

// Parse decodes src in the given format into a dictionary for lang.
// FormatAuto sniffs the format first. Every failure to read the source wraps
// domain.ErrMalformedSource.
func Parse(lang domain.Language, src []byte, format Format) (*Dictionary, error) {
	if format == "" {
		format = FormatAuto
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, domain.NewSourceError(string(format), 0, "empty source")
	}

	if format == FormatAuto {
		detected, err := Detect(src)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	if format == FormatCMU {
		return parseCMU(lang, src)
	}

	var (
		records []Record
		err     error
	)
	switch format {
	case FormatJSON:
		records, err = parseJSON(src)
	case FormatJSONL:
		records, err = parseJSONL(src)
	case FormatYAML:
		records, err = parseYAML(src)
	case FormatTSV:
		records, err = parseTSV(src)
	default:
		return nil, domain.NewValidationError("format", "unknown dictionary format "+quote(string(format)))
	}
	if err != nil {
		return nil, asSourceError(format, err)
	}

	d, err := FromRecords(lang, records)
	if err != nil {
		return nil, asSourceError(format, err)
	}
	d.format = format
	return d, nil
}

func parseCMU(lang domain.Language, src []byte) (*Dictionary, error) {
	res, err := cmu.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, asSourceError(FormatCMU, err)
	}

	primary := res.Primary()
	records := make([]Record, 0, len(primary))
	for _, p := range primary {
		records = append(records, Record{Word: p.Word, Phonemes: p.Phonemes})
	}

	d, err := FromRecords(lang, records)
	if err != nil {
		return nil, asSourceError(FormatCMU, err)
	}
	d.format = FormatCMU
	d.stats = Stats{
		Records:    res.Stats.ParsedLines,
		Words:      d.Len(),
		Duplicates: max(0, res.Stats.ParsedLines-res.Stats.Variants-len(primary)),
		Skipped:    res.Stats.Variants,
	}
	return d, nil
}

// asSourceError keeps SourceErrors as they are and wraps anything else.
func asSourceError(format Format, err error) error {
	if errors.Is(err, domain.ErrMalformedSource) {
		return err
	}
	return domain.NewSourceError(string(format), 0, err.Error())
}
