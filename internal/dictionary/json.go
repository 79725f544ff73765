package dictionary

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

const maxLineBytes = 1 << 20

// parseJSON reads a top-level record array or an {"entries": [...]} object.
func parseJSON(src []byte) ([]Record, error) {
	src = bytes.TrimSpace(bytes.TrimPrefix(src, utf8BOM))

	var raws []rawRecord
	switch {
	case len(src) > 0 && src[0] == '{':
		var doc struct {
			Entries *[]rawRecord `json:"entries"`
		}
		if err := json.Unmarshal(src, &doc); err != nil {
			return nil, jsonError(FormatJSON, src, err)
		}
		if doc.Entries == nil {
			return nil, domain.NewSourceError(string(FormatJSON), 1, "object has no \"entries\" array")
		}
		raws = *doc.Entries
	case len(src) > 0 && src[0] == '[':
		if err := json.Unmarshal(src, &raws); err != nil {
			return nil, jsonError(FormatJSON, src, err)
		}
	default:
		return nil, domain.NewSourceError(string(FormatJSON), 1, "top-level value must be an array or an object")
	}

	return toRecords(FormatJSON, raws)
}

// parseJSONL reads one record object per line. Blank lines are skipped.
func parseJSONL(src []byte) ([]Record, error) {
	scanner := bufio.NewScanner(bytes.NewReader(bytes.TrimPrefix(src, utf8BOM)))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var raws []rawRecord
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		var r rawRecord
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, domain.NewSourceError(string(FormatJSONL), line, err.Error())
		}
		r.line = line
		raws = append(raws, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewSourceError(string(FormatJSONL), line+1, err.Error())
	}

	return toRecords(FormatJSONL, raws)
}

// jsonError converts a decoder error to a SourceError carrying the line of
// the syntax error when the decoder reports an offset.
func jsonError(format Format, src []byte, err error) error {
	var offset int64 = -1
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syn):
		offset = syn.Offset
	case errors.As(err, &typ):
		offset = typ.Offset
	}
	if offset < 0 {
		return domain.NewSourceError(string(format), 0, err.Error())
	}
	if offset > int64(len(src)) {
		offset = int64(len(src))
	}
	line := bytes.Count(src[:offset], []byte{'\n'}) + 1
	return domain.NewSourceError(string(format), line, err.Error())
}
