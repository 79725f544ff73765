package dictionary

import (
	"bufio"
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// Format names a dictionary source encoding.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
	FormatTSV   Format = "tsv"
	FormatCMU   Format = "cmu"

	// FormatRecords marks dictionaries built in memory from records.
	FormatRecords Format = "records"
)

func (f Format) String() string { return string(f) }

// ParseFormat converts a user-supplied format name. Empty input means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatJSON, FormatJSONL, FormatYAML, FormatTSV, FormatCMU:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "dict":
		return FormatCMU, nil
	}
	return "", domain.NewValidationError("format", "unknown dictionary format "+quote(s))
}

// FormatFromPath picks a format from a file extension. Unknown extensions
// return false.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".jsonl", ".ndjson":
		return FormatJSONL, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".tsv", ".txt":
		return FormatTSV, true
	case ".dict", ".cmu":
		return FormatCMU, true
	}
	return "", false
}

const (
	sniffLen   = 4 * 1024 // a few kilobytes, like http.DetectContentType
	sniffLines = 10
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Detect sniffs the first few kilobytes of src and reports its format.
func Detect(src []byte) (Format, error) {
	sniff := bytes.TrimPrefix(src, utf8BOM)
	if len(sniff) > sniffLen {
		sniff = sniff[:sniffLen]
	}
	sniff = bytes.TrimLeft(sniff, " \t\r\n")
	if len(sniff) == 0 {
		return "", domain.NewSourceError(string(FormatAuto), 0, "empty source")
	}

	switch sniff[0] {
	case '[':
		return FormatJSON, nil
	case '{':
		return sniffJSONObject(sniff), nil
	}

	lines := significantLines(sniff)
	if len(lines) == 0 {
		return "", domain.NewSourceError(string(FormatAuto), 0, "source has only comments")
	}
	if strings.HasPrefix(strings.TrimSpace(firstLine(sniff)), ";;;") {
		return FormatCMU, nil
	}
	switch {
	case looksYAML(lines[0]):
		return FormatYAML, nil
	case strings.Contains(lines[0], "\t"):
		return FormatTSV, nil
	case looksCMU(lines):
		return FormatCMU, nil
	}
	return "", domain.NewSourceError(string(FormatAuto), 0, "cannot detect dictionary format")
}

// sniffJSONObject tells a single JSON document ({"entries": [...]}) from
// JSON lines, where every line is one record object.
func sniffJSONObject(sniff []byte) Format {
	first := firstLine(sniff)
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(first), &obj); err != nil {
		// Object spans several lines.
		return FormatJSON
	}
	if _, ok := obj["entries"]; ok {
		return FormatJSON
	}
	return FormatJSONL
}

func firstLine(b []byte) string {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return strings.TrimRight(string(b[:i]), "\r")
	}
	return string(b)
}

// significantLines returns up to sniffLines non-blank, non-comment lines.
func significantLines(sniff []byte) []string {
	var out []string
	scanner := bufio.NewScanner(bytes.NewReader(sniff))
	for scanner.Scan() && len(out) < sniffLines {
		line := strings.TrimRight(scanner.Text(), "\r")
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "#") || strings.HasPrefix(t, ";;;") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func looksYAML(line string) bool {
	t := strings.TrimSpace(line)
	if t == "---" || strings.HasPrefix(t, "- ") {
		return true
	}
	if strings.Contains(line, "\t") {
		return false
	}
	key, _, ok := strings.Cut(t, ":")
	return ok && key != "" && !strings.ContainsAny(key, " \"'")
}

// looksCMU reports whether every sniffed line is a headword followed by
// ARPAbet-shaped phonemes.
func looksCMU(lines []string) bool {
	for _, line := range lines {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return false
		}
		for _, ph := range fields[1:] {
			if !isArpabetShaped(ph) {
				return false
			}
		}
	}
	return true
}

func isArpabetShaped(s string) bool {
	if len(s) < 1 || len(s) > 3 {
		return false
	}
	letters := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
			if i != letters {
				return false
			}
			letters++
		case c >= '0' && c <= '2' && i == len(s)-1 && letters > 0:
		default:
			return false
		}
	}
	return letters >= 1 && letters <= 2
}
