package dictionary

import (
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// parseYAML reads the same shapes as parseJSON: a record sequence or a
// mapping with an "entries" sequence.
func parseYAML(src []byte) ([]Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, domain.NewSourceError(string(FormatYAML), 0, err.Error())
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, domain.NewSourceError(string(FormatYAML), 0, "empty document")
	}

	root := doc.Content[0]
	var list *yaml.Node
	switch root.Kind {
	case yaml.SequenceNode:
		list = root
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "entries" {
				list = root.Content[i+1]
				break
			}
		}
		if list == nil {
			return nil, domain.NewSourceError(string(FormatYAML), root.Line, "mapping has no \"entries\" key")
		}
		if list.Kind != yaml.SequenceNode {
			return nil, domain.NewSourceError(string(FormatYAML), list.Line, "\"entries\" must be a sequence")
		}
	default:
		return nil, domain.NewSourceError(string(FormatYAML), root.Line, "expected a sequence of records")
	}

	raws := make([]rawRecord, 0, len(list.Content))
	for _, n := range list.Content {
		var r rawRecord
		if err := n.Decode(&r); err != nil {
			return nil, domain.NewSourceError(string(FormatYAML), n.Line, err.Error())
		}
		r.line = n.Line
		raws = append(raws, r)
	}

	return toRecords(FormatYAML, raws)
}
