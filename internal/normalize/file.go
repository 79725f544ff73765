package normalize

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// RuleFile is one YAML rule file. It carries both rewrite rules and grapheme
// clusters that extend the fallback table of its language.
type RuleFile struct {
	Path           string              `yaml:"-"`
	Language       domain.Language     `yaml:"-"`
	RawLanguage    string              `yaml:"language"`
	ReplaceBuiltin bool                `yaml:"replace_builtin"`
	Classes        map[string][]string `yaml:"classes"`
	Rules          []RuleSpec          `yaml:"rules"`
	Graphemes      map[string]string   `yaml:"graphemes"`

	set *RuleSet
}

// RuleSet returns the compiled rules of the file.
func (f *RuleFile) RuleSet() *RuleSet { return f.set }

// GraphemeSequences returns the grapheme clusters cut into symbols. An empty
// transcription makes the cluster silent.
func (f *RuleFile) GraphemeSequences() map[string]domain.Sequence {
	out := make(map[string]domain.Sequence, len(f.Graphemes))
	for k, v := range f.Graphemes {
		seq := domain.SplitSymbols(v)
		if seq == nil {
			seq = domain.Sequence{}
		}
		out[k] = seq
	}
	return out
}

// ParseRuleFile decodes and compiles a rule file. name is used in errors.
// Every failure wraps domain.ErrValidation.
func ParseRuleFile(name string, data []byte) (*RuleFile, error) {
	var f RuleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewValidationError(name, "empty rule file")
		}
		return nil, domain.NewValidationError(name, err.Error())
	}
	f.Path = name

	lang, err := domain.ParseLanguage(f.RawLanguage)
	if err != nil {
		return nil, domain.NewValidationError(name, "language: "+err.Error())
	}
	f.Language = lang

	for i, r := range f.Rules {
		if strings.TrimSpace(r.Target) == "" {
			return nil, domain.NewValidationError(name, fmt.Sprintf("rules[%d]: empty target", i))
		}
	}
	for k := range f.Graphemes {
		if strings.TrimSpace(k) == "" {
			return nil, domain.NewValidationError(name, "graphemes: empty cluster")
		}
	}

	f.set, err = CompileRuleSet(lang, f.Classes, f.Rules)
	if err != nil {
		return nil, domain.NewValidationError(name, err.Error())
	}
	return &f, nil
}

// LoadRuleFile reads and parses the file at path.
func LoadRuleFile(path string) (*RuleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}
	return ParseRuleFile(path, data)
}

// LoadRuleDir parses every *.yaml and *.yml file in dir, in name order.
// A missing dir yields no files.
func LoadRuleDir(dir string) ([]*RuleFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read rules dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)

	files := make([]*RuleFile, 0, len(names))
	for _, name := range names {
		f, err := LoadRuleFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// WithFile returns a copy of n with the rules of f: replacing the rule set of
// its language when ReplaceBuiltin is set, otherwise running after it.
func (n *Normalizer) WithFile(f *RuleFile) *Normalizer {
	if f.ReplaceBuiltin {
		return n.With(f.set)
	}
	if len(f.set.Rules) == 0 {
		return n
	}
	return n.WithAppended(f.set)
}
