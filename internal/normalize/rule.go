package normalize

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// Rule rewrites Target to Replace when the symbols around it satisfy Before
// and After. An empty Replace deletes the target. A Stressed rule only
// applies inside words that carry a stress mark.
type Rule struct {
	Name     string
	Target   domain.Sequence
	Replace  domain.Sequence
	Before   Context
	After    Context
	Stressed bool
}

func (r Rule) String() string {
	replace := r.Replace.String()
	if replace == "" {
		replace = "∅"
	}
	return fmt.Sprintf("%s: %s → %s / %s _ %s", r.Name, r.Target, replace, r.Before, r.After)
}

// matches reports whether r applies at position i of seq. stressed tells
// whether seq holds any stress mark.
func (r Rule) matches(seq domain.Sequence, i int, stressed bool) bool {
	if r.Stressed && !stressed {
		return false
	}
	n := len(r.Target)
	if i+n > len(seq) || !seq[i:i+n].Equal(r.Target) {
		return false
	}
	return r.Before.accepts(seq, i-1) && r.After.accepts(seq, i+n)
}

// RuleSpec is the textual form of a rule, as written in rule files.
// Target and Replace are transcriptions; "∅" or "" as Replace means deletion.
type RuleSpec struct {
	Name     string `yaml:"name"`
	Target   string `yaml:"target"`
	Replace  string `yaml:"replace"`
	Before   string `yaml:"before"`
	After    string `yaml:"after"`
	Stressed bool   `yaml:"stressed"`
}

// Compile turns the spec into a rule using the given classes.
func (s RuleSpec) Compile(classes map[string]Class) (Rule, error) {
	target := domain.SplitSymbols(s.Target)
	if len(target) == 0 {
		return Rule{}, fmt.Errorf("rule %q: empty target", s.Name)
	}

	var replace domain.Sequence
	if r := strings.TrimSpace(s.Replace); r != "" && r != "∅" {
		replace = domain.SplitSymbols(r)
	}

	before, err := ParseContext(s.Before, classes)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: before: %w", s.Name, err)
	}
	after, err := ParseContext(s.After, classes)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: after: %w", s.Name, err)
	}

	name := s.Name
	if name == "" {
		name = s.Target + "→" + s.Replace
	}
	return Rule{
		Name:     name,
		Target:   target,
		Replace:  replace,
		Before:   before,
		After:    after,
		Stressed: s.Stressed,
	}, nil
}

// RuleSet is the ordered rule list of one language. Earlier rules win.
type RuleSet struct {
	Language domain.Language
	Rules    []Rule
}

// CompileRuleSet compiles specs in order. Custom classes are added to the
// built-in ones and may shadow them.
func CompileRuleSet(lang domain.Language, custom map[string][]string, specs []RuleSpec) (*RuleSet, error) {
	classes := maps.Clone(BuiltinClasses)
	for name, symbols := range custom {
		if !isClassName(name) {
			return nil, fmt.Errorf("class %q: name must be upper-case", name)
		}
		classes[name] = SetClass(symbols...)
	}

	rs := &RuleSet{Language: lang, Rules: make([]Rule, 0, len(specs))}
	for _, spec := range specs {
		r, err := spec.Compile(classes)
		if err != nil {
			return nil, err
		}
		rs.Rules = append(rs.Rules, r)
	}
	return rs, nil
}

// MustCompileRuleSet is like CompileRuleSet but panics on error.
func MustCompileRuleSet(lang domain.Language, custom map[string][]string, specs []RuleSpec) *RuleSet {
	rs, err := CompileRuleSet(lang, custom, specs)
	if err != nil {
		panic(err)
	}
	return rs
}

// Apply rewrites seq in a single left-to-right pass. Contexts always look at
// the input, never at symbols already emitted.
func (rs *RuleSet) Apply(seq domain.Sequence) domain.Sequence {
	if rs == nil || len(rs.Rules) == 0 {
		return seq.Clone()
	}

	stressed := slices.ContainsFunc(seq, domain.IsStress)
	out := make(domain.Sequence, 0, len(seq))
	for i := 0; i < len(seq); {
		rule, ok := rs.match(seq, i, stressed)
		if !ok {
			out = append(out, seq[i])
			i++
			continue
		}
		out = append(out, rule.Replace...)
		i += len(rule.Target)
	}
	return out
}

func (rs *RuleSet) match(seq domain.Sequence, i int, stressed bool) (Rule, bool) {
	for _, r := range rs.Rules {
		if r.matches(seq, i, stressed) {
			return r, true
		}
	}
	return Rule{}, false
}
