// Package normalize applies context-sensitive allophonic rewrite rules to
// phoneme sequences.
package normalize

import (
	"maps"
	"slices"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// Normalizer holds one rule set per language. It is immutable; the With
// methods return modified copies.
type Normalizer struct {
	sets map[domain.Language]*RuleSet
}

// New creates a normalizer over sets. A later set for the same language
// replaces an earlier one.
func New(sets ...*RuleSet) *Normalizer {
	n := &Normalizer{sets: make(map[domain.Language]*RuleSet, len(sets))}
	for _, rs := range sets {
		n.sets[rs.Language] = rs
	}
	return n
}

// Default returns a normalizer with the built-in rule sets.
func Default() *Normalizer { return New(BuiltinRuleSets()...) }

// Normalize rewrites seq with the rule set of lang, falling back to the base
// language. A language without rules gets an unchanged copy.
func (n *Normalizer) Normalize(seq domain.Sequence, lang domain.Language) domain.Sequence {
	return n.RuleSet(lang).Apply(seq)
}

// RuleSet returns the set used for lang, or nil.
func (n *Normalizer) RuleSet(lang domain.Language) *RuleSet {
	if rs, ok := n.sets[lang]; ok {
		return rs
	}
	return n.sets[lang.Base()]
}

// Languages lists the languages that have a rule set of their own, sorted.
func (n *Normalizer) Languages() []domain.Language {
	return slices.Sorted(maps.Keys(n.sets))
}

// With returns a copy whose rule set for rs.Language is rs.
func (n *Normalizer) With(rs *RuleSet) *Normalizer {
	sets := maps.Clone(n.sets)
	sets[rs.Language] = rs
	return &Normalizer{sets: sets}
}

// WithAppended returns a copy where rs's rules run after the rules that
// rs.Language currently resolves to.
func (n *Normalizer) WithAppended(rs *RuleSet) *Normalizer {
	existing := n.RuleSet(rs.Language)
	if existing == nil {
		return n.With(rs)
	}
	merged := &RuleSet{
		Language: rs.Language,
		Rules:    append(slices.Clone(existing.Rules), rs.Rules...),
	}
	return n.With(merged)
}
