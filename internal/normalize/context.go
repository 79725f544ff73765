package normalize

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// Class is a named predicate over symbols.
type Class func(domain.Symbol) bool

// BuiltinClasses are available to every rule set.
var BuiltinClasses = map[string]Class{
	"V":      domain.IsVowel,
	"C":      domain.IsConsonant,
	"STRESS": domain.IsStress,
}

// SetClass builds a class from a symbol list.
func SetClass(symbols ...string) Class {
	set := make(map[domain.Symbol]bool, len(symbols))
	for _, s := range symbols {
		set[domain.Symbol(s)] = true
	}
	return func(s domain.Symbol) bool { return set[s] }
}

// Boundary is the context token for the edge of the word.
const Boundary = "#"

type term struct {
	negate   bool
	boundary bool
	class    Class
	literal  domain.Symbol
}

func (t term) accepts(seq domain.Sequence, i int) bool {
	var ok bool
	switch {
	case i < 0 || i >= len(seq):
		ok = t.boundary
	case t.boundary:
		ok = false
	case t.class != nil:
		ok = t.class(seq[i])
	default:
		ok = seq[i] == t.literal
	}
	return ok != t.negate
}

// Context constrains the symbol next to a rule target. The zero value
// accepts anything.
type Context struct {
	src   string
	terms []term
}

func (c Context) String() string {
	if c.src == "" {
		return "*"
	}
	return c.src
}

// accepts reports whether position i of seq satisfies the context.
// Positions outside seq are the word boundary.
func (c Context) accepts(seq domain.Sequence, i int) bool {
	if len(c.terms) == 0 {
		return true
	}
	for _, t := range c.terms {
		if t.accepts(seq, i) {
			return true
		}
	}
	return false
}

// ParseContext parses a context expression: "" or "*" for any symbol, "#"
// for the word boundary, a class name, a literal symbol, "!x" for negation,
// and "a|b" for alternatives. An upper-case ASCII word that names no class
// is an error.
func ParseContext(expr string, classes map[string]Class) (Context, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || expr == "*" {
		return Context{}, nil
	}

	c := Context{src: expr}
	for _, alt := range strings.Split(expr, "|") {
		alt = strings.TrimSpace(alt)
		var t term
		if strings.HasPrefix(alt, "!") {
			t.negate = true
			alt = strings.TrimSpace(alt[1:])
		}
		switch {
		case alt == "":
			return Context{}, fmt.Errorf("empty alternative in %q", expr)
		case alt == Boundary:
			t.boundary = true
		case classes[alt] != nil:
			t.class = classes[alt]
		case isClassName(alt):
			return Context{}, fmt.Errorf("unknown class %q", alt)
		default:
			t.literal = domain.Symbol(alt)
		}
		c.terms = append(c.terms, t)
	}
	return c, nil
}

func isClassName(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && c != '_' && (c < '0' || c > '9' || i == 0) {
			return false
		}
	}
	return s != ""
}
