package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

func TestNormalize_AmericanEnglish(t *testing.T) {
	t.Parallel()

	n := Default()
	tests := []struct {
		name string
		in   domain.Sequence
		want string
	}{
		{name: "flap t", in: domain.Seq("b", "ˈ", "ʌ", "t", "ɚ"), want: "bˈʌɾɚ"},
		{name: "nasal flap consumes two symbols", in: domain.Seq("w", "ˈ", "ɪ", "n", "t", "ɚ"), want: "wˈɪɾ̃ɚ"},
		{name: "flap d", in: domain.Seq("l", "ˈ", "æ", "d", "ɚ"), want: "lˈæɾɚ"},
		{name: "no flap before stress", in: domain.Seq("ə", "t", "ˈ", "æ", "k"), want: "ətˈæk"},
		{name: "dark l at boundary", in: domain.Seq("f", "ˈ", "i", "l"), want: "fˈiɫ"},
		{name: "dark l before consonant", in: domain.Seq("m", "ˈ", "ɪ", "l", "k"), want: "mˈɪɫk"},
		{name: "clear l before vowel", in: domain.Seq("h", "ə", "l", "ˈ", "oʊ"), want: "həlˈoʊ"},
		{name: "initial strut reduced", in: domain.Seq("ʌ", "b", "ˈ", "aʊ", "t"), want: "əbˈaʊt"},
		{name: "stressed vowels kept", in: domain.Seq("b", "ˈ", "ɝ", "d"), want: "bˈɝd"},
		{name: "contexts read from input", in: domain.Seq("ˈ", "æ", "b", "ʌ", "t", "ɝ"), want: "ˈæbəɾɚ"},
		{name: "unmarked monosyllable kept", in: domain.Seq("k", "ʌ", "t"), want: "kʌt"},
		{name: "unmarked nurse kept", in: domain.Seq("b", "ɝ", "d"), want: "bɝd"},
		{name: "empty", in: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, n.Normalize(tt.in, "en-us").String())
		})
	}
}

func TestNormalize_Spanish(t *testing.T) {
	t.Parallel()

	n := Default()
	tests := []struct {
		in   domain.Sequence
		lang domain.Language
		want string
	}{
		{in: domain.Seq("n", "a", "d", "a"), lang: "es", want: "naða"},
		{in: domain.Seq("l", "o", "b", "o"), lang: "es", want: "loβo"},
		{in: domain.Seq("l", "a", "ɡ", "o"), lang: "es", want: "laɣo"},
		{in: domain.Seq("b", "a", "n", "k", "o"), lang: "es", want: "baŋko"},
		{in: domain.Seq("t", "e", "n", "ɡ", "o"), lang: "es-mx", want: "teŋɡo"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, n.Normalize(tt.in, tt.lang).String())
		})
	}
}

func TestNormalize_BritishEnglish(t *testing.T) {
	t.Parallel()

	n := Default()
	assert.Equal(t, "kˈɑ", n.Normalize(domain.Seq("k", "ˈ", "ɑ", "ɹ"), "en-gb").String())
	assert.Equal(t, "kˈæɹi", n.Normalize(domain.Seq("k", "ˈ", "æ", "ɹ", "i"), "en-gb").String())
	assert.Equal(t, "kˈɑdz", n.Normalize(domain.Seq("k", "ˈ", "ɑ", "ɹ", "d", "z"), "en-gb").String())
}

func TestNormalize_UnknownLanguageIsIdentity(t *testing.T) {
	t.Parallel()

	in := domain.Seq("b", "ʌ", "t", "ɚ")
	out := Default().Normalize(in, "fr")
	assert.Equal(t, in, out)

	out[0] = "p"
	assert.Equal(t, domain.Symbol("b"), in[0], "identity result must be a copy")
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := domain.Seq("b", "ˈ", "ʌ", "t", "ɚ")
	_ = Default().Normalize(in, "en-us")
	assert.Equal(t, domain.Seq("b", "ˈ", "ʌ", "t", "ɚ"), in)
}

// en-us and es built-in rules are idempotent: no output symbol is a target
// and every rewrite keeps the class of the neighbours its rules look at.
func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	n := Default()
	inputs := map[domain.Language][]domain.Sequence{
		"en-us": {
			domain.Seq("b", "ˈ", "ʌ", "t", "ɚ"),
			domain.Seq("w", "ˈ", "ɪ", "n", "t", "ɚ"),
			domain.Seq("b", "ʌ", "t", "ɝ"),
			domain.Seq("f", "ˈ", "i", "l"),
			domain.Seq("ʌ", "d", "ʌ", "t", "ʌ", "l"),
			domain.Seq("ˈ", "æ", "t", "t", "ɪ", "k"),
		},
		"es": {
			domain.Seq("n", "a", "d", "a"),
			domain.Seq("a", "b", "a", "b", "a"),
			domain.Seq("t", "e", "n", "ɡ", "o"),
			domain.Seq("a", "ɡ", "a", "n", "ɡ", "a"),
		},
	}
	for lang, seqs := range inputs {
		for _, in := range seqs {
			once := n.Normalize(in, lang)
			twice := n.Normalize(once, lang)
			assert.Equal(t, once, twice, "%s: %s", lang, in)
		}
	}
}

// en-gb r-dropping is not idempotent on adjacent r: the second r is only
// exposed to a vowel after the first pass.
func TestNormalize_BritishNotIdempotentOnDoubleR(t *testing.T) {
	t.Parallel()

	n := Default()
	once := n.Normalize(domain.Seq("ɑ", "ɹ", "ɹ"), "en-gb")
	twice := n.Normalize(once, "en-gb")

	assert.Equal(t, "ɑɹ", once.String())
	assert.Equal(t, "ɑ", twice.String())
}

func TestRuleSet_FirstRuleWins(t *testing.T) {
	t.Parallel()

	rs := MustCompileRuleSet("xx", nil, []RuleSpec{
		{Name: "first", Target: "t", Replace: "x"},
		{Name: "second", Target: "t", Replace: "y"},
	})
	assert.Equal(t, "axa", rs.Apply(domain.Seq("a", "t", "a")).String())
}

func TestRuleSet_ContextFromInput(t *testing.T) {
	t.Parallel()

	rs := MustCompileRuleSet("xx", nil, []RuleSpec{
		{Name: "a-to-b", Target: "a", Replace: "b"},
		{Name: "b-after-a", Target: "b", Replace: "c", Before: "a"},
	})
	assert.Equal(t, "bc", rs.Apply(domain.Seq("a", "b")).String())
}

func TestRuleSet_Deletion(t *testing.T) {
	t.Parallel()

	rs := MustCompileRuleSet("xx", nil, []RuleSpec{
		{Name: "drop-h", Target: "h", Replace: "∅", After: "#"},
	})
	assert.Equal(t, "ah", rs.Apply(domain.Seq("a", "h", "h")).String())
	assert.Equal(t, "hah", rs.Apply(domain.Seq("h", "a", "h", "h")).String())
}

func TestParseContext(t *testing.T) {
	t.Parallel()

	classes := map[string]Class{"V": domain.IsVowel, "SIB": SetClass("s", "z")}
	seq := domain.Seq("s", "a", "k")

	tests := []struct {
		expr string
		pos  int
		want bool
	}{
		{expr: "", pos: 0, want: true},
		{expr: "*", pos: -1, want: true},
		{expr: "#", pos: -1, want: true},
		{expr: "#", pos: 3, want: true},
		{expr: "#", pos: 0, want: false},
		{expr: "!#", pos: 0, want: true},
		{expr: "V", pos: 1, want: true},
		{expr: "V", pos: -1, want: false},
		{expr: "!V", pos: -1, want: true},
		{expr: "SIB", pos: 0, want: true},
		{expr: "k", pos: 2, want: true},
		{expr: "k|ɡ", pos: 1, want: false},
		{expr: "V|#", pos: 3, want: true},
		{expr: "!SIB", pos: 2, want: true},
	}
	for _, tt := range tests {
		c, err := ParseContext(tt.expr, classes)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, c.accepts(seq, tt.pos), "%q at %d", tt.expr, tt.pos)
	}
}

func TestParseContext_Errors(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"VOWEL", "V||C", "!"} {
		_, err := ParseContext(expr, BuiltinClasses)
		assert.Error(t, err, expr)
	}
}

func TestCompileRuleSet_Errors(t *testing.T) {
	t.Parallel()

	_, err := CompileRuleSet("xx", nil, []RuleSpec{{Name: "empty"}})
	assert.Error(t, err)

	_, err = CompileRuleSet("xx", map[string][]string{"lower": {"a"}}, nil)
	assert.Error(t, err)
}

func TestRule_String(t *testing.T) {
	t.Parallel()

	rs := MustCompileRuleSet("xx", nil, []RuleSpec{{Name: "drop", Target: "ɹ", Before: "V", After: "C|#"}})
	assert.Equal(t, "drop: ɹ → ∅ / V _ C|#", rs.Rules[0].String())
}

func TestNormalizer_Languages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []domain.Language{"en-gb", "en-us", "es"}, Default().Languages())
}
