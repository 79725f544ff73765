package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSymbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Sequence
	}{
		{name: "space separated", input: "k æ t", want: Seq("k", "æ", "t")},
		{name: "compact", input: "kæt", want: Seq("k", "æ", "t")},
		{name: "slashes", input: "/kæt/", want: Seq("k", "æ", "t")},
		{name: "brackets", input: "[kæt]", want: Seq("k", "æ", "t")},
		{name: "affricate", input: "tʃɪp", want: Seq("tʃ", "ɪ", "p")},
		{name: "diphthong", input: "naɪs", want: Seq("n", "aɪ", "s")},
		{name: "tie bar", input: "t͡ʃip", want: Seq("t͡ʃ", "i", "p")},
		{name: "length mark", input: "biːt", want: Seq("b", "iː", "t")},
		{name: "combining tilde", input: "wɪɾ̃ɚ", want: Seq("w", "ɪ", "ɾ̃", "ɚ")},
		{name: "stress marks standalone", input: "ˈbʌtɚ", want: Seq("ˈ", "b", "ʌ", "t", "ɚ")},
		{name: "aspiration", input: "pʰɪn", want: Seq("pʰ", "ɪ", "n")},
		{name: "multi-char with spaces", input: "h ə ˈl oʊ", want: Seq("h", "ə", "ˈl", "oʊ")},
		{name: "empty", input: "", want: nil},
		{name: "empty slashes", input: "//", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitSymbols(tt.input))
		})
	}
}

func TestSequence_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "kæt", Seq("k", "æ", "t").String())
	assert.Equal(t, "ˈbʌɾɚ", Seq("ˈ", "b", "ʌ", "ɾ", "ɚ").String())
	assert.Equal(t, "", Sequence(nil).String())
}

func TestSequence_EqualAndClone(t *testing.T) {
	t.Parallel()

	a := Seq("k", "æ", "t")
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b[0] = "ɡ"
	assert.False(t, a.Equal(b), "clone must not share the backing array")
	assert.Equal(t, Symbol("k"), a[0])
	assert.False(t, a.Equal(Seq("k", "æ")))
	assert.Nil(t, Sequence(nil).Clone())
}
