package cmu

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func TestToSequence(t *testing.T) {
	tests := []struct {
		name     string
		phonemes []string
		want     string
	}{
		{"primary stress", []string{"K", "AE1", "T"}, "kˈæt"},
		{"secondary stress", []string{"EH2", "JH"}, "ˌɛdʒ"},
		{"reduced AH", []string{"DH", "AH0"}, "ðə"},
		{"reduced ER", []string{"B", "AH1", "T", "ER0"}, "bˈʌtɚ"},
		{"stressed ER", []string{"B", "ER1", "D"}, "bˈɝd"},
		{"unstressed IY keeps quality", []string{"DH", "IY0"}, "ði"},
		{"no stress marker", []string{"AA"}, "ɑ"},
		{"lower-case input", []string{"k", "ae1", "t"}, "kˈæt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toSequence(tt.phonemes)
			if err != nil {
				t.Fatalf("toSequence(%v) error: %v", tt.phonemes, err)
			}
			if got.String() != tt.want {
				t.Errorf("toSequence(%v) = %q, want %q", tt.phonemes, got.String(), tt.want)
			}
		})
	}
}

func TestToSequence_StressIsOwnSymbol(t *testing.T) {
	got, err := toSequence([]string{"K", "AE1", "T"})
	if err != nil {
		t.Fatal(err)
	}
	want := domain.Seq("k", "ˈ", "æ", "t")
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestToSequence_Errors(t *testing.T) {
	tests := []struct {
		name     string
		phonemes []string
	}{
		{"unknown phoneme", []string{"K", "XX1"}},
		{"stressed consonant", []string{"K1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := toSequence(tt.phonemes); err == nil {
				t.Errorf("toSequence(%v) expected error", tt.phonemes)
			}
		})
	}
}

func TestParseWordAndVariant(t *testing.T) {
	tests := []struct {
		raw         string
		wantWord    string
		wantVariant int
	}{
		{"HELLO", "hello", 0},
		{"HOUSE(2)", "house", 1},
		{"READ(3)", "read", 2},
		{"O'CLOCK", "o'clock", 0},
		{"BROKEN(", "broken(", 0},
		{"(PAREN)", "(paren)", 0},
		{"WORD(0)", "word(0)", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			word, variant := parseWordAndVariant(tt.raw)
			if word != tt.wantWord || variant != tt.wantVariant {
				t.Errorf("parseWordAndVariant(%q) = (%q, %d), want (%q, %d)",
					tt.raw, word, variant, tt.wantWord, tt.wantVariant)
			}
		})
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		word    string
		want    string
		skip    bool
		wantErr bool
	}{
		{name: "double space", line: "HELLO  HH AH0 L OW1", word: "hello", want: "həlˈoʊ"},
		{name: "single space", line: "cat k ae1 t", word: "cat", want: "kˈæt"},
		{name: "trailing comment", line: "RECORD  R EH1 K ER0 D # noun", word: "record", want: "ɹˈɛkɚd"},
		{name: "comment", line: ";;; header", skip: true},
		{name: "hash comment", line: "# generated from cmudict-0.7b", skip: true},
		{name: "blank", line: "   ", skip: true},
		{name: "word only", line: "HELLO", wantErr: true},
		{name: "bad phoneme", line: "HELLO  HH QQ0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parseLine(tt.line)
			switch {
			case tt.skip:
				if !errors.Is(err, errSkipLine) {
					t.Errorf("parseLine(%q) error = %v, want errSkipLine", tt.line, err)
				}
				return
			case tt.wantErr:
				if err == nil || errors.Is(err, errSkipLine) {
					t.Errorf("parseLine(%q) error = %v, want parse error", tt.line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLine(%q) error: %v", tt.line, err)
			}
			if p.Word != tt.word {
				t.Errorf("word = %q, want %q", p.Word, tt.word)
			}
			if p.Phonemes.String() != tt.want {
				t.Errorf("phonemes = %q, want %q", p.Phonemes.String(), tt.want)
			}
		})
	}
}

func TestParse_HashCommentLines(t *testing.T) {
	result, err := Parse(strings.NewReader("# comment\nCAT  K AE1 T\n  # indented\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if result.Stats.CommentLines != 2 {
		t.Errorf("CommentLines = %d, want 2", result.Stats.CommentLines)
	}
	if len(result.Pronunciations) != 1 || result.Pronunciations[0].Word != "cat" {
		t.Fatalf("Pronunciations = %+v, want only cat", result.Pronunciations)
	}
	if result.Pronunciations[0].Line != 2 {
		t.Errorf("Line = %d, want 2", result.Pronunciations[0].Line)
	}
}

func TestParse(t *testing.T) {
	f, err := os.Open(testdataPath(t, "sample.dict"))
	if err != nil {
		t.Fatalf("open sample: %v", err)
	}
	defer f.Close()

	result, err := Parse(f)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	st := result.Stats
	if st.TotalLines != 12 {
		t.Errorf("TotalLines = %d, want 12", st.TotalLines)
	}
	if st.CommentLines != 2 {
		t.Errorf("CommentLines = %d, want 2", st.CommentLines)
	}
	if st.ParsedLines != 9 {
		t.Errorf("ParsedLines = %d, want 9", st.ParsedLines)
	}
	if st.Variants != 2 {
		t.Errorf("Variants = %d, want 2", st.Variants)
	}
	if st.UniqueWords != 7 {
		t.Errorf("UniqueWords = %d, want 7", st.UniqueWords)
	}

	primary := result.Primary()
	if len(primary) != 7 {
		t.Fatalf("len(Primary()) = %d, want 7", len(primary))
	}
	wantOrder := []string{"hello", "butter", "water", "cat", "the", "record", "education"}
	got := map[string]string{}
	for i, p := range primary {
		if p.Word != wantOrder[i] {
			t.Errorf("primary[%d] = %q, want %q", i, p.Word, wantOrder[i])
		}
		if p.Variant != 0 {
			t.Errorf("Primary() returned variant %d for %q", p.Variant, p.Word)
		}
		got[p.Word] = p.Phonemes.String()
	}
	if got["butter"] != "bˈʌtɚ" {
		t.Errorf("butter = %q", got["butter"])
	}
	if got["the"] != "ðə" {
		t.Errorf("the = %q, want primary variant", got["the"])
	}
	if primary[0].Word != "hello" || primary[0].Line != 3 {
		t.Errorf("first primary = %q at line %d, want hello at line 3", primary[0].Word, primary[0].Line)
	}
}

func TestParse_MalformedLine(t *testing.T) {
	src := "HELLO  HH AH0 L OW1\nBROKEN\n"
	_, err := Parse(strings.NewReader(src))
	if !errors.Is(err, domain.ErrMalformedSource) {
		t.Fatalf("error = %v, want ErrMalformedSource", err)
	}
	var se *domain.SourceError
	if !errors.As(err, &se) {
		t.Fatalf("error %T is not *domain.SourceError", err)
	}
	if se.Line != 2 {
		t.Errorf("Line = %d, want 2", se.Line)
	}
}

func TestParse_Empty(t *testing.T) {
	result, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(result.Pronunciations) != 0 {
		t.Errorf("got %d pronunciations, want 0", len(result.Pronunciations))
	}
}
