package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)
	lang := UniqueLanguage()

	SeedPronunciation(t, pool, lang, "cat", "k", "æ", "t")

	var phonemes []string
	err := pool.QueryRow(context.Background(),
		`SELECT phonemes FROM pronunciations WHERE language = $1 AND word = $2`,
		lang.String(), "cat",
	).Scan(&phonemes)
	if err != nil {
		t.Fatalf("expected row in DB, got error: %v", err)
	}
	if len(phonemes) != 3 || phonemes[1] != "æ" {
		t.Fatalf("phonemes = %v, want [k æ t]", phonemes)
	}
}
