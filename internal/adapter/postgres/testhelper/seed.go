package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// UniqueLanguage returns a language tag no other test uses, so tests can
// share the container without cleaning up.
func UniqueLanguage() domain.Language {
	return domain.Language("x-" + uuid.New().String()[:8])
}

// SeedPronunciation inserts one row directly, bypassing the repository.
func SeedPronunciation(t *testing.T, pool *pgxpool.Pool, lang domain.Language, word string, phonemes ...string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO pronunciations (language, word, phonemes) VALUES ($1, $2, $3)`,
		lang.String(), word, phonemes,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPronunciation: %v", err)
	}
}
