package lexicon_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/miskai-core/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/miskai-core/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/miskai-core/internal/dictionary"
	"github.com/heartmarshall/miskai-core/internal/domain"
)

func records() []dictionary.Record {
	return []dictionary.Record{
		{Word: "water", Phonemes: domain.Seq("w", "ˈ", "ɔ", "t", "ɚ"), POS: domain.PartOfSpeechNoun},
		{Word: "butter", Phonemes: domain.Seq("b", "ˈ", "ʌ", "t", "ɚ")},
		{Word: "cat", Phonemes: domain.Seq("k", "æ", "t")},
	}
}

func TestRepo_ReplaceAndList(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := lexicon.New(pool)
	ctx := context.Background()
	lang := testhelper.UniqueLanguage()

	n, err := repo.ReplaceLanguage(ctx, lang, records())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := repo.ListRecords(ctx, lang)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "butter", got[0].Word, "records are ordered by word")
	assert.Equal(t, "ˈ", string(got[0].Phonemes[1]))
	assert.Equal(t, domain.PartOfSpeechNoun, got[2].POS)
	assert.Equal(t, "wˈɔtɚ", got[2].Phonemes.String())

	count, err := repo.Count(ctx, lang)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepo_ReplaceRemovesOldRows(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := lexicon.New(pool)
	ctx := context.Background()
	lang := testhelper.UniqueLanguage()

	_, err := repo.ReplaceLanguage(ctx, lang, records())
	require.NoError(t, err)

	_, err = repo.ReplaceLanguage(ctx, lang, []dictionary.Record{
		{Word: "dog", Phonemes: domain.Seq("d", "ɑ", "ɡ")},
	})
	require.NoError(t, err)

	got, err := repo.ListRecords(ctx, lang)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dog", got[0].Word)
}

func TestRepo_ReplaceDuplicatesLastWins(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := lexicon.New(pool)
	ctx := context.Background()
	lang := testhelper.UniqueLanguage()

	n, err := repo.ReplaceLanguage(ctx, lang, []dictionary.Record{
		{Word: "read", Phonemes: domain.Seq("ɹ", "i", "d")},
		{Word: "read", Phonemes: domain.Seq("ɹ", "ɛ", "d")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.ListRecords(ctx, lang)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ɹɛd", got[0].Phonemes.String())
}

func TestRepo_ReplaceInvalidKeepsPrevious(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := lexicon.New(pool)
	ctx := context.Background()
	lang := testhelper.UniqueLanguage()

	_, err := repo.ReplaceLanguage(ctx, lang, records())
	require.NoError(t, err)

	_, err = repo.ReplaceLanguage(ctx, lang, []dictionary.Record{{Word: "empty"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	count, err := repo.Count(ctx, lang)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepo_Languages(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := lexicon.New(pool)
	ctx := context.Background()
	lang := testhelper.UniqueLanguage()

	testhelper.SeedPronunciation(t, pool, lang, "uno", "u", "n", "o")
	testhelper.SeedPronunciation(t, pool, lang, "dos", "d", "o", "s")

	langs, err := repo.Languages(ctx)
	require.NoError(t, err)

	var found *lexicon.LanguageCount
	for i := range langs {
		if langs[i].Language == lang {
			found = &langs[i]
		}
	}
	require.NotNil(t, found, "seeded language must be listed")
	assert.Equal(t, 2, found.Words)
	assert.False(t, found.UpdatedAt.IsZero())
}

func TestRepo_ListUnknownLanguageIsEmpty(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := lexicon.New(pool)

	got, err := repo.ListRecords(context.Background(), testhelper.UniqueLanguage())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestRepo_RoundTripThroughDictionary(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := lexicon.New(pool)
	ctx := context.Background()
	lang := testhelper.UniqueLanguage()

	_, err := repo.ReplaceLanguage(ctx, lang, records())
	require.NoError(t, err)

	recs, err := repo.ListRecords(ctx, lang)
	require.NoError(t, err)

	d, err := dictionary.FromRecords(lang, recs)
	require.NoError(t, err)
	entry, ok := d.Lookup("cat")
	require.True(t, ok)
	assert.Equal(t, "kæt", entry.Phonemes.String())
}
