package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/miskai-core/internal/config"
	"github.com/heartmarshall/miskai-core/internal/dictionary"
	"github.com/heartmarshall/miskai-core/internal/domain"
)

var discard = slog.New(slog.DiscardHandler)

func TestNewBoundary_RulesDir(t *testing.T) {
	b, err := NewBoundary(config.EngineConfig{
		RulesDir:     "testdata/rules",
		MaxTextBytes: 1 << 20,
		BuiltinRules: true,
	}, discard)
	require.NoError(t, err)
	t.Cleanup(b.Shutdown)

	require.True(t, b.Initialized())
	require.Equal(t, 1, b.LoadDictionaryFormat("en-us", "cat\tkæt\n", "tsv"))

	h := b.ProcessText("cat", "en-US")
	out, ok := b.Read(h)
	require.True(t, ok)
	assert.Equal(t, "kæʔ", out)

	plain, err := NewBoundary(config.EngineConfig{BuiltinRules: true}, discard)
	require.NoError(t, err)
	t.Cleanup(plain.Shutdown)
	require.Equal(t, 1, plain.LoadDictionaryFormat("en-us", "cat\tkæt\n", "tsv"))
	out, _ = plain.Read(plain.ProcessText("cat", "en-us"))
	assert.Equal(t, "kæt", out)
}

func TestNewBoundary_ReinitializeKeepsOptions(t *testing.T) {
	b, err := NewBoundary(config.EngineConfig{RulesDir: "testdata/rules", BuiltinRules: true}, discard)
	require.NoError(t, err)
	t.Cleanup(b.Shutdown)

	b.Initialize()
	require.Equal(t, 1, b.LoadDictionaryFormat("en-us", "cat\tkæt\n", "tsv"))
	out, _ := b.Read(b.ProcessText("cat", "en-us"))
	assert.Equal(t, "kæʔ", out, "engines created by Initialize share the rule files")
}

func TestNewBoundary_BadRulesDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.yaml"), []byte("language: en\nunknown_key: 1\n"), 0o644))

	_, err := NewBoundary(config.EngineConfig{RulesDir: dir}, discard)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

// sourceMock is a func-field fake of RecordSource and RecordSink.
type sourceMock struct {
	ListRecordsFunc     func(ctx context.Context, lang domain.Language) ([]dictionary.Record, error)
	ReplaceLanguageFunc func(ctx context.Context, lang domain.Language, records []dictionary.Record) (int, error)
	CountFunc           func(ctx context.Context, lang domain.Language) (int, error)
}

func (m *sourceMock) ListRecords(ctx context.Context, lang domain.Language) ([]dictionary.Record, error) {
	return m.ListRecordsFunc(ctx, lang)
}

func (m *sourceMock) ReplaceLanguage(ctx context.Context, lang domain.Language, records []dictionary.Record) (int, error) {
	return m.ReplaceLanguageFunc(ctx, lang, records)
}

func (m *sourceMock) Count(ctx context.Context, lang domain.Language) (int, error) {
	return m.CountFunc(ctx, lang)
}

func TestPreload(t *testing.T) {
	b, err := NewBoundary(config.EngineConfig{BuiltinRules: true}, discard)
	require.NoError(t, err)
	t.Cleanup(b.Shutdown)

	var asked []domain.Language
	src := &sourceMock{ListRecordsFunc: func(_ context.Context, lang domain.Language) ([]dictionary.Record, error) {
		asked = append(asked, lang)
		if lang == "es" {
			return nil, nil
		}
		return []dictionary.Record{{Word: "cat", Phonemes: domain.Seq("k", "æ", "t")}}, nil
	}}

	require.NoError(t, Preload(context.Background(), src, b.Engine(), []string{"en-US", "es"}, discard))
	assert.Equal(t, []domain.Language{"en-us", "es"}, asked)

	entry, err := b.Engine().Lookup("en-us", "cat")
	require.NoError(t, err)
	assert.Equal(t, "kæt", entry.Phonemes.String())

	_, err = b.Engine().Dictionary("es")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreload_Errors(t *testing.T) {
	b, err := NewBoundary(config.EngineConfig{}, discard)
	require.NoError(t, err)
	t.Cleanup(b.Shutdown)

	boom := errors.New("connection refused")
	src := &sourceMock{ListRecordsFunc: func(context.Context, domain.Language) ([]dictionary.Record, error) {
		return nil, boom
	}}
	assert.ErrorIs(t, Preload(context.Background(), src, b.Engine(), []string{"en"}, discard), boom)
	assert.ErrorIs(t, Preload(context.Background(), src, b.Engine(), []string{"not a lang"}, discard), domain.ErrValidation)
}

func TestSeed(t *testing.T) {
	var (
		gotLang    domain.Language
		gotRecords []dictionary.Record
	)
	dst := &sourceMock{
		ReplaceLanguageFunc: func(_ context.Context, lang domain.Language, records []dictionary.Record) (int, error) {
			gotLang, gotRecords = lang, records
			return len(records), nil
		},
		CountFunc: func(context.Context, domain.Language) (int, error) {
			return len(gotRecords), nil
		},
	}

	n, err := Seed(context.Background(), dst, "en-US", "testdata/dict/en-us.tsv", dictionary.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, domain.Language("en-us"), gotLang)
	require.Len(t, gotRecords, 2)
	assert.Equal(t, "bell", gotRecords[0].Word, "records are sorted by word")
}

func TestSeed_CountMismatch(t *testing.T) {
	dst := &sourceMock{
		ReplaceLanguageFunc: func(_ context.Context, _ domain.Language, records []dictionary.Record) (int, error) {
			return len(records), nil
		},
		CountFunc: func(context.Context, domain.Language) (int, error) { return 1, nil },
	}

	_, err := Seed(context.Background(), dst, "en-us", "testdata/dict/en-us.tsv", dictionary.FormatAuto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrote 2 rows but 1 are stored")

	boom := errors.New("connection reset")
	dst.CountFunc = func(context.Context, domain.Language) (int, error) { return 0, boom }
	_, err = Seed(context.Background(), dst, "en-us", "testdata/dict/en-us.tsv", dictionary.FormatAuto)
	assert.ErrorIs(t, err, boom)
}

func TestSeed_Errors(t *testing.T) {
	dst := &sourceMock{ReplaceLanguageFunc: func(context.Context, domain.Language, []dictionary.Record) (int, error) {
		t.Fatal("ReplaceLanguage must not be called")
		return 0, nil
	}}

	_, err := Seed(context.Background(), dst, "en", "testdata/dict/missing.tsv", dictionary.FormatAuto)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "en.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"word":"x"}]`), 0o644))
	_, err = Seed(context.Background(), dst, "en", bad, dictionary.FormatAuto)
	assert.ErrorIs(t, err, domain.ErrMalformedSource)
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{
		Engine:       config.EngineConfig{MaxTextBytes: 1 << 20, BuiltinRules: true},
		Dictionaries: config.DictionaryConfig{Dir: "testdata/dict", Watch: true, Debounce: 10 * time.Millisecond, MaxSizeMB: 1},
		Server: config.ServerConfig{
			Host: "127.0.0.1", Port: 0,
			ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second,
			ShutdownTimeout: time.Second, MaxBodyMB: 1,
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, cfg, discard) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
