package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/miskai-core/internal/dictionary"
	"github.com/heartmarshall/miskai-core/internal/domain"
)

// RecordSource reads stored dictionaries.
type RecordSource interface {
	ListRecords(ctx context.Context, lang domain.Language) ([]dictionary.Record, error)
}

// RecordSink replaces stored dictionaries.
type RecordSink interface {
	ReplaceLanguage(ctx context.Context, lang domain.Language, records []dictionary.Record) (int, error)
	Count(ctx context.Context, lang domain.Language) (int, error)
}

// RecordInstaller is satisfied by *pipeline.Engine.
type RecordInstaller interface {
	InstallRecords(lang string, records []dictionary.Record) (dictionary.Stats, error)
}

// Preload installs the stored dictionary of every language in langs.
// A language without rows is skipped with a warning; the first read or
// install error stops the preload.
func Preload(ctx context.Context, src RecordSource, dst RecordInstaller, langs []string, log *slog.Logger) error {
	for _, raw := range langs {
		lang, err := domain.ParseLanguage(raw)
		if err != nil {
			return fmt.Errorf("preload %s: %w", raw, err)
		}

		start := time.Now()
		records, err := src.ListRecords(ctx, lang)
		if err != nil {
			return fmt.Errorf("preload %s: %w", lang, err)
		}
		if len(records) == 0 {
			log.Warn("no stored dictionary to preload", slog.String("language", lang.String()))
			continue
		}
		if _, err := dst.InstallRecords(lang.String(), records); err != nil {
			return fmt.Errorf("preload %s: %w", lang, err)
		}
		log.Info("dictionary preloaded",
			slog.String("language", lang.String()),
			slog.Int("records", len(records)),
			slog.Duration("duration", time.Since(start)),
		)
	}
	return nil
}

// Seed parses a dictionary file and stores it as the dictionary of lang,
// replacing what was stored before. It returns the number of words stored
// for lang afterwards, which must match the rows written.
func Seed(ctx context.Context, dst RecordSink, lang, path string, format dictionary.Format) (int, error) {
	l, err := domain.ParseLanguage(lang)
	if err != nil {
		return 0, err
	}
	if format == dictionary.FormatAuto || format == "" {
		if f, ok := dictionary.FormatFromPath(path); ok {
			format = f
		}
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	d, err := dictionary.Parse(l, src, format)
	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", path, err)
	}
	written, err := dst.ReplaceLanguage(ctx, l, d.Records())
	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", l, err)
	}
	stored, err := dst.Count(ctx, l)
	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", l, err)
	}
	if stored != written {
		return 0, fmt.Errorf("seed %s: wrote %d rows but %d are stored", l, written, stored)
	}
	return stored, nil
}
