// Package lexicon persists pronunciation dictionaries in PostgreSQL.
// One row per (language, word); phonemes are stored as a text[] of symbols.
package lexicon

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/miskai-core/internal/adapter/postgres"
	"github.com/heartmarshall/miskai-core/internal/dictionary"
	"github.com/heartmarshall/miskai-core/internal/domain"
)

const table = "pronunciations"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// LanguageCount is one row of Languages.
type LanguageCount struct {
	Language  domain.Language
	Words     int
	UpdatedAt time.Time
}

// Repo provides pronunciation persistence backed by PostgreSQL.
type Repo struct {
	pool      *pgxpool.Pool
	batchSize int
}

// New creates a new lexicon repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, batchSize: 1000}
}

// ReplaceLanguage atomically replaces every row of lang with records.
// Duplicate words keep the last record. Returns the number of rows written.
func (r *Repo) ReplaceLanguage(ctx context.Context, lang domain.Language, records []dictionary.Record) (int, error) {
	rows := dedupe(records)
	for _, rec := range rows {
		if rec.Word == "" || len(rec.Phonemes) == 0 {
			return 0, domain.NewValidationError("records", fmt.Sprintf("word %q has no phonemes", rec.Word))
		}
	}

	err := postgres.RunInTx(ctx, r.pool, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		sql, args, err := psql.Delete(table).Where(sq.Eq{"language": lang.String()}).ToSql()
		if err != nil {
			return fmt.Errorf("build delete: %w", err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, "delete pronunciations")
		}

		for start := 0; start < len(rows); start += r.batchSize {
			end := min(start+r.batchSize, len(rows))
			if err := r.insertBatch(ctx, q, lang, rows[start:end]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *Repo) insertBatch(ctx context.Context, q postgres.Querier, lang domain.Language, rows []dictionary.Record) error {
	batch := &pgx.Batch{}
	for _, rec := range rows {
		sql, args, err := psql.Insert(table).
			Columns("language", "word", "phonemes", "pos").
			Values(lang.String(), rec.Word, symbols(rec.Phonemes), rec.POS.String()).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		batch.Queue(sql, args...)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()
	for range rows {
		if _, err := br.Exec(); err != nil {
			return postgres.MapError(err, "insert pronunciations")
		}
	}
	return nil
}

// ListRecords returns every record of lang ordered by word.
func (r *Repo) ListRecords(ctx context.Context, lang domain.Language) ([]dictionary.Record, error) {
	sql, args, err := psql.Select("word", "phonemes", "pos").
		From(table).
		Where(sq.Eq{"language": lang.String()}).
		OrderBy("word").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "list pronunciations")
	}
	defer rows.Close()

	out := []dictionary.Record{}
	for rows.Next() {
		var (
			word, pos string
			phonemes  []string
		)
		if err := rows.Scan(&word, &phonemes, &pos); err != nil {
			return nil, postgres.MapError(err, "scan pronunciation")
		}
		out = append(out, dictionary.Record{
			Word:     word,
			Phonemes: domain.Seq(phonemes...),
			POS:      domain.PartOfSpeech(pos),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "list pronunciations")
	}
	return out, nil
}

// Languages lists stored languages with their word counts.
func (r *Repo) Languages(ctx context.Context) ([]LanguageCount, error) {
	sql, args, err := psql.Select("language", "count(*)", "max(updated_at)").
		From(table).
		GroupBy("language").
		OrderBy("language").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "list languages")
	}
	defer rows.Close()

	out := []LanguageCount{}
	for rows.Next() {
		var (
			lang string
			lc   LanguageCount
		)
		if err := rows.Scan(&lang, &lc.Words, &lc.UpdatedAt); err != nil {
			return nil, postgres.MapError(err, "scan language")
		}
		lc.Language = domain.Language(lang)
		out = append(out, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "list languages")
	}
	return out, nil
}

// Count returns the number of words stored for lang.
func (r *Repo) Count(ctx context.Context, lang domain.Language) (int, error) {
	sql, args, err := psql.Select("count(*)").
		From(table).
		Where(sq.Eq{"language": lang.String()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "count pronunciations")
	}
	return n, nil
}

// Ping checks database connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// dedupe keeps the last record per word, in first-seen order.
func dedupe(records []dictionary.Record) []dictionary.Record {
	idx := make(map[string]int, len(records))
	out := make([]dictionary.Record, 0, len(records))
	for _, rec := range records {
		if i, ok := idx[rec.Word]; ok {
			out[i] = rec
			continue
		}
		idx[rec.Word] = len(out)
		out = append(out, rec)
	}
	return out
}

func symbols(seq domain.Sequence) []string {
	out := make([]string, len(seq))
	for i, s := range seq {
		out[i] = string(s)
	}
	return out
}
