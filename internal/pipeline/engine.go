// Package pipeline turns text into phoneme transcriptions: segment, look up
// or derive each word, then apply allophonic rules.
package pipeline

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/heartmarshall/miskai-core/internal/dictionary"
	"github.com/heartmarshall/miskai-core/internal/domain"
	"github.com/heartmarshall/miskai-core/internal/fallback"
	"github.com/heartmarshall/miskai-core/internal/normalize"
	"github.com/heartmarshall/miskai-core/internal/segment"
)

// Source tells where the phonemes of a token came from.
type Source string

const (
	SourceDictionary  Source = "dictionary"
	SourceFallback    Source = "fallback"
	SourcePunctuation Source = "punctuation"
)

// Result is the transcription of one token.
type Result struct {
	Token    segment.Token
	Raw      domain.Sequence // before normalization
	Phonemes domain.Sequence // after normalization
	Source   Source
	Output   string
}

// Engine is one independent pipeline instance with its own dictionaries.
// All methods are safe for concurrent use.
type Engine struct {
	log        *slog.Logger
	store      *dictionary.Store
	resolver   *fallback.Resolver
	normalizer *normalize.Normalizer
	foldCase   bool
	maxText    int
	closed     atomic.Bool
}

// New creates an engine with an empty dictionary store.
func New(opts ...Option) *Engine {
	o := options{
		maxTextBytes: DefaultMaxTextBytes,
		builtinRules: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	resolver := o.resolver
	if resolver == nil {
		resolver = fallback.Default()
	}
	normalizer := o.normalizer
	switch {
	case normalizer != nil:
	case o.builtinRules:
		normalizer = normalize.Default()
	default:
		normalizer = normalize.New()
	}

	for _, f := range o.ruleFiles {
		normalizer = normalizer.WithFile(f)
		if g := f.GraphemeSequences(); len(g) > 0 {
			resolver = resolver.Extend(f.Language, g)
		}
	}

	e := &Engine{
		log:        o.logger.With("component", "pipeline"),
		store:      dictionary.NewStore(),
		resolver:   resolver,
		normalizer: normalizer,
		foldCase:   o.foldCase,
		maxText:    o.maxTextBytes,
	}
	e.log.Info("engine initialized",
		slog.Int("rule_files", len(o.ruleFiles)),
		slog.Any("rule_languages", normalizer.Languages()),
		slog.Bool("fold_case", o.foldCase),
	)
	return e
}

// Process transcribes text. Tokens are joined with single spaces in input
// order. Empty text gives an empty string for any language.
func (e *Engine) Process(text, lang string) (string, error) {
	results, err := e.Analyze(text, lang)
	if err != nil {
		return "", err
	}
	return Join(results), nil
}

// Join renders results the way Process does: outputs separated by one space.
func Join(results []Result) string {
	outputs := make([]string, len(results))
	for i, r := range results {
		outputs[i] = r.Output
	}
	return strings.Join(outputs, " ")
}

// Analyze runs the pipeline and returns per-token details.
func (e *Engine) Analyze(text, lang string) ([]Result, error) {
	if e.closed.Load() {
		return nil, domain.ErrClosed
	}
	if strings.TrimSpace(text) == "" {
		return []Result{}, nil
	}
	if e.maxText > 0 && len(text) > e.maxText {
		return nil, domain.NewValidationError("text", fmt.Sprintf("longer than %d bytes", e.maxText))
	}
	l, err := domain.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}

	tokens := segment.Segment(text)
	results := make([]Result, len(tokens))
	for i, tok := range tokens {
		results[i] = e.transcribe(tok, l)
	}

	e.log.Debug("processed text",
		slog.String("language", l.String()),
		slog.Int("tokens", len(tokens)),
	)
	return results, nil
}

func (e *Engine) transcribe(tok segment.Token, lang domain.Language) Result {
	res := Result{Token: tok}
	if tok.Core == "" {
		res.Source = SourcePunctuation
		res.Output = tok.Text
		return res
	}

	entry, whole, ok := e.lookupToken(tok, lang)
	if ok {
		res.Source = SourceDictionary
		res.Raw = entry.Phonemes
	} else {
		res.Source = SourceFallback
		res.Raw = e.resolver.Resolve(tok.Core, lang)
	}
	res.Phonemes = e.normalizer.Normalize(res.Raw, lang)

	rendered := res.Phonemes.String()
	if whole {
		// The dictionary word included the punctuation.
		res.Output = rendered
	} else {
		res.Output = tok.Prefix + rendered + tok.Suffix
	}
	return res
}

// lookupToken tries the token text, then its core, then the folded core.
// whole reports whether the match covered the full token text.
func (e *Engine) lookupToken(tok segment.Token, lang domain.Language) (entry domain.Entry, whole, ok bool) {
	if entry, ok = e.store.Lookup(lang, tok.Text); ok {
		return entry, true, true
	}
	if tok.HasPunctuation() {
		if entry, ok = e.store.Lookup(lang, tok.Core); ok {
			return entry, false, true
		}
	}
	if e.foldCase && domain.HasUpper(tok.Core) {
		if entry, ok = e.store.Lookup(lang, domain.FoldWord(tok.Core)); ok {
			return entry, false, true
		}
	}
	return domain.Entry{}, false, false
}

// LoadDictionary parses source and installs it for lang.
func (e *Engine) LoadDictionary(lang string, source []byte, format dictionary.Format) (dictionary.Stats, error) {
	if e.closed.Load() {
		return dictionary.Stats{}, domain.ErrClosed
	}
	l, err := domain.ParseLanguage(lang)
	if err != nil {
		return dictionary.Stats{}, err
	}

	start := time.Now()
	stats, err := e.store.Load(l, source, format)
	if err != nil {
		e.log.Warn("dictionary load failed",
			slog.String("language", l.String()),
			slog.String("error", err.Error()),
		)
		return dictionary.Stats{}, err
	}

	e.log.Info("dictionary loaded",
		slog.String("language", l.String()),
		slog.Int("words", stats.Words),
		slog.Int("duplicates", stats.Duplicates),
		slog.Int("skipped", stats.Skipped),
		slog.Duration("duration", time.Since(start)),
	)
	return stats, nil
}

// InstallRecords builds a dictionary from records and installs it for lang.
func (e *Engine) InstallRecords(lang string, records []dictionary.Record) (dictionary.Stats, error) {
	if e.closed.Load() {
		return dictionary.Stats{}, domain.ErrClosed
	}
	l, err := domain.ParseLanguage(lang)
	if err != nil {
		return dictionary.Stats{}, err
	}

	d, err := dictionary.FromRecords(l, records)
	if err != nil {
		return dictionary.Stats{}, err
	}
	e.store.Install(d)

	e.log.Info("dictionary installed",
		slog.String("language", l.String()),
		slog.Int("words", d.Len()),
	)
	return d.Stats(), nil
}

// Lookup finds a word in the dictionary of lang without fallback.
func (e *Engine) Lookup(lang, word string) (domain.Entry, error) {
	if e.closed.Load() {
		return domain.Entry{}, domain.ErrClosed
	}
	l, err := domain.ParseLanguage(lang)
	if err != nil {
		return domain.Entry{}, err
	}
	entry, ok := e.store.Lookup(l, word)
	if !ok {
		return domain.Entry{}, domain.ErrNotFound
	}
	return entry, nil
}

// Dictionary returns the active dictionary of lang.
func (e *Engine) Dictionary(lang string) (*dictionary.Dictionary, error) {
	if e.closed.Load() {
		return nil, domain.ErrClosed
	}
	l, err := domain.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}
	d, ok := e.store.Dictionary(l)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// Languages lists the languages with a loaded dictionary.
func (e *Engine) Languages() []domain.Language {
	if e.closed.Load() {
		return nil
	}
	return e.store.Languages()
}

// Closed reports whether Close was called.
func (e *Engine) Closed() bool { return e.closed.Load() }

// Close shuts the engine down. Every later call fails with domain.ErrClosed.
// Closing twice is a no-op.
func (e *Engine) Close() {
	if e.closed.CompareAndSwap(false, true) {
		e.log.Info("engine closed")
	}
}
