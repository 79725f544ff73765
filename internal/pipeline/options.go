package pipeline

import (
	"log/slog"

	"github.com/heartmarshall/miskai-core/internal/fallback"
	"github.com/heartmarshall/miskai-core/internal/normalize"
)

// DefaultMaxTextBytes bounds the text accepted by one Process call.
const DefaultMaxTextBytes = 1 << 20

type options struct {
	logger       *slog.Logger
	foldCase     bool
	maxTextBytes int
	builtinRules bool
	resolver     *fallback.Resolver
	normalizer   *normalize.Normalizer
	ruleFiles    []*normalize.RuleFile
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFoldCase makes lookups retry with the lower-cased word when the exact
// spelling is not in the dictionary.
func WithFoldCase(on bool) Option {
	return func(o *options) { o.foldCase = on }
}

// WithMaxTextBytes limits the size of one Process input. n <= 0 removes the
// limit.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithBuiltinRules turns the built-in rule sets on or off. They are on by
// default.
func WithBuiltinRules(on bool) Option {
	return func(o *options) { o.builtinRules = on }
}

// WithResolver replaces the fallback resolver.
func WithResolver(r *fallback.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithNormalizer replaces the normalizer. WithBuiltinRules has no effect
// when it is set.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(o *options) { o.normalizer = n }
}

// WithRuleFiles applies rule files on top of the rule sets and grapheme
// tables, in the given order.
func WithRuleFiles(files ...*normalize.RuleFile) Option {
	return func(o *options) { o.ruleFiles = append(o.ruleFiles, files...) }
}
