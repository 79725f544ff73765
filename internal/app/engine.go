package app

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/miskai-core/internal/bridge"
	"github.com/heartmarshall/miskai-core/internal/config"
	"github.com/heartmarshall/miskai-core/internal/normalize"
	"github.com/heartmarshall/miskai-core/internal/pipeline"
)

// EngineOptions turns EngineConfig into pipeline options. Rule files are read
// once here so every engine the boundary creates shares them.
func EngineOptions(cfg config.EngineConfig, log *slog.Logger) ([]pipeline.Option, error) {
	opts := []pipeline.Option{
		pipeline.WithLogger(log),
		pipeline.WithFoldCase(cfg.FoldCase),
		pipeline.WithMaxTextBytes(cfg.MaxTextBytes),
		pipeline.WithBuiltinRules(cfg.BuiltinRules),
	}

	if cfg.RulesDir != "" {
		files, err := normalize.LoadRuleDir(cfg.RulesDir)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		for _, f := range files {
			log.Info("rule file loaded",
				slog.String("file", f.Path),
				slog.String("language", f.Language.String()),
				slog.Int("rules", len(f.Rules)),
			)
		}
		opts = append(opts, pipeline.WithRuleFiles(files...))
	}
	return opts, nil
}

// NewBoundary builds an initialized boundary whose engines follow cfg.
func NewBoundary(cfg config.EngineConfig, log *slog.Logger) (*bridge.Boundary, error) {
	opts, err := EngineOptions(cfg, log)
	if err != nil {
		return nil, err
	}
	b := bridge.New(
		bridge.WithLogger(log),
		bridge.WithVersion(Version),
		bridge.WithEngineFactory(func() *pipeline.Engine { return pipeline.New(opts...) }),
	)
	b.Initialize()
	return b, nil
}
