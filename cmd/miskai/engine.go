package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/miskai-core/internal/app"
	"github.com/heartmarshall/miskai-core/internal/config"
	"github.com/heartmarshall/miskai-core/internal/dictionary"
	"github.com/heartmarshall/miskai-core/internal/pipeline"
)

// engineFlags are shared by the commands that run the pipeline locally.
type engineFlags struct {
	lang     string
	dicts    []string
	format   string
	rulesDir string
	foldCase bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.lang, "lang", "l", "en-us", "language tag")
	cmd.Flags().StringArrayVarP(&f.dicts, "dict", "d", nil, "dictionary file for --lang (repeatable; later files win)")
	cmd.Flags().StringVar(&f.format, "format", "", "dictionary format: auto, json, jsonl, yaml, tsv, cmu (default: from extension)")
	cmd.Flags().StringVar(&f.rulesDir, "rules", "", "directory of YAML rule files (overrides engine.rules_dir)")
	cmd.Flags().BoolVar(&f.foldCase, "fold-case", false, "retry dictionary lookups in lower case")
}

// newEngine builds a pipeline engine from cfg and the flags, and loads the
// --dict files into it.
func (f *engineFlags) newEngine(cmd *cobra.Command, cfg config.EngineConfig, log *slog.Logger) (*pipeline.Engine, error) {
	if f.rulesDir != "" {
		cfg.RulesDir = f.rulesDir
	}
	if cmd.Flags().Changed("fold-case") {
		cfg.FoldCase = f.foldCase
	}

	opts, err := app.EngineOptions(cfg, log)
	if err != nil {
		return nil, err
	}
	engine := pipeline.New(opts...)

	explicit, err := dictionary.ParseFormat(f.format)
	if err != nil {
		engine.Close()
		return nil, err
	}
	for _, path := range f.dicts {
		format := explicit
		if format == dictionary.FormatAuto {
			if byExt, ok := dictionary.FormatFromPath(path); ok {
				format = byExt
			}
		}
		src, err := os.ReadFile(path)
		if err != nil {
			engine.Close()
			return nil, err
		}
		if _, err := engine.LoadDictionary(f.lang, src, format); err != nil {
			engine.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return engine, nil
}
