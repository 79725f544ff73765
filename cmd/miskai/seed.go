package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	postgres "github.com/heartmarshall/miskai-core/internal/adapter/postgres"
	"github.com/heartmarshall/miskai-core/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/miskai-core/internal/app"
	"github.com/heartmarshall/miskai-core/internal/dictionary"
)

// Compile-time interface assertions.
var (
	_ app.RecordSink   = (*lexicon.Repo)(nil)
	_ app.RecordSource = (*lexicon.Repo)(nil)
)

func newSeedCmd(root *rootFlags) *cobra.Command {
	var (
		lang   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "seed FILE",
		Short: "Import a dictionary file into the database",
		Long: `Parse FILE and store it as the dictionary of --lang, replacing the
rows stored for that language. Requires database.dsn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.load()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return errors.New("seed: database.dsn is not configured")
			}
			f, err := dictionary.ParseFormat(format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("database: %w", err)
			}
			defer pool.Close()
			if cfg.Database.Migrate {
				if err := postgres.Migrate(ctx, pool, log); err != nil {
					return fmt.Errorf("database: %w", err)
				}
			}

			n, err := app.Seed(ctx, lexicon.New(pool), lang, args[0], f)
			if err != nil {
				return err
			}
			log.Info("dictionary seeded",
				slog.String("language", lang),
				slog.String("file", args[0]),
				slog.Int("rows", n),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d words stored for %s\n", n, lang)
			return err
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language tag (required)")
	cmd.Flags().StringVar(&format, "format", "", "dictionary format (default: from extension)")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}
