package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/miskai-core/internal/app"
	"github.com/heartmarshall/miskai-core/internal/config"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:          "miskai",
		Short:        "miskai - grapheme-to-phoneme core",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default: $CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newProcessCmd(flags),
		newLookupCmd(flags),
		newServeCmd(flags),
		newSeedCmd(flags),
		newVersionCmd(),
	)
	return root
}

// load reads configuration and builds the logger. --config overrides
// CONFIG_PATH.
func (f *rootFlags) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, nil, err
	}
	if f.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, app.NewLogger(cfg.Log), nil
}
