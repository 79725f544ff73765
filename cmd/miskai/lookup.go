package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLookupCmd(root *rootFlags) *cobra.Command {
	flags := &engineFlags{}

	cmd := &cobra.Command{
		Use:   "lookup WORD",
		Short: "Print the dictionary entry of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.load()
			if err != nil {
				return err
			}
			engine, err := flags.newEngine(cmd, cfg.Engine, log)
			if err != nil {
				return err
			}
			defer engine.Close()

			entry, err := engine.Lookup(flags.lang, args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if entry.POS != "" {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", args[0], entry.Phonemes, entry.POS)
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", args[0], entry.Phonemes)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}
