package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newProcessCmd(root *rootFlags) *cobra.Command {
	flags := &engineFlags{}
	var detail bool

	cmd := &cobra.Command{
		Use:   "process [text...]",
		Short: "Transcribe text to IPA",
		Long: `Transcribe the arguments joined by spaces. Without arguments, every
line of stdin is transcribed separately.`,
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

			transcribe := func(text string) error {
				if !detail {
					out, err := engine.Process(text, flags.lang)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
					return err
				}
				results, err := engine.Analyze(text, flags.lang)
				if err != nil {
					return err
				}
				for _, r := range results {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.Token.Text, r.Output, r.Source)
				}
				return nil
			}

			if len(args) > 0 {
				return transcribe(strings.Join(args, " "))
			}
			return eachLine(cmd.InOrStdin(), transcribe)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&detail, "detail", false, "print one token per line with its source")
	return cmd
}

func eachLine(r io.Reader, fn func(string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
