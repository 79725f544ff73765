package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/miskai-core/internal/app"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "miskai %s %s/%s\n", app.BuildVersion(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}
