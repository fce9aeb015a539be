package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/jparse/java/codebase"
)

func newLSPCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := g.parserOptions()
			if err != nil {
				return err
			}
			server := codebase.NewLSPServer(version, opts...)
			return server.RunStdio()
		},
	}
}
