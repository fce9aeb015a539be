package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jparse/java/codebase"
)

func newWatchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Reparse .java files as they change and print their diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			opts, cfg, err := g.parserOptions()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			c := codebase.New(dir, opts...)
			if err := c.ScanAll(ctx, cfg.Jobs); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, f := range c.Files() {
				printDiagnostics(w, f.Diagnostics)
			}
			fmt.Fprintf(w, "%d errors; watching %s\n", c.ErrorCount(), dir)

			watcher, err := codebase.NewWatcher(c)
			if err != nil {
				return err
			}
			watcher.OnChange(func(path string, info *codebase.FileInfo) {
				if info == nil {
					fmt.Fprintf(w, "%s: removed\n", path)
					return
				}
				printDiagnostics(w, info.Diagnostics)
				fmt.Fprintf(w, "%s: %d errors\n", path, info.ErrorCount())
			})
			return watcher.Run(ctx)
		},
	}
}
