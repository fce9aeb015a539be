package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/jparse/java/codebase"
)

func newCheckCmd(g *globals) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Report syntax errors in .java files and directories",
		Long: `Parse every given .java file, and every .java file below the given
directories, and print the diagnostics. Exits non-zero if any file has
errors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, cfg, err := g.parserOptions()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("jobs") {
				jobs = cfg.Jobs
			}
			if jobs <= 0 {
				jobs = runtime.NumCPU()
			}

			files, err := expandPaths(args)
			if err != nil {
				return err
			}

			c := codebase.New(".", opts...)
			eg, ctx := errgroup.WithContext(context.Background())
			eg.SetLimit(jobs)
			for _, path := range files {
				eg.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					if _, err := c.ScanFile(path); err != nil {
						return fmt.Errorf("read %s: %w", path, err)
					}
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, f := range c.Files() {
				printDiagnostics(w, f.Diagnostics)
				if f.ParseErr != nil {
					fmt.Fprintf(w, "%s: %s\n", f.Path, f.ParseErr)
				}
			}
			if n := c.ErrorCount(); n > 0 {
				return fmt.Errorf("%d errors in %d files", n, len(files))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files to parse in parallel (default from config, else CPU count)")

	return cmd
}

// expandPaths replaces each directory argument with the .java files below it.
func expandPaths(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := codebase.JavaFiles(arg)
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
		files = append(files, found...)
	}
	return files, nil
}
