package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jparse/format"
)

func newFmtCmd(g *globals) *cobra.Command {
	var fmtOverwrite bool
	var fmtList bool

	cmd := &cobra.Command{
		Use:   "fmt [file]...",
		Short: "Pretty-print .java files, preserving comments",
		Long: `Pretty-print .java files to stdout.

If no file is provided, reads Java source from stdin. Files with syntax
errors are reported and left alone.

Use -w to overwrite the files in place and -l to only list the files
whose formatting differs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := g.parserOptions()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if fmtOverwrite || fmtList {
					return fmt.Errorf("-w and -l require a file argument")
				}
				source, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				output, err := format.PrettyPrintJavaFile(source, "<stdin>", opts...)
				if err != nil {
					return fmt.Errorf("format: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(output)
				return err
			}

			failed := 0
			for _, filename := range args {
				if ext := filepath.Ext(filename); ext != ".java" {
					return fmt.Errorf("expected .java file, got %s", filename)
				}
				source, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				output, err := format.PrettyPrintJavaFile(source, filename, opts...)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					failed++
					continue
				}

				switch {
				case fmtList:
					if !bytes.Equal(source, output) {
						fmt.Fprintln(cmd.OutOrStdout(), filename)
					}
				case fmtOverwrite:
					if bytes.Equal(source, output) {
						continue
					}
					if err := os.WriteFile(filename, output, 0o644); err != nil {
						return fmt.Errorf("write file: %w", err)
					}
				default:
					if _, err := cmd.OutOrStdout().Write(output); err != nil {
						return err
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d files not formatted", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the files in place")
	cmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")

	return cmd
}
