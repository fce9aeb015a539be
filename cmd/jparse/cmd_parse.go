package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jparse/format"
	"github.com/dhamidi/jparse/java/parser"
)

var entryPoints = map[string]func(io.Reader, ...parser.Option) *parser.Parser{
	"unit":      parser.ParseCompilationUnit,
	"expr":      parser.ParseExpression,
	"type":      parser.ParseType,
	"statement": parser.ParseStatement,
}

func newParseCmd(g *globals) *cobra.Command {
	var outputFormat string
	var kind string
	var includeDocs bool
	var includeEnds bool
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .java file and dump the tree",
		Long: `Parse a .java file and dump its tree with the diagnostics.

Use "-" to read from stdin. --kind parses a lone expression, type or
statement instead of a compilation unit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			entry, ok := entryPoints[kind]
			if !ok {
				return fmt.Errorf("unknown kind: %s (expected unit, expr, type or statement)", kind)
			}

			var data []byte
			var err error
			if filename == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
				filename = "<stdin>"
			} else {
				data, err = os.ReadFile(filename)
			}
			if err != nil {
				return fmt.Errorf("read java file: %w", err)
			}

			opts, _, err := g.parserOptions()
			if err != nil {
				return err
			}
			opts = append(opts, parser.WithFile(filename))
			if includeDocs {
				opts = append(opts, parser.WithDocComments())
			}
			if includeEnds {
				opts = append(opts, parser.WithEndPositions())
			}

			p := entry(bytes.NewReader(data), opts...)
			node, err := p.Finish()
			if err != nil {
				return fmt.Errorf("parse %s: %w", filename, err)
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "json":
				err = format.NewASTJSONEncoder(out).Encode(format.ParseResult{
					File:        filename,
					Tree:        node,
					Diagnostics: p.Diagnostics(),
					Docs:        p.DocComments(),
				})
				if err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				return nil
			case "tree":
				if includePositions {
					fmt.Fprintln(out, node.StringWithPositions())
				} else {
					fmt.Fprintln(out, node.String())
				}
			case "outline":
				if err := format.NewLineEncoder(out).Encode(node); err != nil {
					return fmt.Errorf("encode outline: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			printDiagnostics(cmd.ErrOrStderr(), p.Diagnostics())
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree, outline)")
	cmd.Flags().StringVarP(&kind, "kind", "k", "unit", "what to parse (unit, expr, type, statement)")
	cmd.Flags().BoolVar(&includeDocs, "docs", false, "record documentation comments")
	cmd.Flags().BoolVar(&includeEnds, "ends", false, "record end positions")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "show positions in tree output")

	return cmd
}

func printDiagnostics(w io.Writer, diags []parser.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d)
	}
}
