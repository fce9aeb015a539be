package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/jparse/config"
	"github.com/dhamidi/jparse/java/parser"
)

const version = "0.1.0"

// globals holds the persistent flags shared by every command.
type globals struct {
	configPath string
	source     string
	verbose    int
}

// config loads the config file, if any, and applies the flag overrides.
func (g *globals) config() (*config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return nil, err
		}
	}
	if g.source != "" {
		cfg.Source = g.source
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (g *globals) parserOptions() ([]parser.Option, *config.Config, error) {
	cfg, err := g.config()
	if err != nil {
		return nil, nil, err
	}
	return cfg.ParserOptions(), cfg, nil
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	rootCmd := &cobra.Command{
		Use:           "jparse",
		Short:         "Parse, check and format Java 1.6 source",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(g.verbose, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "project config file (.toml, .yaml)")
	rootCmd.PersistentFlags().StringVar(&g.source, "source", "", "source level (1.2 to 1.6, or 5, 6)")
	rootCmd.PersistentFlags().CountVarP(&g.verbose, "verbose", "v", "log more (repeat for debug output)")

	rootCmd.AddCommand(newParseCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newFmtCmd(g))
	rootCmd.AddCommand(newLSPCmd(g))
	rootCmd.AddCommand(newWatchCmd(g))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jparse:", err)
		os.Exit(1)
	}
}
