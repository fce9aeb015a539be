// Package config loads project settings for jparse from a TOML or YAML
// file and turns them into parser options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/jparse/java/parser"
)

var ErrUnknownFormat = errors.New("unknown config format")

type Format int

const (
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// Config is the content of a jparse project file.
//
//	source = "1.5"
//	max_depth = 500
//
//	[features]
//	assert = false
type Config struct {
	Source       string          `toml:"source" yaml:"source"`
	MaxDepth     int             `toml:"max_depth" yaml:"max_depth"`
	Jobs         int             `toml:"jobs" yaml:"jobs"`
	DocComments  bool            `toml:"doc_comments" yaml:"doc_comments"`
	EndPositions bool            `toml:"end_positions" yaml:"end_positions"`
	Features     map[string]bool `toml:"features" yaml:"features"`

	path string
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Source:   parser.DefaultSource.Name,
		MaxDepth: 1000,
		Jobs:     8,
	}
}

// Load reads the file at path on top of the defaults. The format is picked
// from the extension.
func Load(path string) (*Config, error) {
	format := DetectFormat(path)
	if format == FormatAuto {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes data in the given format on top of the defaults. Unknown
// keys are rejected.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatAuto
}

// Path is the file the config was loaded from, empty for defaults.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) Validate() error {
	if _, err := c.ParserSource(); err != nil {
		return err
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}

// ParserSource resolves the source level and applies the feature overrides.
func (c *Config) ParserSource() (parser.Source, error) {
	src, err := Source(c.Source)
	if err != nil {
		return parser.Source{}, err
	}
	names := make([]string, 0, len(c.Features))
	for name := range c.Features {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f, ok := parser.FeatureByName(name)
		if !ok {
			return parser.Source{}, fmt.Errorf("unknown feature %q", name)
		}
		if c.Features[name] {
			src.Features |= f
		} else {
			src.Features &^= f
		}
	}
	return src, nil
}

// ParserOptions converts the config into options for a parse. The config
// must have passed Validate.
func (c *Config) ParserOptions() []parser.Option {
	var opts []parser.Option
	if src, err := c.ParserSource(); err == nil {
		opts = append(opts, parser.WithSource(src))
	}
	if c.MaxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(c.MaxDepth))
	}
	if c.DocComments {
		opts = append(opts, parser.WithDocComments())
	}
	if c.EndPositions {
		opts = append(opts, parser.WithEndPositions())
	}
	return opts
}
