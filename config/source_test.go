package config

import (
	"errors"
	"testing"

	"github.com/dhamidi/jparse/java/parser"
)

func TestSource(t *testing.T) {
	java5 := parser.AllFeatures
	tests := []struct {
		level    string
		name     string
		features parser.Features
	}{
		{"", parser.DefaultSource.Name, parser.AllFeatures},
		{"1.2", "1.2", 0},
		{"1.3", "1.3", 0},
		{"1.4", "1.4", parser.FeatureAssert},
		{"1.5", "1.5", java5},
		{"5", "1.5", java5},
		{"1.6", "1.6", java5},
		{"6", "1.6", java5},
		{" 1.6.0 ", "1.6", java5},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			src, err := Source(tt.level)
			if err != nil {
				t.Fatalf("Source(%q): %v", tt.level, err)
			}
			if src.Name != tt.name || src.Features != tt.features {
				t.Errorf("Source(%q) = %s [%s], want %s [%s]",
					tt.level, src.Name, src.Features, tt.name, tt.features)
			}
		})
	}
}

func TestSourceUnknown(t *testing.T) {
	for _, level := range []string{"1.1", "1.7", "7", "8", "jdk", "1.x"} {
		t.Run(level, func(t *testing.T) {
			if _, err := Source(level); !errors.Is(err, ErrUnknownSource) {
				t.Errorf("Source(%q) err = %v, want ErrUnknownSource", level, err)
			}
		})
	}
}
