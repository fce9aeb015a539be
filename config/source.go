package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/dhamidi/jparse/java/parser"
)

var ErrUnknownSource = errors.New("unknown source level")

// Java 5 and 6 are also spelled without the "1." prefix.
var sourceAliases = map[string]string{
	"5": "1.5",
	"6": "1.6",
}

var supportedSources = mustConstraint(">= 1.2, < 1.7")

// sourceFeatures lists the features each range of source levels adds.
var sourceFeatures = []struct {
	constraint *semver.Constraints
	features   parser.Features
}{
	{mustConstraint(">= 1.4"), parser.FeatureAssert},
	{mustConstraint(">= 1.5"), parser.FeatureEnum | parser.FeatureGenerics | parser.FeatureVarargs |
		parser.FeatureForeach | parser.FeatureStaticImport | parser.FeatureAnnotations},
}

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

// Source maps a -source style level such as "1.4" or "6" to the features
// the parser accepts at that level. An empty level is the default source.
func Source(level string) (parser.Source, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return parser.DefaultSource, nil
	}
	if alias, ok := sourceAliases[level]; ok {
		level = alias
	}
	v, err := semver.NewVersion(level)
	if err != nil {
		return parser.Source{}, fmt.Errorf("%w: %q", ErrUnknownSource, level)
	}
	if !supportedSources.Check(v) {
		return parser.Source{}, fmt.Errorf("%w: %q", ErrUnknownSource, level)
	}
	src := parser.Source{Name: fmt.Sprintf("%d.%d", v.Major(), v.Minor())}
	for _, sf := range sourceFeatures {
		if sf.constraint.Check(v) {
			src.Features |= sf.features
		}
	}
	return src, nil
}
