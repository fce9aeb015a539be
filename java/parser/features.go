package parser

import "strings"

// Features is the set of optional grammar productions a parse accepts.
type Features uint16

const (
	FeatureAssert Features = 1 << iota
	FeatureEnum
	FeatureGenerics
	FeatureVarargs
	FeatureForeach
	FeatureStaticImport
	FeatureAnnotations

	AllFeatures = FeatureAssert | FeatureEnum | FeatureGenerics | FeatureVarargs |
		FeatureForeach | FeatureStaticImport | FeatureAnnotations
)

var featureNames = []struct {
	f    Features
	name string
	key  string
}{
	{FeatureAssert, "assert", "assert.not.supported.in.source"},
	{FeatureEnum, "enum", "enums.not.supported.in.source"},
	{FeatureGenerics, "generics", "generics.not.supported.in.source"},
	{FeatureVarargs, "varargs", "varargs.not.supported.in.source"},
	{FeatureForeach, "foreach", "foreach.not.supported.in.source"},
	{FeatureStaticImport, "static-import", "static.import.not.supported.in.source"},
	{FeatureAnnotations, "annotations", "annotations.not.supported.in.source"},
}

func (f Features) Has(g Features) bool {
	return f&g == g
}

func (f Features) String() string {
	var names []string
	for _, fn := range featureNames {
		if f&fn.f != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, ",")
}

// FeatureByName looks up a feature by the name its String form uses.
func FeatureByName(name string) (Features, bool) {
	for _, fn := range featureNames {
		if fn.name == name {
			return fn.f, true
		}
	}
	return 0, false
}

func (f Features) notSupportedKey() string {
	for _, fn := range featureNames {
		if fn.f == f {
			return fn.key
		}
	}
	return ""
}

// Source names a language level and the features it enables.
type Source struct {
	Name     string
	Features Features
}

// DefaultSource accepts the full grammar.
var DefaultSource = Source{Name: "1.6", Features: AllFeatures}

// checkFeature reports the first use of a disabled feature and enables it for the
// rest of the parse.
func (p *Parser) checkFeature(f Features, pos Position) {
	if p.source.Features.Has(f) {
		return
	}
	p.log.Error(pos, f.notSupportedKey(), p.source.Name)
	p.source.Features |= f
}

func (p *Parser) allows(f Features) bool {
	return p.source.Features.Has(f)
}
