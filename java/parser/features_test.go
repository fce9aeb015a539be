package parser

import (
	"strings"
	"testing"
)

func TestFeatureGating(t *testing.T) {
	source14 := Source{Name: "1.4", Features: FeatureAssert}

	tests := []struct {
		name    string
		input   string
		feature Features
		key     string
	}{
		{"generics", "class C { List<String> xs; }", FeatureGenerics, "generics.not.supported.in.source"},
		{"type parameters", "class C<T> { }", FeatureGenerics, "generics.not.supported.in.source"},
		{"enum", "enum E { A }", FeatureEnum, "enums.not.supported.in.source"},
		{"static import", "import static a.B.c; class C {}", FeatureStaticImport, "static.import.not.supported.in.source"},
		{"foreach", "class C { void m() { for (String s : xs) {} } }", FeatureForeach, "foreach.not.supported.in.source"},
		{"varargs", "class C { void m(String... a) {} }", FeatureVarargs, "varargs.not.supported.in.source"},
		{"annotations", "@A class C {}", FeatureAnnotations, "annotations.not.supported.in.source"},
		{"annotation on member", "class C { @A @B void m() {} }", FeatureAnnotations, "annotations.not.supported.in.source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseCompilationUnit(strings.NewReader(tt.input), WithSource(source14))
			if p.Features().Has(tt.feature) {
				t.Fatalf("%v enabled before parsing", tt.feature)
			}
			if _, err := p.Finish(); err != nil {
				t.Fatal(err)
			}
			diags := p.Diagnostics()
			if len(diags) != 1 {
				t.Fatalf("diagnostics = %v, want exactly one", diagKeys(diags))
			}
			if diags[0].Key != tt.key {
				t.Errorf("Key = %q, want %q", diags[0].Key, tt.key)
			}
			if len(diags[0].Args) != 1 || diags[0].Args[0] != "1.4" {
				t.Errorf("Args = %v, want the source name", diags[0].Args)
			}
			if !p.Features().Has(tt.feature) {
				t.Errorf("%v should be enabled after its first use", tt.feature)
			}
		})
	}
}

func TestFeatureMessage(t *testing.T) {
	p := ParseCompilationUnit(strings.NewReader("enum E { A }"), WithSource(Source{Name: "1.4"}))
	if _, err := p.Finish(); err != nil {
		t.Fatal(err)
	}
	diags := p.Diagnostics()
	if len(diags) != 1 || diags[0].Message() != "enums are not supported in -source 1.4" {
		t.Errorf("diagnostics = %v", diags)
	}
}

func TestKeywordsAsIdentifiers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		features Features
		key      string
		severity Severity
	}{
		{"assert before 1.4", "assert(x);", 0, "assert.as.identifier", SeverityWarning},
		{"assert variable before 1.4", "int assert = 1;", 0, "assert.as.identifier", SeverityWarning},
		{"enum before 5", "int enum = 1;", FeatureAssert, "enum.as.identifier", SeverityWarning},
		{"enum in 5", "int enum = 1;", AllFeatures, "enum.as.identifier", SeverityError},
		{"assert in 1.4", "int assert = 1;", FeatureAssert, "assert.as.identifier", SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := parseStmt(t, tt.input, WithFeatures(tt.features))
			if len(diags) != 1 {
				t.Fatalf("diagnostics = %v, want one", diagKeys(diags))
			}
			if diags[0].Key != tt.key || diags[0].Severity != tt.severity {
				t.Errorf("got %s %s, want %s %s", diags[0].Severity, diags[0].Key, tt.severity, tt.key)
			}
		})
	}

	node, _ := parseStmt(t, "assert(x);", WithFeatures(0))
	if got := sexp(node); got != "(ExprStmt (CallExpr assert (Arguments x)))" {
		t.Errorf("assert call = %s", got)
	}
}

func TestFeaturesString(t *testing.T) {
	if got := (FeatureGenerics | FeatureEnum).String(); got != "enum,generics" {
		t.Errorf("String = %q", got)
	}
	for _, name := range []string{"assert", "enum", "generics", "varargs", "foreach", "static-import", "annotations"} {
		f, ok := FeatureByName(name)
		if !ok || f.String() != name {
			t.Errorf("FeatureByName(%q) = %v, %v", name, f, ok)
		}
	}
	if _, ok := FeatureByName("lambdas"); ok {
		t.Error("unknown feature name was accepted")
	}
	if !AllFeatures.Has(FeatureVarargs | FeatureForeach) {
		t.Error("AllFeatures is missing features")
	}
}
