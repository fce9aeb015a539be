package format

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/jparse/java/parser"
)

func parseUnit(t *testing.T, name string, src []byte) *parser.Node {
	t.Helper()
	p := parser.ParseCompilationUnit(bytes.NewReader(src), parser.WithFile(name))
	node, err := p.Finish()
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	for _, d := range p.Diagnostics() {
		t.Errorf("%s: %s", name, d)
	}
	return node
}

// TestRoundTripCorpus prints every file of the parser corpus and checks
// that the output parses back to the same tree.
func TestRoundTripCorpus(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "java", "parser", "testdata", "*.java"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no corpus files found")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			src, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			want := parseUnit(t, file, src)

			out, err := PrettyPrintJavaFile(src, file)
			if err != nil {
				t.Fatalf("PrettyPrintJavaFile: %v", err)
			}
			got := parseUnit(t, file+" (printed)", out)
			if !parser.Equal(want, got) {
				t.Errorf("printed source parses to a different tree:\n%s", out)
			}
		})
	}
}

func TestRoundTripSnippets(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unary signs", "class C { int a = - -5, b = -(-5), c = + +x, d = - --x, e = a- -b; }"},
		{"hex negation", "class C { int a = -0x10, b = -017; }"},
		{"dangling else", "class C { void m() { if (a) if (b) x(); else y(); } }"},
		{"nested ternary", "class C { int m() { return a ? b ? 1 : 2 : c ? 3 : 4; } }"},
		{"generic cast", "class C { Object o = (List<String>) (Object) x; boolean b = (a < b) == c; }"},
		{"paren cast", "class C { Object o = (a) (b); int d = (a) - b; }"},
		{"array creation", "class C { Object a = new int[1][2][], b = new int[][] {{1}}, c = new String[0]; }"},
		{"qualified new", "class C { Object a = x.new Y<Z>(), b = new <T>Foo(1) {}; }"},
		{"explicit type args", "class C { C() { <T>this(); } void m() { this.<T>f(); super.<U>g(); Outer.super.h(); } }"},
		{"long arguments", "class C { void m() { call(aaaaaaaaaaaaaaaaaaaa, bbbbbbbbbbbbbbbbbbbbbbbbbb, cccccccccccccccccccccccc, dddddddddddddddddd); } }"},
		{"enum only members", "enum E { ; int x; void m() {} }"},
		{"labels", "class C { void m() { a: b: for (;;) break a; } }"},
		{"empty decls", "; class C { ; int x; ; } ;"},
		{"string folding", `class C { String s = "a" + "b" + 'c'; String t = "x" + ("y" + "z"); }`},
		{"interface members", "interface I<T> extends J, K { int X = 1; <U extends T> U m(U... us) throws E; class N {} }"},
		{"comments everywhere", "/* head */\nclass C { /* a */ int x; // b\n void m() { // c\n  f(); /* d */ } // e\n}\n// tail\n"},
		{"deprecated docs", "class C {\n/** @deprecated */\nint x;\n/**\n * @deprecated\n */\nvoid m() {}\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := parseUnit(t, "Test.java", []byte(tt.input))
			out, err := PrettyPrintJava([]byte(tt.input))
			if err != nil {
				t.Fatalf("PrettyPrintJava: %v", err)
			}
			got := parseUnit(t, "printed", out)
			if !parser.Equal(want, got) {
				t.Errorf("round trip changed the tree\ninput:\n%s\noutput:\n%s\nwant:\n%s\ngot:\n%s",
					tt.input, out, want, got)
			}
		})
	}
}

func TestRoundTripKeepsComments(t *testing.T) {
	input := "/* head */\nclass C { /* a */ int x; // b\n void m() { // c\n  f(); /* d */ } // e\n}\n// tail\n"
	out, err := PrettyPrintJava([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []string{"/* head */", "/* a */", "// b", "// c", "/* d */", "// e", "// tail"} {
		if strings.Count(string(out), c) != 1 {
			t.Errorf("comment %q appears %d times in:\n%s", c, strings.Count(string(out), c), out)
		}
	}
	if !strings.HasSuffix(string(out), "// tail\n") {
		t.Errorf("trailing comment not last:\n%s", out)
	}
}

func TestPrettyPrintRejectsErrors(t *testing.T) {
	_, err := PrettyPrintJavaFile([]byte("class C { int x = ; }"), "C.java")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrHasErrors) {
		t.Errorf("error %v does not wrap ErrHasErrors", err)
	}
	if !strings.Contains(err.Error(), "C.java:1:19") {
		t.Errorf("error %q lacks the position", err)
	}
}
