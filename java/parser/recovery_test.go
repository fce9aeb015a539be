package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestRecovery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		stmt  bool
		keys  []string
		check func(t *testing.T, n *Node)
	}{
		{
			name:  "missing close paren",
			input: "if (x > 0 return x;",
			stmt:  true,
			keys:  []string{"expected"},
			check: func(t *testing.T, n *Node) {
				if got := sexp(n); got != "(Block (IfStmt (> x 0) (ReturnStmt x)) (Error))" {
					t.Errorf("got %s", got)
				}
			},
		},
		{
			name:  "not a statement",
			input: "a == b;",
			stmt:  true,
			keys:  []string{"not.stmt"},
			check: func(t *testing.T, n *Node) {
				if got := sexp(n); got != "(ExprStmt (Error (== a b)))" {
					t.Errorf("got %s", got)
				}
			},
		},
		{
			name:  "orphaned case",
			input: "{ case 1: x(); }",
			stmt:  true,
			keys:  []string{"orphaned"},
			check: func(t *testing.T, n *Node) {
				if n.Kind != KindBlock || len(n.Children) != 1 || !n.Children[0].IsError() {
					t.Errorf("got %s, want a block holding one error", sexp(n))
				}
			},
		},
		{
			name:  "else without if",
			input: "else x();",
			stmt:  true,
			keys:  []string{"else.without.if"},
			check: func(t *testing.T, n *Node) {
				if !hasKind(n, KindCallExpr) {
					t.Errorf("call after the stray else was lost: %s", sexp(n))
				}
			},
		},
		{
			name:  "try without catch",
			input: "try { }",
			stmt:  true,
			keys:  []string{"try.without.catch.or.finally"},
		},
		{
			name:  "new array without dimension",
			input: "x = new int[];",
			stmt:  true,
			keys:  []string{"array.dimension.missing"},
		},
		{
			name:  "missing initializer",
			input: "class C { int x = ; void m() {} }",
			keys:  []string{"illegal.start.of.expr"},
			check: func(t *testing.T, n *Node) {
				m := findNode(n, KindMethodDecl)
				if m == nil || m.Name() != "m" {
					t.Errorf("method after the bad field was lost: %s", sexp(n))
				}
			},
		},
		{
			name:  "constructor with wrong name",
			input: "class C { D() {} }",
			keys:  []string{"invalid.meth.decl.ret.type.req"},
			check: func(t *testing.T, n *Node) {
				if !hasKind(n, KindConstructorDecl) {
					t.Errorf("got %s", sexp(n))
				}
			},
		},
		{
			name:  "repeated modifier",
			input: "public public class C {}",
			keys:  []string{"repeated.modifier"},
		},
		{
			name:  "modifier on package",
			input: "@A public package p;",
			keys:  []string{"mod.not.allowed.here"},
		},
		{
			name:  "missing class keyword",
			input: "public Foo {}",
			keys:  []string{"expected3"},
			check: func(t *testing.T, n *Node) {
				if !hasError(n) {
					t.Errorf("got %s, want an error node", sexp(n))
				}
			},
		},
		{
			name:  "unterminated method",
			input: "class C { void m() { if (",
			keys:  []string{"premature.eof"},
		},
		{
			name:  "wildcard without keyword",
			input: "List<? T> x;",
			stmt:  true,
			keys:  []string{"expected3"},
		},
		{
			name:  "dot after primitive",
			input: "x = int.foo;",
			stmt:  true,
			keys:  []string{"expected"},
			check: func(t *testing.T, n *Node) {
				if !hasKind(n, KindFieldAccess) {
					t.Errorf("member name was dropped: %s", sexp(n))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var node *Node
			var diags []Diagnostic
			if tt.stmt {
				node, diags = parseStmt(t, tt.input)
			} else {
				node, diags = parseUnit(t, tt.input)
			}
			keys := diagKeys(diags)
			if strings.Join(keys, " ") != strings.Join(tt.keys, " ") {
				printErrors(t, node, 0)
				t.Fatalf("diagnostics = %v, want %v", keys, tt.keys)
			}
			if tt.check != nil {
				tt.check(t, node)
			}
		})
	}
}

func TestRecoveryExpectedToken(t *testing.T) {
	_, diags := parseStmt(t, "if (x > 0 return x;")
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics", len(diags))
	}
	d := diags[0]
	if len(d.Args) != 1 || d.Args[0] != "')'" {
		t.Errorf("Args = %v, want ')'", d.Args)
	}
	if d.Pos.Offset != 9 {
		t.Errorf("reported at offset %d, want 9 (end of the condition)", d.Pos.Offset)
	}
	if d.Message() != "')' expected" {
		t.Errorf("Message = %q", d.Message())
	}
}

func TestModifierNotAllowedNames(t *testing.T) {
	_, diags := parseUnit(t, "@A public package p;")
	if len(diags) != 1 || len(diags[0].Args) != 1 || diags[0].Args[0] != "public" {
		t.Errorf("diagnostics = %v", diags)
	}
}

func newTestParser(src string) *Parser {
	p := newParser(nil, NewLexer([]byte(src), ""), nil, nil)
	p.tokenize()
	return p
}

func TestSkip(t *testing.T) {
	tests := []struct {
		input                                string
		imports, members, idents, statements bool
		want                                 string
	}{
		{input: "x y ; z", want: "z"},
		{input: "a b public", want: "public"},
		{input: "a b class", want: "class"},
		{input: "a b", want: ""},
		{input: "a import b", want: ""},
		{input: "a import b", imports: true, want: "import"},
		{input: "a { b", members: true, want: "{"},
		{input: "a { b", want: ""},
		{input: "( int", members: true, want: "int"},
		{input: ") b", idents: true, want: "b"},
		{input: "( if", statements: true, want: "if"},
		{input: "( if x", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newTestParser(tt.input)
			p.skip(tt.imports, tt.members, tt.idents, tt.statements)
			if got := p.tok().Literal; got != tt.want {
				t.Errorf("stopped at %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReportErrorForcesProgress(t *testing.T) {
	p := newTestParser("a b c")
	p.reportError(p.tok().Pos(), "expected", "x")
	if p.tok().Literal != "a" {
		t.Fatalf("first report moved to %q", p.tok().Literal)
	}
	p.reportError(p.tok().Pos(), "expected", "x")
	if p.tok().Literal != "b" {
		t.Errorf("second report at the same token should advance, at %q", p.tok().Literal)
	}
	if n := len(p.Diagnostics()); n != 1 {
		t.Errorf("got %d diagnostics, want 1", n)
	}
}

func TestPrematureEOFReportedOnce(t *testing.T) {
	_, diags := parseUnit(t, "class C { void m() { int x = (1 + ")
	if keys := diagKeys(diags); len(keys) != 1 || keys[0] != "premature.eof" {
		t.Errorf("diagnostics = %v", keys)
	}
}

func TestTruncatedInputTerminates(t *testing.T) {
	src := `package a.b;

import java.util.*;

@SuppressWarnings("unchecked")
public class Sample<T extends Comparable<T>> extends Base implements Runnable {
	private static final int[] TABLE = {1, 2, 3};
	private Map<String, List<T>> index = new HashMap<String, List<T>>();

	enum Mode { ON, OFF }

	public Sample(int n) throws IOException {
		super(n);
	}

	public <U> U run(U... args) {
		for (int i = 0; i < args.length; i++) {
			if (args[i] instanceof String && (i & 1) == 0) {
				continue;
			} else {
				x = (T) args[i];
			}
		}
		for (T t : list) { assert t != null : "null"; }
		switch (mode) { case ON: return null; default: break; }
		try { new Object() { }; } catch (RuntimeException e) { throw e; } finally { }
		label: while (true) { break label; }
		return (U) "a" + 'b' + 1.5e3f;
	}
}
`
	for i := 0; i <= len(src); i += 3 {
		p := ParseCompilationUnit(strings.NewReader(src[:i]))
		node, err := p.Finish()
		if err != nil {
			t.Fatalf("prefix %d: %v", i, err)
		}
		if node == nil || node.Kind != KindCompilationUnit {
			t.Fatalf("prefix %d: got %v", i, node)
		}
	}

	p := ParseCompilationUnit(strings.NewReader(src))
	node, err := p.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if diags := p.Diagnostics(); len(diags) > 0 {
		printErrors(t, node, 0)
		t.Errorf("full source: unexpected diagnostics %v", diags)
	}
}

func TestGarbageTerminates(t *testing.T) {
	inputs := []string{
		")))))",
		"class { { { {",
		"class C { ) ) ) }",
		"class C { void m() { ) ] } } }",
		"} } } class C {}",
		"import ; import a. ; class",
		"class C { int x = new ; }",
		"class C { void m() { switch (x) { foo bar } } }",
		"@ @ @ class",
		"enum E { A B C }",
		"< > < > <<>>",
		"class",
		"interface",
		"@",
		"import -",
		"@ } return",
		"import int >> case",
		"class C { void m() { switch (x) { case 1: } default } }",
		"class C { void m() { { default: } } }",
	}
	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			p := ParseCompilationUnit(strings.NewReader(src))
			node, err := p.Finish()
			if err != nil {
				t.Fatal(err)
			}
			if len(p.Diagnostics()) == 0 {
				t.Errorf("no diagnostics for %q: %s", src, sexp(node))
			}
			if !hasError(node) {
				t.Errorf("no error node for %q: %s", src, sexp(node))
			}
		})
	}
}

func TestMissingTokenLeavesErrorNode(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) *Parser
		input string
		want  string
	}{
		{"expression", exprParser, "(a", "(Error (ParenExpr a) (Error))"},
		{"type", typeParser, "List<String", "(Error (ParameterizedType List String) (Error))"},
		{"statement", stmtParser, "return x", "(Block (ReturnStmt x) (Error))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := tt.parse(tt.input).Finish()
			if err != nil {
				t.Fatal(err)
			}
			if got := sexp(node); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func exprParser(src string) *Parser { return ParseExpression(strings.NewReader(src)) }
func typeParser(src string) *Parser { return ParseType(strings.NewReader(src)) }
func stmtParser(src string) *Parser { return ParseStatement(strings.NewReader(src)) }

func TestTooDeep(t *testing.T) {
	nest := func(open, mid, close string, n int) string {
		return strings.Repeat(open, n) + mid + strings.Repeat(close, n)
	}
	tests := []struct {
		name  string
		parse func(string) *Parser
		input func(n int) string
	}{
		{"parens", exprParser, func(n int) string { return nest("(", "1", ")", n) }},
		{"assignments", exprParser, func(n int) string { return strings.Repeat("a=", n) + "b" }},
		{"conditionals", exprParser, func(n int) string { return strings.Repeat("a?b:", n) + "c" }},
		{"array initializers", unitParser, func(n int) string {
			return "class C { int[] x = " + nest("{", "", "}", n) + "; }"
		}},
		{"annotation values", unitParser, func(n int) string {
			return "@A(" + nest("{", "", "}", n) + ") class C {}"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.parse(tt.input(5000))
			node, err := p.Finish()
			if !errors.Is(err, ErrTooDeep) {
				t.Fatalf("err = %v, want ErrTooDeep", err)
			}
			if node != nil {
				t.Error("expected no tree")
			}
			if keys := diagKeys(p.Diagnostics()); len(keys) != 1 || keys[0] != "too.deeply.nested" {
				t.Errorf("diagnostics = %v", keys)
			}

			node, err = p.Finish()
			if node != nil || !errors.Is(err, ErrTooDeep) {
				t.Errorf("second Finish = %v, %v", node, err)
			}
			if n := len(p.Diagnostics()); n != 1 {
				t.Errorf("second Finish left %d diagnostics, want 1", n)
			}

			p = tt.parse(tt.input(100))
			if _, err := p.Finish(); err != nil {
				t.Errorf("100 levels: %v", err)
			}
			if diags := p.Diagnostics(); len(diags) > 0 {
				t.Errorf("100 levels: %v", diags)
			}
		})
	}

	p := ParseExpression(strings.NewReader("((1))"), WithMaxDepth(2))
	if _, err := p.Finish(); !errors.Is(err, ErrTooDeep) {
		t.Errorf("WithMaxDepth(2): err = %v", err)
	}
}

func unitParser(src string) *Parser { return ParseCompilationUnit(strings.NewReader(src)) }

func TestLexerErrorsAsDiagnostics(t *testing.T) {
	tests := []struct {
		input string
		key   string
	}{
		{"class C { String s = \"abc; }", "unclosed.str.lit"},
		{"class C { # }", "illegal.char"},
		{"class C { } /* x", "unclosed.comment"},
		{"class C { char c = ''; }", "empty.char.lit"},
		{"class C { int x = 0x; }", "invalid.hex.number"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, diags := parseUnit(t, tt.input)
			if len(diags) == 0 || diags[0].Key != tt.key {
				t.Errorf("diagnostics = %v, want %s first", diagKeys(diags), tt.key)
			}
		})
	}

	_, diags := parseUnit(t, "class C { # }")
	if len(diags) == 0 || diags[0].Args[0] != "#" {
		t.Errorf("illegal.char diagnostics = %v", diags)
	}
}

type recordingLog struct {
	errors, warnings []string
}

func (l *recordingLog) Error(pos Position, key string, args ...any) {
	l.errors = append(l.errors, key)
}

func (l *recordingLog) Warning(pos Position, key string, args ...any) {
	l.warnings = append(l.warnings, key)
}

func TestWithLog(t *testing.T) {
	log := &recordingLog{}
	p := ParseCompilationUnit(strings.NewReader("class C { int x = ; }"), WithLog(log))
	if _, err := p.Finish(); err != nil {
		t.Fatal(err)
	}
	if len(log.errors) != 1 || log.errors[0] != "illegal.start.of.expr" {
		t.Errorf("log received %v", log.errors)
	}
	if p.Diagnostics() != nil {
		t.Error("Diagnostics should be empty when WithLog is used")
	}
}
