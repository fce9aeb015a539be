package parser

import (
	"slices"
	"strings"
	"testing"
)

func TestDiagnosticsDedup(t *testing.T) {
	d := NewDiagnostics()
	pos := Position{File: "A.java", Offset: 4, Line: 1, Column: 5}
	d.Error(pos, "expected", "';'")
	d.Error(pos, "expected", "')'")
	d.Error(pos, "not.stmt")
	d.Error(Position{File: "A.java", Offset: 12, Line: 2, Column: 3}, "not.stmt")
	d.Warning(Position{Offset: 9, Line: 2, Column: 1}, "assert.as.identifier")
	d.Warning(Position{Offset: 9, Line: 2, Column: 1}, "assert.as.identifier")
	d.Warning(Position{Offset: 9, Line: 2, Column: 1}, "enum.as.identifier")

	all := d.All()
	if len(all) != 4 {
		t.Fatalf("got %d diagnostics, want 4", len(all))
	}
	if all[0].Args[0] != "';'" {
		t.Errorf("first report should win, got %v", all[0].Args)
	}
	if d.ErrorCount() != 2 {
		t.Errorf("ErrorCount = %d, want 2", d.ErrorCount())
	}

	err := d.Err()
	if err == nil {
		t.Fatal("Err() = nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "A.java:1:5: error: ';' expected") || !strings.Contains(msg, "A.java:2:3: error: not a statement") {
		t.Errorf("Err() = %q", msg)
	}
	if strings.Contains(msg, "')'") {
		t.Error("a second error at the same offset should be dropped")
	}
	if strings.Contains(msg, "assert") {
		t.Error("warnings should not be part of Err()")
	}

	if NewDiagnostics().Err() != nil {
		t.Error("empty collector should have no error")
	}
}

func TestOneErrorPerOffset(t *testing.T) {
	const garbage = "finally x assert ! class >> { . instanceof ? ! \"s\""
	tests := []struct {
		name  string
		parse func(string) *Parser
		input string
	}{
		{"statement", stmtParser, garbage},
		{"compilation unit", unitParser, garbage},
		{"class body", unitParser, "class C { void m() { " + garbage + " } }"},
		{"incomplete binary", stmtParser, "a + ;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.parse(tt.input)
			if _, err := p.Finish(); err != nil {
				t.Fatal(err)
			}
			seen := make(map[int]string)
			for _, d := range p.Diagnostics() {
				if d.Severity != SeverityError {
					continue
				}
				if key, ok := seen[d.Pos.Offset]; ok {
					t.Errorf("%s and %s both reported at %d:%d", key, d.Key, d.Pos.Line, d.Pos.Column)
				}
				seen[d.Pos.Offset] = d.Key
			}
		})
	}
}

func TestErroneousTermNotReportedTwice(t *testing.T) {
	tests := []struct {
		input string
		keys  []string
	}{
		{"a + ;", []string{"illegal.start.of.expr"}},
		{"a == b;", []string{"not.stmt"}},
		{"x = ;", []string{"illegal.start.of.expr"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, diags := parseStmt(t, tt.input)
			if got := diagKeys(diags); !slices.Equal(got, tt.keys) {
				t.Errorf("diagnostics = %v, want %v", got, tt.keys)
			}
		})
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Pos:      Position{Offset: 0, Line: 3, Column: 7},
		Severity: SeverityWarning,
		Key:      "enum.as.identifier",
	}
	want := "3:7: warning: as of release 5, 'enum' is a keyword, and may not be used as an identifier"
	if got := d.String(); got != want {
		t.Errorf("String() = %q", got)
	}
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		key  string
		args []any
		want string
	}{
		{"expected", []any{"';'"}, "';' expected"},
		{"expected3", []any{"class", "interface", "enum"}, "class, interface, or enum expected"},
		{"illegal.char", []any{"#"}, "illegal character: #"},
		{"premature.eof", nil, "reached end of file while parsing"},
		{"no.such.key", nil, "no.such.key"},
		{"no.such.key", []any{1, "x"}, "no.such.key: 1, x"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatMessage(tt.key, tt.args...); got != tt.want {
				t.Errorf("FormatMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParserDiagnosticsCarryFile(t *testing.T) {
	p := ParseCompilationUnit(strings.NewReader("class C {\n  int x = ;\n}"), WithFile("C.java"))
	if _, err := p.Finish(); err != nil {
		t.Fatal(err)
	}
	diags := p.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v", diags)
	}
	if got := diags[0].Pos.String(); got != "C.java:2:11" {
		t.Errorf("Pos = %s, want C.java:2:11", got)
	}
}
