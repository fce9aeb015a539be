package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/jparse/java/parser"
)

func TestASTJSONEncoder(t *testing.T) {
	p := parser.ParseCompilationUnit(strings.NewReader("/** Doc. */\nclass C { int x = ; }"),
		parser.WithFile("C.java"), parser.WithDocComments())
	node, err := p.Finish()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err = NewASTJSONEncoder(&buf).Encode(ParseResult{
		File:        "C.java",
		Tree:        node,
		Diagnostics: p.Diagnostics(),
		Docs:        p.DocComments(),
	})
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		File string `json:"file"`
		Tree struct {
			Kind string `json:"kind"`
		} `json:"tree"`
		Diagnostics []struct {
			Severity string `json:"severity"`
			Key      string `json:"key"`
			Message  string `json:"message"`
			Position struct {
				Line   int `json:"line"`
				Column int `json:"column"`
			} `json:"position"`
		} `json:"diagnostics"`
		Docs map[string]string `json:"docs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc.File != "C.java" || doc.Tree.Kind != "CompilationUnit" {
		t.Errorf("file = %q, kind = %q", doc.File, doc.Tree.Kind)
	}
	if len(doc.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v", doc.Diagnostics)
	}
	d := doc.Diagnostics[0]
	if d.Severity != "error" || d.Position.Line != 2 || d.Position.Column != 19 || d.Message == "" {
		t.Errorf("diagnostic = %+v", d)
	}
	found := false
	for _, text := range doc.Docs {
		if text == "Doc." {
			found = true
		}
	}
	if !found {
		t.Errorf("docs = %v", doc.Docs)
	}
}

func TestASTJSONEncoderCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Compact().Encode(ParseResult{}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{\"tree\":null,\"diagnostics\":[]}\n" {
		t.Errorf("got %q", got)
	}
}
