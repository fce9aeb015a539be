package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jparse/java/parser"
)

// ASTJSONEncoder writes a parse result as one JSON document: the tree,
// the diagnostics and, when requested, the documentation comments.
type ASTJSONEncoder struct {
	w      io.Writer
	indent bool
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w, indent: true}
}

// Compact turns off indentation.
func (e *ASTJSONEncoder) Compact() *ASTJSONEncoder {
	e.indent = false
	return e
}

// ParseResult is what a single parse produced.
type ParseResult struct {
	File        string
	Tree        *parser.Node
	Diagnostics []parser.Diagnostic
	Docs        map[parser.NodeID]string
}

func (e *ASTJSONEncoder) Encode(result ParseResult) error {
	text, err := e.MarshalText(result)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(result ParseResult) ([]byte, error) {
	doc := astJSONDocument{
		File:        result.File,
		Tree:        result.Tree,
		Diagnostics: []astJSONDiagnostic{},
	}
	for _, d := range result.Diagnostics {
		doc.Diagnostics = append(doc.Diagnostics, diagnosticToJSON(d))
	}
	if len(result.Docs) > 0 {
		doc.Docs = make(map[parser.NodeID]string, len(result.Docs))
		for id, text := range result.Docs {
			doc.Docs[id] = text
		}
	}
	if e.indent {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

type astJSONDocument struct {
	File        string                   `json:"file,omitempty"`
	Tree        *parser.Node             `json:"tree"`
	Diagnostics []astJSONDiagnostic      `json:"diagnostics"`
	Docs        map[parser.NodeID]string `json:"docs,omitempty"`
}

type astJSONDiagnostic struct {
	Severity string          `json:"severity"`
	Key      string          `json:"key"`
	Message  string          `json:"message"`
	Position astJSONPosition `json:"position"`
}

type astJSONPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func diagnosticToJSON(d parser.Diagnostic) astJSONDiagnostic {
	return astJSONDiagnostic{
		Severity: d.Severity.String(),
		Key:      d.Key,
		Message:  d.Message(),
		Position: astJSONPosition{Offset: d.Pos.Offset, Line: d.Pos.Line, Column: d.Pos.Column},
	}
}
