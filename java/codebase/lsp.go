package codebase

import (
	"context"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf16"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/jparse/format"
	"github.com/dhamidi/jparse/java/parser"
)

const lsName = "jparse"

var lspLog = commonlog.GetLogger("jparse.lsp")

// LSPServer reports parse diagnostics to an editor and answers symbol,
// hover and formatting requests from the parse trees.
type LSPServer struct {
	codebase *Codebase
	opts     []parser.Option
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string, opts ...parser.Option) *LSPServer {
	ls := &LSPServer{
		version:  version,
		opts:     opts,
		codebase: New(".", opts...),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentFormatting:     ls.textDocumentFormatting,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir, ls.opts...)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(context.Background(), runtime.NumCPU()); err != nil {
		lspLog.Errorf("scan %s: %s", ls.codebase.RootDir(), err)
	}
	for _, f := range ls.codebase.Files() {
		if len(f.Diagnostics) > 0 {
			ls.publish(ctx, pathToURI(f.Path), f)
		}
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	info := ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publish(ctx, params.TextDocument.URI, info)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			info := ls.codebase.UpdateFile(path, []byte(textChange.Text))
			ls.publish(ctx, params.TextDocument.URI, info)
		}
	}
	return nil
}

// textDocumentDidClose drops unsaved edits by reparsing the file on disk.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if info, err := ls.codebase.ScanFile(path); err == nil {
		ls.publish(ctx, params.TextDocument.URI, info)
	} else {
		ls.codebase.RemoveFile(path)
		ls.publish(ctx, params.TextDocument.URI, nil)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var info *FileInfo
	if params.Text != nil {
		info = ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else if info, err = ls.codebase.ScanFile(path); err != nil {
		lspLog.Errorf("scan %s: %s", path, err)
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, info)
	return nil
}

// publish sends the diagnostics of info, or clears them when info is nil.
func (ls *LSPServer) publish(ctx *glsp.Context, uri protocol.DocumentUri, info *FileInfo) {
	diagnostics := []protocol.Diagnostic{}
	if info != nil {
		diagnostics = toProtocolDiagnostics(info.Diagnostics)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	info := ls.fileFor(params.TextDocument.URI)
	if info == nil || info.AST == nil {
		return nil, nil
	}
	return documentSymbols(info.AST), nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	info := ls.fileFor(params.TextDocument.URI)
	if info == nil {
		return nil, nil
	}
	offset := offsetAt(info.Content, int(params.Position.Line), int(params.Position.Character))
	decl := DeclarationAt(info.AST, offset)
	if decl == nil {
		return nil, nil
	}
	text := hoverText(decl, info.Docs[decl.ID])
	r := toProtocolRange(decl.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: text},
		Range:    &r,
	}, nil
}

func (ls *LSPServer) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	info := ls.fileFor(params.TextDocument.URI)
	if info == nil {
		return nil, nil
	}
	return formatEdits(info, ls.opts...), nil
}

func (ls *LSPServer) fileFor(uri protocol.DocumentUri) *FileInfo {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	return ls.codebase.GetFile(path)
}

// formatEdits replaces the whole document with its pretty-printed form.
// Files with errors are left alone.
func formatEdits(info *FileInfo, opts ...parser.Option) []protocol.TextEdit {
	text, err := format.PrettyPrintJavaFile(info.Content, info.Path, opts...)
	if err != nil {
		lspLog.Debugf("format %s: %s", info.Path, err)
		return nil
	}
	if string(text) == string(info.Content) {
		return []protocol.TextEdit{}
	}
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{},
			End:   documentEnd(info.Content),
		},
		NewText: string(text),
	}}
}

func documentEnd(content []byte) protocol.Position {
	s := string(content)
	line := strings.Count(s, "\n")
	last := s[strings.LastIndexByte(s, '\n')+1:]
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(len(utf16.Encode([]rune(last)))),
	}
}

func toProtocolDiagnostics(diags []parser.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	source := lsName
	for _, d := range diags {
		severity := protocol.DiagnosticSeverityError
		if d.Severity == parser.SeverityWarning {
			severity = protocol.DiagnosticSeverityWarning
		}
		pos := toProtocolPosition(d.Pos)
		out = append(out, protocol.Diagnostic{
			Range:    protocol.Range{Start: pos, End: pos},
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: d.Key},
			Source:   &source,
			Message:  d.Message(),
		})
	}
	return out
}

func toProtocolPosition(p parser.Position) protocol.Position {
	line, col := p.Line-1, p.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

func toProtocolRange(span parser.Span) protocol.Range {
	r := protocol.Range{Start: toProtocolPosition(span.Start), End: toProtocolPosition(span.Start)}
	if span.End.IsValid() {
		r.End = toProtocolPosition(span.End)
	}
	return r
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
