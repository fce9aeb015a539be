package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dhamidi/jparse/java/parser"
)

// ErrHasErrors is returned by PrettyPrintJava when the source does not
// parse cleanly. Printing a tree with error nodes would lose input.
var ErrHasErrors = errors.New("source has syntax errors")

type JavaPrettyPrinter struct {
	w            io.Writer
	err          error
	comments     []parser.Token
	commentIndex int
	indent       int
	indentStr    string
	atLineStart  bool
	lastLine     int // source line of the last thing printed
	column       int // Current column position (0-indexed)
	maxColumn    int // Maximum line length (default 80)
}

func NewJavaPrettyPrinter(w io.Writer) *JavaPrettyPrinter {
	return &JavaPrettyPrinter{
		w:           w,
		indentStr:   "    ",
		atLineStart: true,
		lastLine:    1,
		maxColumn:   80,
	}
}

// Print writes node as Java source. Comments are interleaved at the
// statement and member boundaries nearest to where they appeared; node must
// carry source positions for that to work.
func (p *JavaPrettyPrinter) Print(node *parser.Node, comments []parser.Token) error {
	p.comments = append([]parser.Token(nil), comments...)
	sort.SliceStable(p.comments, func(i, j int) bool {
		return p.comments[i].Span.Start.Offset < p.comments[j].Span.Start.Offset
	})
	p.commentIndex = 0

	p.printNode(node)
	p.emitRemainingComments()
	if !p.atLineStart {
		p.newline()
	}
	return p.err
}

func (p *JavaPrettyPrinter) printNode(node *parser.Node) {
	switch node.Kind {
	case parser.KindCompilationUnit:
		p.printCompilationUnit(node)
	case parser.KindPackageDecl:
		p.printPackageDecl(node)
	case parser.KindImportDecl:
		p.printImportDecl(node)
	case parser.KindClassDecl, parser.KindInterfaceDecl, parser.KindEnumDecl, parser.KindAnnotationDecl:
		p.printTypeDecl(node)
	case parser.KindFieldDecl, parser.KindMethodDecl, parser.KindConstructorDecl,
		parser.KindInitializer, parser.KindEmptyDecl:
		p.printMember(node)
	default:
		if isStatementKind(node.Kind) {
			p.printStatement(node)
			return
		}
		p.printExpr(node)
	}
}

func (p *JavaPrettyPrinter) printCompilationUnit(node *parser.Node) {
	var prev *parser.Node
	for _, child := range node.Children {
		if prev != nil && (prev.Kind != child.Kind || isTypeDeclKind(child.Kind)) {
			p.blankLine()
		}
		p.emitCommentsBefore(child.Pos())
		switch child.Kind {
		case parser.KindPackageDecl:
			p.printPackageDecl(child)
		case parser.KindImportDecl:
			p.printImportDecl(child)
		case parser.KindEmptyDecl:
			p.writeIndent()
			p.write(";")
			p.newline()
		default:
			p.printTypeDecl(child)
		}
		p.lastLine = lastSourceLine(child)
		prev = child
	}
}

func (p *JavaPrettyPrinter) printPackageDecl(node *parser.Node) {
	p.writeIndent()
	if mods := node.Child(0); mods != nil {
		p.printModifiers(mods, true)
	}
	p.write("package ")
	p.printExpr(node.Child(1))
	p.write(";")
	p.endLine(node)
}

func (p *JavaPrettyPrinter) printImportDecl(node *parser.Node) {
	p.writeIndent()
	p.write("import ")
	if node.Flags&parser.FlagStatic != 0 {
		p.write("static ")
	}
	p.printExpr(node.Child(0))
	p.write(";")
	p.endLine(node)
}

// endLine finishes a line printed for node, keeping any comment that
// trailed it in the source.
func (p *JavaPrettyPrinter) endLine(node *parser.Node) {
	p.emitTrailingComment(node.Span.End)
	p.newline()
}

func (p *JavaPrettyPrinter) writeIndent() {
	if p.atLineStart {
		for i := 0; i < p.indent; i++ {
			p.write(p.indentStr)
		}
		p.atLineStart = false
	}
}

func (p *JavaPrettyPrinter) write(s string) {
	if p.err != nil || s == "" {
		return
	}
	_, p.err = io.WriteString(p.w, s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		p.column = len(s) - i - 1
	} else {
		p.column += len(s)
	}
}

func (p *JavaPrettyPrinter) newline() {
	p.write("\n")
	p.atLineStart = true
}

// blankLine separates groups; it never emits more than one empty line.
func (p *JavaPrettyPrinter) blankLine() {
	if !p.atLineStart {
		p.newline()
	}
	p.write("\n")
}

// wouldExceed reports whether printing n more columns would pass maxColumn.
func (p *JavaPrettyPrinter) wouldExceed(n int) bool {
	return p.column+n > p.maxColumn
}

// measureExpr returns the printed width of node on a single line.
func (p *JavaPrettyPrinter) measureExpr(node *parser.Node) int {
	var buf bytes.Buffer
	mp := NewJavaPrettyPrinter(&buf)
	mp.atLineStart = false
	mp.maxColumn = 1 << 30
	mp.printExpr(node)
	return buf.Len()
}

// typeString renders a type node on one line.
func typeString(node *parser.Node) string {
	var buf bytes.Buffer
	mp := NewJavaPrettyPrinter(&buf)
	mp.atLineStart = false
	mp.maxColumn = 1 << 30
	mp.printType(node)
	return buf.String()
}

func isStatementKind(kind parser.NodeKind) bool {
	switch kind {
	case parser.KindBlock, parser.KindEmptyStmt, parser.KindExprStmt, parser.KindIfStmt,
		parser.KindForStmt, parser.KindEnhancedForStmt, parser.KindWhileStmt, parser.KindDoStmt,
		parser.KindSwitchStmt, parser.KindReturnStmt, parser.KindBreakStmt,
		parser.KindContinueStmt, parser.KindThrowStmt, parser.KindTryStmt, parser.KindSynchronizedStmt,
		parser.KindAssertStmt, parser.KindLocalVarDecl, parser.KindLabeledStmt:
		return true
	}
	return false
}

func isTypeDeclKind(kind parser.NodeKind) bool {
	switch kind {
	case parser.KindClassDecl, parser.KindInterfaceDecl, parser.KindEnumDecl, parser.KindAnnotationDecl:
		return true
	}
	return false
}

// lastSourceLine is the last source line node covers, falling back to its start
// when end positions were not recorded.
func lastSourceLine(node *parser.Node) int {
	if node.Span.End.IsValid() {
		return node.Span.End.Line
	}
	return node.Pos().Line
}

func PrettyPrintJava(source []byte) ([]byte, error) {
	return PrettyPrintJavaFile(source, "")
}

// PrettyPrintJavaFile reformats a compilation unit. Source with syntax
// errors is rejected with an error wrapping ErrHasErrors.
func PrettyPrintJavaFile(source []byte, filename string, opts ...parser.Option) ([]byte, error) {
	opts = append([]parser.Option{parser.WithComments(), parser.WithEndPositions()}, opts...)
	if filename != "" {
		opts = append(opts, parser.WithFile(filename))
	}
	pr := parser.ParseCompilationUnit(bytes.NewReader(source), opts...)
	node, err := pr.Finish()
	if err != nil {
		return nil, err
	}
	diags := parser.NewDiagnostics()
	for _, d := range pr.Diagnostics() {
		if d.Severity == parser.SeverityError {
			diags.Error(d.Pos, d.Key, d.Args...)
		}
	}
	if diags.ErrorCount() > 0 {
		return nil, fmt.Errorf("%w:\n%w", ErrHasErrors, diags.Err())
	}

	var buf bytes.Buffer
	pp := NewJavaPrettyPrinter(&buf)
	if err := pp.Print(node, pr.Comments()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
