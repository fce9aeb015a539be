package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jparse/java/javadoc"
)

// ErrTooDeep is returned by Finish when the input nests deeper than the
// parser's depth limit.
var ErrTooDeep = errors.New("input too deeply nested")

// DefaultMaxDepth bounds the nesting of expressions, statements and bodies.
const DefaultMaxDepth = 1000

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithComments keeps comment tokens, available from Comments.
func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

// WithDocComments records documentation comments for declarations.
func WithDocComments() Option {
	return func(p *Parser) {
		p.keepDocs = true
	}
}

// WithEndPositions fills in the End of every node's Span. Without it End is
// NoPos.
func WithEndPositions() Option {
	return func(p *Parser) {
		p.endPositions = true
	}
}

// WithLog sends diagnostics to log instead of the parser's own collector.
func WithLog(log Log) Option {
	return func(p *Parser) {
		p.log = log
	}
}

func WithSource(src Source) Option {
	return func(p *Parser) {
		p.source = src
	}
}

func WithFeatures(f Features) Option {
	return func(p *Parser) {
		p.source.Features = f
	}
}

func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

type parseFunc func(*Parser) *Node

// Parser is a javac-style recursive-descent parser for Java source. A Parser
// parses one input once and must not be shared between goroutines.
type Parser struct {
	file            string
	includeComments bool
	keepDocs        bool
	endPositions    bool
	maxDepth        int
	reader          io.Reader
	src             TokenSource
	tokens          []Token
	comments        []Token
	pos             int
	entry           parseFunc
	done            bool
	result          *Node
	err             error

	log    Log
	diags  *Diagnostics
	source Source

	// errPos is the offset of the last reported syntax error; errorPos is
	// the token offset right after it, used to force progress.
	errPos      int
	errorPos    int
	errorEndPos int
	eofReported bool

	// missing holds erroneous nodes waiting for an enclosing list.
	missing []*Node

	depth  int
	nextID NodeID
	docs   map[NodeID]string

	// Operand and operator stacks for term2Rest, shared by nested calls.
	odStack []*Node
	opStack []TokenKind
}

func newParser(r io.Reader, src TokenSource, entry parseFunc, opts []Option) *Parser {
	p := &Parser{
		reader:      r,
		src:         src,
		entry:       entry,
		maxDepth:    DefaultMaxDepth,
		source:      DefaultSource,
		errPos:      -1,
		errorPos:    -1,
		errorEndPos: -1,
		docs:        make(map[NodeID]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.diags = NewDiagnostics()
		p.log = p.diags
	}
	return p
}

func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	return newParser(r, nil, (*Parser).compilationUnit, opts)
}

func ParseExpression(r io.Reader, opts ...Option) *Parser {
	return newParser(r, nil, (*Parser).parseExpressionUnit, opts)
}

func ParseType(r io.Reader, opts ...Option) *Parser {
	return newParser(r, nil, (*Parser).parseTypeUnit, opts)
}

// ParseStatement parses a single block statement, such as a local variable
// declaration or an if statement.
func ParseStatement(r io.Reader, opts ...Option) *Parser {
	return newParser(r, nil, (*Parser).parseStatementUnit, opts)
}

// NewParser returns a parser for a compilation unit read from src.
func NewParser(src TokenSource, opts ...Option) *Parser {
	return newParser(nil, src, (*Parser).compilationUnit, opts)
}

// Finish runs the parse and returns the tree. Syntax errors never fail the
// parse; they are reported to the Log and show up as KindError nodes. The
// returned error is non-nil only when the input cannot be read or nests too
// deeply.
func (p *Parser) Finish() (node *Node, err error) {
	if p.done {
		return p.result, p.err
	}
	if p.src == nil {
		data, err := io.ReadAll(p.reader)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		p.src = NewLexer(data, p.file)
	}
	if p.tokens == nil {
		p.tokenize()
	}

	defer func() {
		if r := recover(); r != nil {
			if r != errNesting {
				panic(r)
			}
			p.log.Error(p.tok().Pos(), "too.deeply.nested")
			p.done, p.result, p.err = true, nil, ErrTooDeep
			node, err = nil, ErrTooDeep
		}
	}()

	p.lexErrorAt(p.tok())
	p.result = p.entry(p)
	p.done = true
	return p.result, nil
}

// Diagnostics returns what the parser's own collector received. It is empty
// when WithLog was used.
func (p *Parser) Diagnostics() []Diagnostic {
	if p.diags == nil {
		return nil
	}
	return p.diags.All()
}

// Comments returns the comment tokens seen, when WithComments was given.
func (p *Parser) Comments() []Token {
	return p.comments
}

// DocComment returns the documentation comment attached to n.
func (p *Parser) DocComment(n *Node) string {
	if n == nil {
		return ""
	}
	return p.docs[n.ID]
}

func (p *Parser) DocComments() map[NodeID]string {
	return p.docs
}

// Features returns the features in effect, including any that were
// force-enabled after a use triggered an error.
func (p *Parser) Features() Features {
	return p.source.Features
}

func (p *Parser) tokenize() {
	var doc string
	for {
		tok := p.src.NextToken()
		switch tok.Kind {
		case TokenWhitespace:
			continue
		case TokenComment, TokenLineComment:
			if p.includeComments {
				p.comments = append(p.comments, tok)
			}
			if IsDocComment(tok) {
				doc = tok.Literal
			}
			if tok.Err == "" {
				continue
			}
			// An unclosed comment runs to EOF; report it there.
			tok = Token{Kind: TokenEOF, Span: Span{Start: tok.End(), End: tok.End()}, Err: tok.Err}
		}
		tok.Doc = doc
		doc = ""
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
}

func (p *Parser) tok() Token {
	return p.tokens[p.pos]
}

func (p *Parser) kind() TokenKind {
	return p.tokens[p.pos].Kind
}

// offset is the current token's source offset.
func (p *Parser) offset() int {
	return p.tokens[p.pos].Span.Start.Offset
}

func (p *Parser) next() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
		p.lexErrorAt(p.tok())
	}
}

func (p *Parser) prevEnd() Position {
	if p.pos == 0 {
		return p.tok().Pos()
	}
	return p.tokens[p.pos-1].End()
}

func (p *Parser) lexErrorAt(tok Token) {
	if tok.Err == "" {
		return
	}
	var args []any
	if tok.Err == "illegal.char" {
		args = append(args, tok.Literal)
	}
	p.log.Error(tok.Pos(), tok.Err, args...)
	p.markMissing(tok.Pos(), tok.Err, args...)
	if tok.Pos().Offset > p.errPos {
		p.errPos = tok.Pos().Offset
	}
	p.tokens[p.pos].Err = ""
}

// splitGT consumes one '>' from the current token, which must start with
// '>'. The rest of the token stays current.
func (p *Parser) splitGT() {
	t := &p.tokens[p.pos]
	var rest TokenKind
	switch t.Kind {
	case TokenUShrAssign:
		rest = TokenShrAssign
	case TokenShrAssign:
		rest = TokenGE
	case TokenGE:
		rest = TokenAssign
	case TokenUShr:
		rest = TokenShr
	case TokenShr:
		rest = TokenGT
	default:
		p.accept(TokenGT)
		return
	}
	t.Kind = rest
	t.Literal = t.Literal[1:]
	t.Span.Start.Offset++
	t.Span.Start.Column++
}

var errNesting = new(int)

func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		panic(errNesting)
	}
}

func (p *Parser) leave() {
	p.depth--
}

// at creates a node starting at pos.
func (p *Parser) at(kind NodeKind, pos Position, children ...*Node) *Node {
	p.nextID++
	n := &Node{ID: p.nextID, Kind: kind, Span: Span{Start: pos, End: NoPos}}
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

// leaf creates a node for the current token and consumes it.
func (p *Parser) leaf(kind NodeKind) *Node {
	tok := p.tok()
	n := p.at(kind, tok.Pos())
	n.Token = &tok
	if p.endPositions {
		n.Span.End = tok.End()
	}
	p.next()
	return n
}

// toP ends n at the previous token, or later if an error extended past it.
func (p *Parser) toP(n *Node) *Node {
	if !p.endPositions || n == nil {
		return n
	}
	end := p.prevEnd()
	if p.errorEndPos > end.Offset {
		end = p.tokens[p.tokenIndexAt(p.errorEndPos)].End()
	}
	n.Span.End = end
	return n
}

// tokenIndexAt returns the index of the last token starting at or before
// offset.
func (p *Parser) tokenIndexAt(offset int) int {
	i := p.pos
	for i > 0 && p.tokens[i].Span.Start.Offset > offset {
		i--
	}
	return i
}

func (p *Parser) errorNode(pos Position, key string, args []any, children ...*Node) *Node {
	n := p.at(KindError, pos, children...)
	got := p.tok()
	n.Error = &Error{Key: key, Message: FormatMessage(key, args...), Got: &got}
	return n
}

func (p *Parser) attach(n *Node, doc string) {
	if p.keepDocs && doc != "" {
		p.docs[n.ID] = docText(doc)
	}
}

// docText strips the comment delimiters and leading asterisks from a
// documentation comment.
func docText(raw string) string {
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimSuffix(raw, "*/")
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = strings.TrimLeft(line, " \t\r")
		line = strings.TrimLeft(line, "*")
		line = strings.TrimPrefix(line, " ")
		lines[i] = line
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func deprecated(doc string) bool {
	return doc != "" && javadoc.IsDeprecated(doc)
}

func (p *Parser) parseExpressionUnit() *Node {
	n := p.parseExpression()
	p.accept(TokenEOF)
	return p.withMissing(n)
}

func (p *Parser) parseTypeUnit() *Node {
	n := p.parseType()
	p.accept(TokenEOF)
	return p.withMissing(n)
}

func (p *Parser) parseStatementUnit() *Node {
	stats := p.blockStatements()
	var n *Node
	switch len(stats) {
	case 0:
		n = p.syntaxError(p.tok().Pos(), nil, "illegal.start.of.expr")
	case 1:
		n = stats[0]
	default:
		n = p.at(KindBlock, stats[0].Pos(), stats...)
	}
	p.accept(TokenEOF)
	return p.withMissing(n)
}
