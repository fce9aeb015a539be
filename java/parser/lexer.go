package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenSource supplies the parser with tokens. Whitespace and comment tokens
// are allowed; the parser filters them. The last token must be TokenEOF.
type TokenSource interface {
	NextToken() Token
}

// Lexer tokenizes Java source. It never fails: malformed input yields tokens
// with Err set to a diagnostic key.
type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	if c := l.input[l.pos]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRune(l.input[l.pos:])
}

func (l *Lexer) advanceRune() {
	_, size := l.peekRune()
	l.pos += size
	l.column++
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.atEOF() {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}

	if isWhitespace(ch) {
		return l.scanWhitespace(startPos)
	}

	if r, _ := l.peekRune(); isJavaLetter(r) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos)
	}
	if ch == '.' && isDigit(l.peekN(1)) {
		return l.scanFraction(startPos)
	}

	if ch == '\'' {
		return l.scanCharLiteral(startPos)
	}

	if ch == '"' {
		return l.scanStringLiteral(startPos)
	}

	return l.scanOperator(startPos)
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for isWhitespace(l.peek()) {
		l.advance()
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	l.advanceN(2)
	for !l.atEOF() && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	closed := false
	for !l.atEOF() {
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			closed = true
			break
		}
		l.advance()
	}
	tok := l.token(TokenComment, start)
	if !closed {
		tok.Err = "unclosed.comment"
	}
	return tok
}

// IsDocComment reports whether a comment token is a /** */ documentation
// comment.
func IsDocComment(tok Token) bool {
	return tok.Kind == TokenComment && strings.HasPrefix(tok.Literal, "/**") &&
		tok.Literal != "/**/"
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for {
		r, _ := l.peekRune()
		if l.atEOF() || !isJavaLetterOrDigit(r) {
			break
		}
		l.advanceRune()
	}
	tok := l.token(TokenIdent, start)
	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

func (l *Lexer) scanDigits(radix int) int {
	n := 0
	for digitValue(l.peek(), radix) >= 0 {
		l.advance()
		n++
	}
	return n
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		return l.scanHexNumber(start)
	}

	radix := 10
	if l.peek() == '0' {
		radix = 8
	}
	digitsStart := l.pos
	l.scanDigits(10)

	switch l.peek() {
	case '.':
		l.advance()
		return l.scanFractionAndSuffix(start)
	case 'e', 'E', 'f', 'F', 'd', 'D':
		return l.scanFractionAndSuffix(start)
	}

	digits := string(l.input[digitsStart:l.pos])
	kind := TokenIntLiteral
	if l.peek() == 'l' || l.peek() == 'L' {
		l.advance()
		kind = TokenLongLiteral
	}
	tok := l.token(kind, start)
	tok.Radix = radix
	if radix == 8 {
		digits = strings.TrimPrefix(digits, "0")
		if digits == "" {
			digits = "0"
		}
		for _, c := range digits {
			if c > '7' {
				tok.Err = "illegal.char"
				break
			}
		}
	}
	tok.Value = digits
	return tok
}

func (l *Lexer) scanFraction(start Position) Token {
	l.advance()
	return l.scanFractionAndSuffix(start)
}

// scanFractionAndSuffix scans the remainder of a decimal floating point
// literal; the integer part and any '.' are already consumed.
func (l *Lexer) scanFractionAndSuffix(start Position) Token {
	l.scanDigits(10)
	var err string
	if l.peek() == 'e' || l.peek() == 'E' {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if l.scanDigits(10) == 0 {
			err = "malformed.fp.lit"
		}
	}
	valueEnd := l.pos
	kind := TokenDoubleLiteral
	switch l.peek() {
	case 'f', 'F':
		l.advance()
		kind = TokenFloatLiteral
	case 'd', 'D':
		l.advance()
	}
	tok := l.token(kind, start)
	tok.Radix = 10
	tok.Value = string(l.input[start.Offset:valueEnd])
	tok.Err = err
	return tok
}

func (l *Lexer) scanHexNumber(start Position) Token {
	l.advanceN(2)
	digitsStart := l.pos
	n := l.scanDigits(16)
	isFloat := false
	if l.peek() == '.' {
		isFloat = true
		l.advance()
		n += l.scanDigits(16)
	}
	var err string
	if n == 0 {
		err = "invalid.hex.number"
	}
	if l.peek() == 'p' || l.peek() == 'P' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if l.scanDigits(10) == 0 {
			err = "malformed.fp.lit"
		}
	} else if isFloat {
		err = "malformed.fp.lit"
	}

	if isFloat {
		valueEnd := l.pos
		kind := TokenDoubleLiteral
		switch l.peek() {
		case 'f', 'F':
			l.advance()
			kind = TokenFloatLiteral
		case 'd', 'D':
			l.advance()
		}
		tok := l.token(kind, start)
		tok.Radix = 16
		tok.Value = string(l.input[start.Offset:valueEnd])
		tok.Err = err
		return tok
	}

	digits := string(l.input[digitsStart:l.pos])
	kind := TokenIntLiteral
	if l.peek() == 'l' || l.peek() == 'L' {
		l.advance()
		kind = TokenLongLiteral
	}
	tok := l.token(kind, start)
	tok.Radix = 16
	tok.Value = digits
	tok.Err = err
	return tok
}

func (l *Lexer) scanCharLiteral(start Position) Token {
	l.advance()
	var sb strings.Builder
	var err string
	switch l.peek() {
	case '\'':
		err = "empty.char.lit"
		l.advance()
	case '\n', '\r', 0:
		err = "illegal.line.end.in.char.lit"
	default:
		if e := l.scanLitChar(&sb); e != "" {
			err = e
		}
		if l.peek() == '\'' {
			l.advance()
		} else if err == "" {
			err = "unclosed.char.lit"
		}
	}
	tok := l.token(TokenCharLiteral, start)
	tok.Value = sb.String()
	tok.Err = err
	return tok
}

func (l *Lexer) scanStringLiteral(start Position) Token {
	l.advance()
	var sb strings.Builder
	var err string
	closed := false
	for !l.atEOF() {
		ch := l.peek()
		if ch == '"' {
			l.advance()
			closed = true
			break
		}
		if ch == '\n' || ch == '\r' {
			break
		}
		if e := l.scanLitChar(&sb); e != "" && err == "" {
			err = e
		}
	}
	tok := l.token(TokenStringLiteral, start)
	tok.Value = sb.String()
	if !closed {
		err = "unclosed.str.lit"
	}
	tok.Err = err
	return tok
}

// scanLitChar decodes one character of a char or string literal, including
// escape sequences, into sb.
func (l *Lexer) scanLitChar(sb *strings.Builder) string {
	if l.peek() != '\\' {
		r, _ := l.peekRune()
		l.advanceRune()
		sb.WriteRune(r)
		return ""
	}
	l.advance()
	ch := l.peek()
	switch ch {
	case 'b':
		sb.WriteByte('\b')
	case 't':
		sb.WriteByte('\t')
	case 'n':
		sb.WriteByte('\n')
	case 'f':
		sb.WriteByte('\f')
	case 'r':
		sb.WriteByte('\r')
	case '\'', '"', '\\':
		sb.WriteByte(ch)
	case 'u':
		for l.peek() == 'u' {
			l.advance()
		}
		v := 0
		for i := 0; i < 4; i++ {
			d := digitValue(l.peek(), 16)
			if d < 0 {
				return "illegal.unicode.esc"
			}
			v = v*16 + d
			l.advance()
		}
		sb.WriteRune(rune(v))
		return ""
	default:
		if ch >= '0' && ch <= '7' {
			lead := ch
			v := 0
			for i := 0; i < 3; i++ {
				d := digitValue(l.peek(), 8)
				if d < 0 || (i == 2 && lead > '3') {
					break
				}
				v = v*8 + d
				l.advance()
			}
			sb.WriteRune(rune(v))
			return ""
		}
		if ch != 0 && ch != '\n' {
			l.advance()
		}
		return "illegal.esc.char"
	}
	l.advance()
	return ""
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '(':
		return l.single(TokenLParen, start)
	case ')':
		return l.single(TokenRParen, start)
	case '{':
		return l.single(TokenLBrace, start)
	case '}':
		return l.single(TokenRBrace, start)
	case '[':
		return l.single(TokenLBracket, start)
	case ']':
		return l.single(TokenRBracket, start)
	case ';':
		return l.single(TokenSemicolon, start)
	case ',':
		return l.single(TokenComma, start)
	case '@':
		return l.single(TokenAt, start)
	case '~':
		return l.single(TokenBitNot, start)
	case '?':
		return l.single(TokenQuestion, start)
	case ':':
		return l.single(TokenColon, start)

	case '.':
		if l.peekN(1) == '.' && l.peekN(2) == '.' {
			l.advanceN(3)
			return l.token(TokenEllipsis, start)
		}
		return l.single(TokenDot, start)

	case '=':
		return l.either('=', TokenEQ, TokenAssign, start)
	case '!':
		return l.either('=', TokenNE, TokenNot, start)
	case '*':
		return l.either('=', TokenStarAssign, TokenStar, start)
	case '/':
		return l.either('=', TokenSlashAssign, TokenSlash, start)
	case '%':
		return l.either('=', TokenPercentAssign, TokenPercent, start)
	case '^':
		return l.either('=', TokenXorAssign, TokenBitXor, start)

	case '<':
		if l.peekN(1) == '<' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShlAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShl, start)
		}
		return l.either('=', TokenLE, TokenLT, start)

	case '>':
		if l.peekN(1) == '>' {
			if l.peekN(2) == '>' {
				if l.peekN(3) == '=' {
					l.advanceN(4)
					return l.token(TokenUShrAssign, start)
				}
				l.advanceN(3)
				return l.token(TokenUShr, start)
			}
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.token(TokenShrAssign, start)
			}
			l.advanceN(2)
			return l.token(TokenShr, start)
		}
		return l.either('=', TokenGE, TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}
		return l.either('=', TokenAndAssign, TokenBitAnd, start)

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOr, start)
		}
		return l.either('=', TokenOrAssign, TokenBitOr, start)

	case '+':
		if l.peekN(1) == '+' {
			l.advanceN(2)
			return l.token(TokenIncrement, start)
		}
		return l.either('=', TokenPlusAssign, TokenPlus, start)

	case '-':
		if l.peekN(1) == '-' {
			l.advanceN(2)
			return l.token(TokenDecrement, start)
		}
		return l.either('=', TokenMinusAssign, TokenMinus, start)
	}

	l.advanceRune()
	tok := l.token(TokenError, start)
	tok.Err = "illegal.char"
	return tok
}

func (l *Lexer) single(kind TokenKind, start Position) Token {
	l.advance()
	return l.token(kind, start)
}

// either scans a one-character operator, or a two-character one when the
// next byte is next.
func (l *Lexer) either(next byte, long, short TokenKind, start Position) Token {
	if l.peekN(1) == next {
		l.advanceN(2)
		return l.token(long, start)
	}
	return l.single(short, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func digitValue(ch byte, radix int) int {
	var d int
	switch {
	case ch >= '0' && ch <= '9':
		d = int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		d = int(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		d = int(ch-'A') + 10
	default:
		return -1
	}
	if d >= radix {
		return -1
	}
	return d
}

func isJavaLetter(r rune) bool {
	if r < utf8.RuneSelf {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$'
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Sc, r) || unicode.Is(unicode.Pc, r)
}

func isJavaLetterOrDigit(r rune) bool {
	if r < utf8.RuneSelf {
		return isJavaLetter(r) || (r >= '0' && r <= '9')
	}
	return isJavaLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
