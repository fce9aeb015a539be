package parser

import (
	"testing"
)

func TestLexerNewLexer(t *testing.T) {
	lexer := NewLexer([]byte("class Foo {}"), "Test.java")
	pos := lexer.Position()

	if pos.File != "Test.java" {
		t.Errorf("File = %q, want %q", pos.File, "Test.java")
	}
	if pos.Line != 1 {
		t.Errorf("Line = %d, want %d", pos.Line, 1)
	}
	if pos.Column != 1 {
		t.Errorf("Column = %d, want %d", pos.Column, 1)
	}
	if pos.Offset != 0 {
		t.Errorf("Offset = %d, want %d", pos.Offset, 0)
	}
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"class", TokenClass},
		{"public", TokenPublic},
		{"private", TokenPrivate},
		{"protected", TokenProtected},
		{"static", TokenStatic},
		{"final", TokenFinal},
		{"abstract", TokenAbstract},
		{"interface", TokenInterface},
		{"extends", TokenExtends},
		{"implements", TokenImplements},
		{"void", TokenVoid},
		{"int", TokenInt},
		{"boolean", TokenBoolean},
		{"if", TokenIf},
		{"else", TokenElse},
		{"for", TokenFor},
		{"while", TokenWhile},
		{"return", TokenReturn},
		{"new", TokenNew},
		{"this", TokenThis},
		{"super", TokenSuper},
		{"true", TokenTrue},
		{"false", TokenFalse},
		{"null", TokenNull},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerIdentifiers(t *testing.T) {
	tests := []string{
		"foo",
		"Bar",
		"_private",
		"$special",
		"camelCase",
		"SCREAMING_CASE",
		"with123Numbers",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lexer := NewLexer([]byte(input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != TokenIdent {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenIdent)
			}
			if tok.Literal != input {
				t.Errorf("Literal = %q, want %q", tok.Literal, input)
			}
		})
	}
}

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"(", TokenLParen},
		{")", TokenRParen},
		{"{", TokenLBrace},
		{"}", TokenRBrace},
		{"[", TokenLBracket},
		{"]", TokenRBracket},
		{";", TokenSemicolon},
		{",", TokenComma},
		{".", TokenDot},
		{"...", TokenEllipsis},
		{"@", TokenAt},
		{":", TokenColon},
		{"=", TokenAssign},
		{"==", TokenEQ},
		{"!=", TokenNE},
		{"<", TokenLT},
		{"<=", TokenLE},
		{">", TokenGT},
		{">=", TokenGE},
		{"&&", TokenAnd},
		{"||", TokenOr},
		{"!", TokenNot},
		{"&", TokenBitAnd},
		{"|", TokenBitOr},
		{"^", TokenBitXor},
		{"~", TokenBitNot},
		{"<<", TokenShl},
		{">>", TokenShr},
		{">>>", TokenUShr},
		{"+", TokenPlus},
		{"-", TokenMinus},
		{"*", TokenStar},
		{"/", TokenSlash},
		{"%", TokenPercent},
		{"++", TokenIncrement},
		{"--", TokenDecrement},
		{"?", TokenQuestion},
		{"+=", TokenPlusAssign},
		{"-=", TokenMinusAssign},
		{"*=", TokenStarAssign},
		{"/=", TokenSlashAssign},
		{"%=", TokenPercentAssign},
		{"&=", TokenAndAssign},
		{"|=", TokenOrAssign},
		{"^=", TokenXorAssign},
		{"<<=", TokenShlAssign},
		{">>=", TokenShrAssign},
		{">>>=", TokenUShrAssign},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
		value string
		radix int
		err   string
	}{
		{"0", TokenIntLiteral, "0", 8, ""},
		{"123", TokenIntLiteral, "123", 10, ""},
		{"123L", TokenLongLiteral, "123", 10, ""},
		{"017", TokenIntLiteral, "17", 8, ""},
		{"0x1F", TokenIntLiteral, "1F", 16, ""},
		{"0xFFl", TokenLongLiteral, "FF", 16, ""},
		{"3.14", TokenDoubleLiteral, "3.14", 10, ""},
		{"3.14f", TokenFloatLiteral, "3.14", 10, ""},
		{"3.14d", TokenDoubleLiteral, "3.14", 10, ""},
		{"1e10", TokenDoubleLiteral, "1e10", 10, ""},
		{"1.5e-10", TokenDoubleLiteral, "1.5e-10", 10, ""},
		{".5", TokenDoubleLiteral, ".5", 10, ""},
		{"2f", TokenFloatLiteral, "2", 10, ""},
		{"0x1p3", TokenDoubleLiteral, "0x1p3", 16, ""},
		{"09", TokenIntLiteral, "9", 8, "illegal.char"},
		{"1e", TokenDoubleLiteral, "1e", 10, "malformed.fp.lit"},
		{"0x", TokenIntLiteral, "", 16, "invalid.hex.number"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
			if tok.Value != tt.value {
				t.Errorf("Value = %q, want %q", tok.Value, tt.value)
			}
			if tok.Radix != tt.radix {
				t.Errorf("Radix = %d, want %d", tok.Radix, tt.radix)
			}
			if tok.Err != tt.err {
				t.Errorf("Err = %q, want %q", tok.Err, tt.err)
			}
		})
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input string
		value string
		err   string
	}{
		{`"hello"`, "hello", ""},
		{`"with \"escapes\""`, `with "escapes"`, ""},
		{`"a\tb"`, "a\tb", ""},
		{`"A"`, "A", ""},
		{`"\uuu0041"`, "A", ""},
		{`"\101"`, "A", ""},
		{`"\0"`, "\x00", ""},
		{`""`, "", ""},
		{`"abc`, "abc", "unclosed.str.lit"},
		{`"a\qb"`, "ab", "illegal.esc.char"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != TokenStringLiteral {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenStringLiteral)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
			if tok.Err != tt.err {
				t.Errorf("Err = %q, want %q", tok.Err, tt.err)
			}
			if tt.err == "" && tok.Value != tt.value {
				t.Errorf("Value = %q, want %q", tok.Value, tt.value)
			}
		})
	}
}

func TestLexerStringStopsAtNewline(t *testing.T) {
	lexer := NewLexer([]byte("\"abc\nx"), "test.java")
	tok := lexer.NextToken()
	if tok.Err != "unclosed.str.lit" {
		t.Errorf("Err = %q, want unclosed.str.lit", tok.Err)
	}
	if tok.Literal != `"abc` {
		t.Errorf("Literal = %q", tok.Literal)
	}
}

func TestLexerCharLiterals(t *testing.T) {
	tests := []struct {
		input string
		value string
		err   string
	}{
		{`'a'`, "a", ""},
		{`'\n'`, "\n", ""},
		{`'\''`, "'", ""},
		{`'\\'`, `\`, ""},
		{`''`, "", "empty.char.lit"},
		{`'a`, "a", "unclosed.char.lit"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java")
			tok := lexer.NextToken()
			if tok.Kind != TokenCharLiteral {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenCharLiteral)
			}
			if tok.Value != tt.value {
				t.Errorf("Value = %q, want %q", tok.Value, tt.value)
			}
			if tok.Err != tt.err {
				t.Errorf("Err = %q, want %q", tok.Err, tt.err)
			}
		})
	}
}

func TestLexerComments(t *testing.T) {
	t.Run("line comment", func(t *testing.T) {
		lexer := NewLexer([]byte("// this is a comment\nx"), "test.java")
		tok := lexer.NextToken()
		if tok.Kind != TokenLineComment {
			t.Errorf("Kind = %v, want %v", tok.Kind, TokenLineComment)
		}
		if tok.Literal != "// this is a comment" {
			t.Errorf("Literal = %q", tok.Literal)
		}
	})

	t.Run("block comment", func(t *testing.T) {
		lexer := NewLexer([]byte("/* block comment */"), "test.java")
		tok := lexer.NextToken()
		if tok.Kind != TokenComment {
			t.Errorf("Kind = %v, want %v", tok.Kind, TokenComment)
		}
		if tok.Literal != "/* block comment */" {
			t.Errorf("Literal = %q", tok.Literal)
		}
		if tok.Err != "" {
			t.Errorf("Err = %q", tok.Err)
		}
	})

	t.Run("unclosed block comment", func(t *testing.T) {
		lexer := NewLexer([]byte("/* line1\n   line2"), "test.java")
		tok := lexer.NextToken()
		if tok.Err != "unclosed.comment" {
			t.Errorf("Err = %q, want unclosed.comment", tok.Err)
		}
		if next := lexer.NextToken(); next.Kind != TokenEOF {
			t.Errorf("after comment: %v, want EOF", next.Kind)
		}
	})
}

func TestIsDocComment(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/** doc */", true},
		{"/**/", false},
		{"/* plain */", false},
		{"// line", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewLexer([]byte(tt.input), "test.java").NextToken()
			if got := IsDocComment(tok); got != tt.want {
				t.Errorf("IsDocComment(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLexerWhitespace(t *testing.T) {
	lexer := NewLexer([]byte("   \t\n\f  "), "test.java")
	tok := lexer.NextToken()
	if tok.Kind != TokenWhitespace {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenWhitespace)
	}
	if tok := lexer.NextToken(); tok.Kind != TokenEOF {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenEOF)
	}
}

func TestLexerEOF(t *testing.T) {
	lexer := NewLexer([]byte(""), "test.java")
	for i := 0; i < 3; i++ {
		if tok := lexer.NextToken(); tok.Kind != TokenEOF {
			t.Errorf("call %d: Kind = %v, want %v", i, tok.Kind, TokenEOF)
		}
	}
}

func TestLexerPositionTracking(t *testing.T) {
	lexer := NewLexer([]byte("foo\nbar"), "test.java")

	tok1 := lexer.NextToken()
	if tok1.Span.Start.Line != 1 || tok1.Span.Start.Column != 1 {
		t.Errorf("First token at (%d, %d), want (1, 1)", tok1.Span.Start.Line, tok1.Span.Start.Column)
	}

	lexer.NextToken() // newline

	tok2 := lexer.NextToken()
	if tok2.Span.Start.Line != 2 || tok2.Span.Start.Column != 1 {
		t.Errorf("Second token at (%d, %d), want (2, 1)", tok2.Span.Start.Line, tok2.Span.Start.Column)
	}
	if tok2.Span.Start.Offset != 4 {
		t.Errorf("Second token offset = %d, want 4", tok2.Span.Start.Offset)
	}
}

func TestLexerUnicodeIdentifier(t *testing.T) {
	lexer := NewLexer([]byte("café x"), "test.java")
	tok := lexer.NextToken()
	if tok.Kind != TokenIdent || tok.Literal != "café" {
		t.Fatalf("got %v %q, want identifier café", tok.Kind, tok.Literal)
	}
	lexer.NextToken()
	x := lexer.NextToken()
	if x.Span.Start.Column != 6 || x.Span.Start.Offset != 6 {
		t.Errorf("x at column %d offset %d, want column 6 offset 6", x.Span.Start.Column, x.Span.Start.Offset)
	}
}

func TestLexerSequence(t *testing.T) {
	input := "public class Foo { }"
	lexer := NewLexer([]byte(input), "test.java")

	expected := []TokenKind{
		TokenPublic,
		TokenWhitespace,
		TokenClass,
		TokenWhitespace,
		TokenIdent,
		TokenWhitespace,
		TokenLBrace,
		TokenWhitespace,
		TokenRBrace,
		TokenEOF,
	}

	for i, want := range expected {
		tok := lexer.NextToken()
		if tok.Kind != want {
			t.Errorf("Token %d: Kind = %v, want %v", i, tok.Kind, want)
		}
	}
}

func TestLexerUnknownCharacter(t *testing.T) {
	lexer := NewLexer([]byte("#"), "test.java")
	tok := lexer.NextToken()
	if tok.Kind != TokenError {
		t.Errorf("Kind = %v, want %v", tok.Kind, TokenError)
	}
	if tok.Err != "illegal.char" {
		t.Errorf("Err = %q, want illegal.char", tok.Err)
	}
}
