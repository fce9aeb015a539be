// Package parser implements an error-tolerant recursive-descent parser for
// Java 6 source code.
//
// # Overview
//
// Source text is split into tokens by a Lexer (or any TokenSource) and
// parsed in one pass into a tree of *Node values:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (AST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	                                        ┌─────────────┐
//	                                        │     Log     │
//	                                        │ diagnostics │
//	                                        └─────────────┘
//
// Expressions are parsed by a ladder of methods: assignment, conditional,
// binary operators by precedence climbing, and unary/primary terms. Each
// term is parsed in a Mode that says whether an expression, a type, or
// either is acceptable; this is how "(a) - b", "(int) -b" and
// "(List<String>) x" are told apart with one token of look-ahead.
//
// # Error Recovery
//
// Syntax errors never abort a parse. They are reported to the Log, and the
// malformed fragment becomes a KindError node holding whatever was parsed.
// The parser then skips to a token that can restart the enclosing
// construct. At most one error is reported per source position, and the
// parser always advances after reporting twice at the same token, so every
// input terminates.
//
// # Entry Points
//
//	p := parser.ParseCompilationUnit(strings.NewReader(src), parser.WithFile("Main.java"))
//	tree, err := p.Finish()
//	for _, d := range p.Diagnostics() {
//	    fmt.Println(d)
//	}
//
// ParseExpression, ParseType and ParseStatement parse the corresponding
// fragments. NewParser reads tokens from a caller-supplied TokenSource.
//
// # Language Level
//
// Grammar added after Java 1.4 (assert, enums, generics, varargs, for-each,
// static imports and annotations) is gated by Features. Using a disabled
// feature reports one error and enables it for the rest of the parse.
//
// # Thread Safety
//
// A Parser instance is not safe for concurrent use. Create separate
// instances for concurrent parsing of different files.
package parser
