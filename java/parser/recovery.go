package parser

// skip discards tokens until one that can plausibly restart parsing. A ';'
// is consumed; every other stop token is left current.
func (p *Parser) skip(stopAtImport, stopAtMemberDecl, stopAtIdentifier, stopAtStatement bool) {
	for {
		switch k := p.kind(); k {
		case TokenSemicolon:
			p.next()
			return
		case TokenPublic, TokenFinal, TokenAbstract, TokenAt, TokenEOF,
			TokenClass, TokenInterface, TokenEnum:
			return
		case TokenImport:
			if stopAtImport {
				return
			}
		case TokenLBrace, TokenRBrace, TokenPrivate, TokenProtected, TokenStatic,
			TokenTransient, TokenNative, TokenVolatile, TokenSynchronized,
			TokenStrictfp, TokenLT, TokenVoid:
			if stopAtMemberDecl {
				return
			}
		case TokenIdent:
			if stopAtIdentifier {
				return
			}
		case TokenCase, TokenDefault, TokenIf, TokenFor, TokenWhile, TokenDo,
			TokenTry, TokenSwitch, TokenReturn, TokenThrow, TokenBreak,
			TokenContinue, TokenElse, TokenFinally, TokenCatch:
			if stopAtStatement {
				return
			}
		default:
			if k.IsPrimitive() && stopAtMemberDecl {
				return
			}
		}
		p.next()
	}
}

// syntaxError reports key at pos and returns an erroneous node wrapping errs.
func (p *Parser) syntaxError(pos Position, errs []*Node, key string, args ...any) *Node {
	n := p.errorNode(pos, key, args, errs...)
	p.setErrorEndPos(pos.Offset)
	p.reportError(pos, key, args...)
	return p.toP(n)
}

// reportError logs key at pos unless an error was already reported at or
// after pos, and returns the key it logged, if any. If the parser is stuck
// on the token of the previous error, it advances one token so that every
// caller makes progress.
func (p *Parser) reportError(pos Position, key string, args ...any) (logged string) {
	if p.kind() == TokenEOF {
		if !p.eofReported {
			p.eofReported = true
			p.log.Error(pos, "premature.eof")
			logged = "premature.eof"
		}
	} else if pos.Offset > p.errPos || !pos.IsValid() {
		p.log.Error(pos, key, args...)
		logged = key
	}
	if pos.Offset > p.errPos {
		p.errPos = pos.Offset
	}
	if p.offset() == p.errorPos {
		p.next()
	}
	p.errorPos = p.offset()
	return logged
}

// accept consumes a token of the given kind or reports it as expected.
func (p *Parser) accept(kind TokenKind) {
	if p.kind() == kind {
		p.next()
		return
	}
	p.setErrorEndPos(p.offset())
	pos := p.prevEnd()
	switch key := p.reportError(pos, "expected", kind.Display()); key {
	case "":
	case "expected":
		p.markMissing(pos, key, kind.Display())
	default:
		p.markMissing(pos, key)
	}
}

func (p *Parser) setErrorEndPos(offset int) {
	if offset > p.errorEndPos {
		p.errorEndPos = offset
	}
}

// illegal reports an illegal start of an expression or, outside expression
// mode, of a type.
func (p *Parser) illegal(mode Mode) *Node {
	return p.illegalAt(p.tok().Pos(), mode)
}

func (p *Parser) illegalAt(pos Position, mode Mode) *Node {
	p.setErrorEndPos(pos.Offset)
	if mode&ModeExpr != 0 {
		return p.syntaxError(pos, nil, "illegal.start.of.expr")
	}
	return p.syntaxError(pos, nil, "illegal.start.of.type")
}

// checkNoMods reports the first modifier in flags.
func (p *Parser) checkNoMods(flags Modifier) {
	if flags == 0 {
		return
	}
	for _, m := range modifierOrder {
		if flags&m.flag != 0 {
			p.log.Error(p.tok().Pos(), "mod.not.allowed.here", m.name)
			return
		}
	}
}

// missingError reports key at pos and leaves a marker in place of the node
// the caller could not build.
func (p *Parser) missingError(pos Position, key string, args ...any) {
	p.setErrorEndPos(pos.Offset)
	switch logged := p.reportError(pos, key, args...); logged {
	case "":
	case key:
		p.markMissing(pos, key, args...)
	default:
		p.markMissing(pos, logged)
	}
}

// markMissing records an erroneous node for a problem that has no node of
// its own, such as a missing token. The nearest enclosing compilation unit,
// class body or statement list adopts it.
func (p *Parser) markMissing(pos Position, key string, args ...any) {
	n := p.errorNode(pos, key, args)
	n.Span.End = pos
	p.missing = append(p.missing, n)
}

func (p *Parser) takeMissing() []*Node {
	m := p.missing
	p.missing = nil
	return m
}

func (p *Parser) adoptMissing(n *Node) {
	n.Children = append(n.Children, p.takeMissing()...)
}

// withMissing wraps n in an erroneous node when markers are still pending
// at the end of an expression, type or statement parse.
func (p *Parser) withMissing(n *Node) *Node {
	if len(p.missing) == 0 {
		return n
	}
	e := p.at(KindError, n.Pos(), n)
	e.Error = p.missing[0].Error
	p.adoptMissing(e)
	return p.toP(e)
}

// errorName stands in for a missing identifier.
func errorName(pos Position) *Token {
	return &Token{Kind: TokenError, Span: Span{Start: pos, End: pos}, Literal: "<error>"}
}

// ident consumes an identifier. 'assert' and 'enum' are accepted as
// identifiers, with a warning, only when the matching feature is off.
func (p *Parser) ident() *Token {
	tok := p.tok()
	switch tok.Kind {
	case TokenIdent:
		p.next()
		return &tok
	case TokenAssert, TokenEnum:
		f, key := FeatureAssert, "assert.as.identifier"
		if tok.Kind == TokenEnum {
			f, key = FeatureEnum, "enum.as.identifier"
		}
		p.next()
		if p.allows(f) {
			p.log.Error(tok.Pos(), key)
			p.markMissing(tok.Pos(), key)
			return errorName(tok.Pos())
		}
		p.log.Warning(tok.Pos(), key)
		tok.Kind = TokenIdent
		return &tok
	}
	p.accept(TokenIdent)
	return errorName(tok.Pos())
}

func (p *Parser) identNode() *Node {
	pos := p.tok().Pos()
	n := p.at(KindIdentifier, pos)
	n.Token = p.ident()
	return p.toP(n)
}

// qualident parses Ident { "." Ident }.
func (p *Parser) qualident() *Node {
	t := p.identNode()
	for p.kind() == TokenDot {
		p.next()
		t = p.toP(p.at(KindFieldAccess, t.Pos(), t, p.identNode()))
	}
	return t
}
