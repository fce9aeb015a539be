package parser

func (p *Parser) block() *Node {
	p.enter()
	defer p.leave()

	pos := p.tok().Pos()
	p.accept(TokenLBrace)
	n := p.at(KindBlock, pos, p.blockStatements()...)
	for p.kind() == TokenCase || p.kind() == TokenDefault {
		n.AddChild(p.syntaxError(p.tok().Pos(), nil, "orphaned", p.kind().Display()))
		p.switchBlockStatementGroups()
	}
	p.accept(TokenRBrace)
	return p.toP(n)
}

func isIdentLike(k TokenKind) bool {
	return k == TokenIdent || k == TokenAssert || k == TokenEnum
}

// blockStatements parses statements and local declarations up to '}',
// 'case', 'default' or the end of input.
func (p *Parser) blockStatements() []*Node {
	lastErrPos := -1
	var stats []*Node
	for {
		pos := p.tok().Pos()
		switch k := p.kind(); k {
		case TokenRBrace, TokenCase, TokenDefault, TokenEOF:
			return stats

		case TokenLBrace, TokenIf, TokenFor, TokenWhile, TokenDo, TokenTry,
			TokenSwitch, TokenSynchronized, TokenReturn, TokenThrow, TokenBreak,
			TokenContinue, TokenSemicolon, TokenElse, TokenFinally, TokenCatch:
			stats = append(stats, p.statement())

		case TokenAt, TokenFinal:
			doc := p.tok().Doc
			mods := p.modifiersOpt(nil)
			if p.startsTypeDecl() {
				stats = append(stats, p.classOrInterfaceOrEnumDeclaration(mods, doc))
			} else {
				decl := p.localVarDecl(mods, p.parseType())
				p.accept(TokenSemicolon)
				stats = append(stats, p.toP(decl))
			}

		case TokenAbstract, TokenStrictfp, TokenInterface, TokenClass:
			doc := p.tok().Doc
			stats = append(stats, p.classOrInterfaceOrEnumDeclaration(p.modifiersOpt(nil), doc))

		case TokenEnum, TokenAssert:
			if k == TokenEnum && p.allows(FeatureEnum) {
				p.log.Error(pos, "local.enum")
				doc := p.tok().Doc
				stats = append(stats, p.classOrInterfaceOrEnumDeclaration(p.modifiersOpt(nil), doc))
			} else if k == TokenAssert && p.allows(FeatureAssert) {
				stats = append(stats, p.statement())
			} else {
				stats = append(stats, p.localOrExpressionStatement(pos))
			}

		default:
			stats = append(stats, p.localOrExpressionStatement(pos))
		}
		stats = append(stats, p.takeMissing()...)

		if p.offset() == lastErrPos {
			return stats
		}
		if p.offset() <= p.errorEndPos {
			p.skip(false, true, true, true)
			lastErrPos = p.offset()
		}
	}
}

// localOrExpressionStatement parses a term that may turn out to be the type
// of a local variable, the label of a statement, or an expression statement.
func (p *Parser) localOrExpressionStatement(pos Position) *Node {
	t, mode := p.term(ModeExpr | ModeType)
	switch {
	case p.kind() == TokenColon && t.Kind == KindIdentifier:
		p.next()
		n := p.at(KindLabeledStmt, pos, p.statement())
		n.Token = t.Token
		return p.toP(n)
	case mode&ModeType != 0 && isIdentLike(p.kind()):
		decl := p.localVarDecl(p.at(KindModifiers, NoPos), t)
		p.accept(TokenSemicolon)
		return p.toP(decl)
	}
	n := p.at(KindExprStmt, pos, p.checkExprStat(t))
	p.accept(TokenSemicolon)
	return p.toP(n)
}

func (p *Parser) localVarDecl(mods, typ *Node) *Node {
	start := typ.Pos()
	if mods.Pos().IsValid() {
		start = mods.Pos()
	}
	n := p.at(KindLocalVarDecl, start, mods, typ)
	p.variableDeclaratorsRest(n, p.ident(), false)
	return p.toP(n)
}

func (p *Parser) statement() *Node {
	p.enter()
	defer p.leave()

	pos := p.tok().Pos()
	switch p.kind() {
	case TokenLBrace:
		return p.block()

	case TokenIf:
		p.next()
		cond := p.parExpression()
		n := p.at(KindIfStmt, pos, cond, p.statement())
		if p.kind() == TokenElse {
			p.next()
			n.AddChild(p.statement())
		}
		return p.toP(n)

	case TokenFor:
		p.next()
		return p.forStatement(pos)

	case TokenWhile:
		p.next()
		cond := p.parExpression()
		return p.toP(p.at(KindWhileStmt, pos, cond, p.statement()))

	case TokenDo:
		p.next()
		body := p.statement()
		p.accept(TokenWhile)
		n := p.at(KindDoStmt, pos, body, p.parExpression())
		p.accept(TokenSemicolon)
		return p.toP(n)

	case TokenTry:
		p.next()
		n := p.at(KindTryStmt, pos, p.block())
		if p.kind() == TokenCatch || p.kind() == TokenFinally {
			for p.kind() == TokenCatch {
				n.AddChild(p.catchClause())
			}
			if p.kind() == TokenFinally {
				fpos := p.tok().Pos()
				p.next()
				n.AddChild(p.toP(p.at(KindFinallyClause, fpos, p.block())))
			}
		} else {
			p.log.Error(pos, "try.without.catch.or.finally")
		}
		return p.toP(n)

	case TokenSwitch:
		p.next()
		n := p.at(KindSwitchStmt, pos, p.parExpression())
		p.accept(TokenLBrace)
		n.Children = append(n.Children, p.switchBlockStatementGroups()...)
		p.accept(TokenRBrace)
		return p.toP(n)

	case TokenSynchronized:
		p.next()
		lock := p.parExpression()
		return p.toP(p.at(KindSynchronizedStmt, pos, lock, p.block()))

	case TokenReturn:
		p.next()
		n := p.at(KindReturnStmt, pos)
		if p.kind() != TokenSemicolon {
			n.AddChild(p.parseExpression())
		}
		p.accept(TokenSemicolon)
		return p.toP(n)

	case TokenThrow:
		p.next()
		n := p.at(KindThrowStmt, pos, p.parseExpression())
		p.accept(TokenSemicolon)
		return p.toP(n)

	case TokenBreak, TokenContinue:
		kind := KindBreakStmt
		if p.kind() == TokenContinue {
			kind = KindContinueStmt
		}
		p.next()
		n := p.at(kind, pos)
		if isIdentLike(p.kind()) {
			n.Token = p.ident()
		}
		p.accept(TokenSemicolon)
		return p.toP(n)

	case TokenSemicolon:
		p.next()
		return p.toP(p.at(KindEmptyStmt, pos))

	case TokenElse:
		return p.toP(p.at(KindExprStmt, pos, p.syntaxError(pos, nil, "else.without.if")))
	case TokenFinally:
		return p.toP(p.at(KindExprStmt, pos, p.syntaxError(pos, nil, "finally.without.try")))
	case TokenCatch:
		return p.toP(p.at(KindExprStmt, pos, p.syntaxError(pos, nil, "catch.without.try")))

	case TokenAssert:
		if p.allows(FeatureAssert) {
			p.next()
			n := p.at(KindAssertStmt, pos, p.parseExpression())
			if p.kind() == TokenColon {
				p.next()
				n.AddChild(p.parseExpression())
			}
			p.accept(TokenSemicolon)
			return p.toP(n)
		}
	}

	expr := p.parseExpression()
	if p.kind() == TokenColon && expr.Kind == KindIdentifier {
		p.next()
		n := p.at(KindLabeledStmt, pos, p.statement())
		n.Token = expr.Token
		return p.toP(n)
	}
	n := p.at(KindExprStmt, pos, p.checkExprStat(expr))
	p.accept(TokenSemicolon)
	return p.toP(n)
}

// forStatement parses a for loop after the 'for' keyword. A for-each loop is
// recognized when the init clause is a single uninitialized variable
// followed by ':'.
func (p *Parser) forStatement(pos Position) *Node {
	p.accept(TokenLParen)
	initPos := p.tok().Pos()
	var inits []*Node
	if p.kind() != TokenSemicolon {
		inits = p.forInit()
	}
	if len(inits) == 1 && inits[0].Kind == KindLocalVarDecl && p.kind() == TokenColon {
		vars := inits[0].ChildrenOfKind(KindVariableDeclarator)
		if len(vars) == 1 && len(vars[0].Children) == 0 {
			p.checkFeature(FeatureForeach, p.tok().Pos())
			p.accept(TokenColon)
			expr := p.parseExpression()
			p.accept(TokenRParen)
			return p.toP(p.at(KindEnhancedForStmt, pos, inits[0], expr, p.statement()))
		}
	}
	p.accept(TokenSemicolon)
	init := p.toP(p.at(KindForInit, initPos, inits...))
	var cond *Node
	if p.kind() != TokenSemicolon {
		cond = p.parseExpression()
	}
	p.accept(TokenSemicolon)
	update := p.at(KindForUpdate, p.tok().Pos())
	if p.kind() != TokenRParen {
		update.Children = p.forUpdate()
	}
	p.toP(update)
	p.accept(TokenRParen)
	return p.toP(p.at(KindForStmt, pos, init, cond, update, p.statement()))
}

func (p *Parser) forInit() []*Node {
	pos := p.tok().Pos()
	if p.kind() == TokenFinal || p.kind() == TokenAt {
		mods := p.optFinal(0)
		return []*Node{p.localVarDecl(mods, p.parseType())}
	}
	t, mode := p.term(ModeExpr | ModeType)
	if mode&ModeType != 0 && isIdentLike(p.kind()) {
		return []*Node{p.localVarDecl(p.modifiersOpt(nil), t)}
	}
	return p.moreStatementExpressions(pos, t)
}

func (p *Parser) forUpdate() []*Node {
	pos := p.tok().Pos()
	return p.moreStatementExpressions(pos, p.parseExpression())
}

// moreStatementExpressions parses the comma-separated rest of a statement
// expression list whose first expression is first.
func (p *Parser) moreStatementExpressions(pos Position, first *Node) []*Node {
	stats := []*Node{p.toP(p.at(KindExprStmt, pos, p.checkExprStat(first)))}
	for p.kind() == TokenComma {
		p.next()
		pos = p.tok().Pos()
		t := p.parseExpression()
		stats = append(stats, p.toP(p.at(KindExprStmt, pos, p.checkExprStat(t))))
	}
	return stats
}

func (p *Parser) catchClause() *Node {
	pos := p.tok().Pos()
	p.accept(TokenCatch)
	p.accept(TokenLParen)
	mods := p.optFinal(0)
	param := p.variableDeclaratorID(mods, p.qualident(), false)
	p.accept(TokenRParen)
	return p.toP(p.at(KindCatchClause, pos, param, p.block()))
}

func (p *Parser) switchBlockStatementGroups() []*Node {
	var cases []*Node
	for {
		pos := p.tok().Pos()
		switch p.kind() {
		case TokenCase, TokenDefault:
			tok := p.tok()
			p.next()
			c := p.at(KindSwitchCase, pos)
			c.Token = &tok
			if tok.Kind == TokenCase {
				c.AddChild(p.parseExpression())
			}
			p.accept(TokenColon)
			c.Children = append(c.Children, p.blockStatements()...)
			cases = append(cases, p.toP(c))
		case TokenRBrace, TokenEOF:
			return cases
		default:
			p.next()
			p.missingError(pos, "expected3",
				TokenCase.Display(), TokenDefault.Display(), TokenRBrace.Display())
		}
	}
}

// checkExprStat reports t if it may not stand alone as a statement. A term
// that already holds an error is wrapped without a second report.
func (p *Parser) checkExprStat(t *Node) *Node {
	if isLegalExprStatement(t) {
		return t
	}
	if len(t.Errors()) == 0 {
		p.log.Error(t.Pos(), "not.stmt")
	}
	return p.toP(p.errorNode(t.Pos(), "not.stmt", nil, t))
}

func isLegalExprStatement(t *Node) bool {
	switch t.Kind {
	case KindUnaryExpr:
		return t.Op == TokenIncrement || t.Op == TokenDecrement
	case KindPostfixExpr, KindAssignExpr, KindCompoundAssignExpr, KindCallExpr,
		KindNewExpr, KindError:
		return true
	}
	return false
}
