package parser

// Mode says which syntactic categories the next term may belong to. A term
// is parsed in a set of modes and narrows the set as it sees tokens that
// only one category allows.
type Mode uint8

const (
	ModeExpr     Mode = 1 << iota // an expression
	ModeType                      // a type
	ModeNoParams                  // a type that may not take type arguments
	ModeTypeArg                   // a type argument, which may be a wildcard
)

// Binary operator precedences, lowest first.
const (
	precNone    = -1
	precOr      = 4
	precAnd     = 5
	precBitOr   = 6
	precBitXor  = 7
	precBitAnd  = 8
	precEquals  = 9
	precOrdered = 10
	precShift   = 11
	precAdd     = 12
	precMul     = 13
)

func prec(k TokenKind) int {
	switch k {
	case TokenOr:
		return precOr
	case TokenAnd:
		return precAnd
	case TokenBitOr:
		return precBitOr
	case TokenBitXor:
		return precBitXor
	case TokenBitAnd:
		return precBitAnd
	case TokenEQ, TokenNE:
		return precEquals
	case TokenLT, TokenGT, TokenLE, TokenGE, TokenInstanceof:
		return precOrdered
	case TokenShl, TokenShr, TokenUShr:
		return precShift
	case TokenPlus, TokenMinus:
		return precAdd
	case TokenStar, TokenSlash, TokenPercent:
		return precMul
	}
	return precNone
}

func (p *Parser) parseExpression() *Node {
	t, _ := p.term(ModeExpr)
	return t
}

func (p *Parser) parseType() *Node {
	t, _ := p.term(ModeType)
	return t
}

// term parses an assignment-level expression or a type.
func (p *Parser) term(mode Mode) (*Node, Mode) {
	t, mode := p.term1(mode)
	if mode&ModeExpr != 0 && p.kind().IsAssignOp() {
		return p.termRest(t), ModeExpr
	}
	return t, mode
}

// termRest parses the right-hand side of an assignment whose target is t.
// Assignment is right-associative.
func (p *Parser) termRest(t *Node) *Node {
	op := p.kind()
	if !op.IsAssignOp() {
		return t
	}
	p.enter()
	defer p.leave()
	p.next()
	rhs := p.parseExpression()
	if op == TokenAssign {
		return p.toP(p.at(KindAssignExpr, t.Pos(), t, rhs))
	}
	n := p.at(KindCompoundAssignExpr, t.Pos(), t, rhs)
	n.Op = op
	return p.toP(n)
}

// term1 parses a conditional expression.
func (p *Parser) term1(mode Mode) (*Node, Mode) {
	t, mode := p.term2(mode)
	if mode&ModeExpr != 0 && p.kind() == TokenQuestion {
		return p.term1Rest(t), ModeExpr
	}
	return t, mode
}

func (p *Parser) term1Rest(t *Node) *Node {
	if p.kind() != TokenQuestion {
		return t
	}
	p.enter()
	defer p.leave()
	p.next()
	then := p.parseExpression()
	p.accept(TokenColon)
	els, _ := p.term1(ModeExpr)
	return p.toP(p.at(KindTernaryExpr, t.Pos(), t, then, els))
}

// term2 parses a binary expression.
func (p *Parser) term2(mode Mode) (*Node, Mode) {
	t, mode := p.term3(mode)
	if mode&ModeExpr != 0 && prec(p.kind()) >= precOr {
		return p.term2Rest(t, precOr), ModeExpr
	}
	return t, mode
}

// term2Rest parses the operators following the first operand t by
// precedence climbing. The operand and operator stacks are shared with
// nested calls; each call works above the depth it found them at.
func (p *Parser) term2Rest(t *Node, minprec int) *Node {
	odBase := len(p.odStack)
	opBase := len(p.opStack)
	p.odStack = append(p.odStack, t)

	topOp := TokenError
	for prec(p.kind()) >= minprec {
		p.opStack = append(p.opStack, topOp)
		topOp = p.kind()
		p.next()
		var od *Node
		if topOp == TokenInstanceof {
			od = p.parseType()
		} else {
			od, _ = p.term3(ModeExpr)
		}
		p.odStack = append(p.odStack, od)
		for len(p.opStack) > opBase && prec(topOp) >= prec(p.kind()) {
			n := len(p.odStack)
			p.odStack[n-2] = p.makeOp(topOp, p.odStack[n-2], p.odStack[n-1])
			p.odStack[n-1] = nil
			p.odStack = p.odStack[:n-1]
			topOp = p.opStack[len(p.opStack)-1]
			p.opStack = p.opStack[:len(p.opStack)-1]
		}
	}

	t = p.odStack[odBase]
	clear(p.odStack[odBase:])
	p.odStack = p.odStack[:odBase]
	p.opStack = p.opStack[:opBase]

	if t.Kind == KindBinaryExpr && t.Op == TokenPlus {
		if s, ok := foldStrings(t); ok {
			tok := &Token{
				Kind:    TokenStringLiteral,
				Span:    Span{Start: t.Pos(), End: p.prevEnd()},
				Literal: QuoteString(s),
				Value:   s,
			}
			lit := p.at(KindLiteral, t.Pos())
			lit.Token = tok
			lit.Value = s
			t = p.toP(lit)
		}
	}
	return t
}

func (p *Parser) makeOp(op TokenKind, lhs, rhs *Node) *Node {
	if op == TokenInstanceof {
		return p.toP(p.at(KindInstanceofExpr, lhs.Pos(), lhs, rhs))
	}
	n := p.at(KindBinaryExpr, lhs.Pos(), lhs, rhs)
	n.Op = op
	return p.toP(n)
}

// startsCastOperand reports whether a token can begin the operand of a cast
// to a reference type. '+' and '-' are excluded: "(a) - b" is a subtraction.
func startsCastOperand(k TokenKind) bool {
	switch k {
	case TokenNot, TokenBitNot, TokenLParen, TokenThis, TokenSuper, TokenNew,
		TokenIdent, TokenAssert, TokenEnum, TokenVoid:
		return true
	}
	return k.IsLiteral() || k.IsPrimitive()
}

// term3 parses a unary expression, a primary with its selectors, or a type.
func (p *Parser) term3(mode Mode) (*Node, Mode) {
	p.enter()
	defer p.leave()

	pos := p.tok().Pos()
	var t *Node
	typeArgs, mode := p.typeArgumentsOpt(mode, ModeExpr)

	switch k := p.kind(); {
	case k == TokenQuestion:
		if mode&ModeType != 0 && mode&(ModeTypeArg|ModeNoParams) == ModeTypeArg {
			return p.typeArgument(), ModeType
		}
		return p.illegal(mode), mode

	case k == TokenIncrement || k == TokenDecrement || k == TokenNot ||
		k == TokenBitNot || k == TokenPlus || k == TokenMinus:
		if typeArgs != nil || mode&ModeExpr == 0 {
			return p.illegal(mode), mode
		}
		p.next()
		if k == TokenMinus && (p.kind() == TokenIntLiteral || p.kind() == TokenLongLiteral) && p.tok().Radix == 10 {
			t = p.literal(pos, "-")
			mode = ModeExpr
			break
		}
		operand, _ := p.term3(ModeExpr)
		u := p.at(KindUnaryExpr, pos, operand)
		u.Op = k
		return p.toP(u), ModeExpr

	case k == TokenLParen:
		if typeArgs != nil || mode&ModeExpr == 0 {
			return p.illegal(mode), mode
		}
		p.next()
		t, mode = p.term3(ModeExpr | ModeType | ModeNoParams)
		if mode&ModeType != 0 && p.kind() == TokenLT {
			// Could be a generic cast or a '<' comparison.
			ltPos := p.tok().Pos()
			p.next()
			var arg *Node
			arg, mode = p.term3(mode&(ModeExpr|ModeType) | ModeTypeArg)
			if mode&ModeType != 0 && (p.kind() == TokenComma || p.kind() == TokenGT) {
				mode = ModeType
				pt := p.at(KindParameterizedType, t.Pos(), t, arg)
				for p.kind() == TokenComma {
					p.next()
					pt.AddChild(p.typeArgument())
				}
				p.accept(TokenGT)
				p.checkFeature(FeatureGenerics, ltPos)
				t = p.bracketsOpt(p.toP(pt))
			} else if mode&ModeExpr != 0 {
				mode = ModeExpr
				lt := p.at(KindBinaryExpr, t.Pos(), t, p.term2Rest(arg, precShift))
				lt.Op = TokenLT
				t = p.termRest(p.term1Rest(p.term2Rest(p.toP(lt), precOr)))
			} else {
				p.accept(TokenGT)
			}
		} else {
			rest := p.termRest(p.term1Rest(p.term2Rest(t, precOr)))
			if rest != t {
				// Operators were consumed, so the contents are not a type.
				mode = ModeExpr
			}
			t = rest
		}
		p.accept(TokenRParen)
		inner := mode
		mode = ModeExpr
		if inner&ModeExpr == 0 || inner&ModeType != 0 && startsCastOperand(p.kind()) {
			operand, _ := p.term3(ModeExpr)
			return p.toP(p.at(KindCastExpr, pos, t, operand)), ModeExpr
		}
		t = p.toP(p.at(KindParenExpr, pos, t))

	case k == TokenThis:
		if mode&ModeExpr == 0 {
			return p.illegal(mode), mode
		}
		mode = ModeExpr
		t = p.leaf(KindThis)
		if typeArgs == nil {
			t, mode = p.argumentsOpt(nil, t, mode)
		} else {
			t = p.arguments(typeArgs, t)
		}
		typeArgs = nil

	case k == TokenSuper:
		if mode&ModeExpr == 0 {
			return p.illegal(mode), mode
		}
		mode = ModeExpr
		t = p.superSuffix(typeArgs, p.leaf(KindSuper))
		typeArgs = nil

	case k.IsLiteral():
		if typeArgs != nil || mode&ModeExpr == 0 {
			return p.illegal(mode), mode
		}
		mode = ModeExpr
		t = p.literal(pos, "")

	case k == TokenNew:
		if typeArgs != nil || mode&ModeExpr == 0 {
			return p.illegal(mode), mode
		}
		mode = ModeExpr
		p.next()
		if p.kind() == TokenLT {
			typeArgs = p.typeArguments(mode)
		}
		t = p.creator(pos, typeArgs)
		typeArgs = nil

	case k == TokenIdent || k == TokenAssert || k == TokenEnum:
		if typeArgs != nil {
			return p.illegal(mode), mode
		}
		t, mode = p.identSelectors(mode)

	case k.IsPrimitive():
		if typeArgs != nil {
			p.illegal(mode)
		}
		t, mode = p.bracketsSuffix(p.bracketsOpt(p.leaf(KindPrimitiveType)), mode)

	case k == TokenVoid:
		if typeArgs != nil {
			p.illegal(mode)
		}
		if mode&ModeExpr == 0 {
			return p.illegal(mode), mode
		}
		void := p.leaf(KindPrimitiveType)
		if p.kind() != TokenDot {
			return p.illegalAt(pos, mode), mode
		}
		t, mode = p.bracketsSuffix(void, mode)

	default:
		return p.illegal(mode), mode
	}

	if typeArgs != nil {
		p.illegal(mode)
	}
	return p.selectors(t, mode)
}

// identSelectors parses a qualified name and whatever selector ends it: a
// call, an array access, an array type, or one of ".class", ".this",
// ".super" and ".new".
func (p *Parser) identSelectors(mode Mode) (*Node, Mode) {
	var typeArgs *Node
	t := p.identNode()
loop:
	for {
		switch p.kind() {
		case TokenLBracket:
			p.next()
			if p.kind() == TokenRBracket {
				p.next()
				t = p.toP(p.at(KindArrayType, t.Pos(), p.bracketsOpt(t)))
				t, mode = p.bracketsSuffix(t, mode)
			} else {
				if mode&ModeExpr != 0 {
					mode = ModeExpr
					t = p.at(KindArrayAccess, t.Pos(), t, p.parseExpression())
				}
				p.accept(TokenRBracket)
				t = p.toP(t)
			}
			break loop

		case TokenLParen:
			if mode&ModeExpr != 0 {
				mode = ModeExpr
				t = p.arguments(typeArgs, t)
				typeArgs = nil
			}
			break loop

		case TokenDot:
			p.next()
			typeArgs, mode = p.typeArgumentsOpt(mode, ModeExpr)
			if mode&ModeExpr != 0 {
				switch p.kind() {
				case TokenClass:
					if typeArgs != nil {
						return p.illegal(mode), mode
					}
					mode = ModeExpr
					p.next()
					t = p.toP(p.at(KindClassLiteral, t.Pos(), t))
					break loop
				case TokenThis:
					if typeArgs != nil {
						return p.illegal(mode), mode
					}
					mode = ModeExpr
					t = p.toP(p.at(KindFieldAccess, t.Pos(), t, p.leaf(KindThis)))
					break loop
				case TokenSuper:
					mode = ModeExpr
					t = p.toP(p.at(KindFieldAccess, t.Pos(), t, p.leaf(KindSuper)))
					t = p.superSuffix(typeArgs, t)
					typeArgs = nil
					break loop
				case TokenNew:
					if typeArgs != nil {
						return p.illegal(mode), mode
					}
					mode = ModeExpr
					newPos := p.tok().Pos()
					p.next()
					if p.kind() == TokenLT {
						typeArgs = p.typeArguments(mode)
					}
					t = p.innerCreator(newPos, typeArgs, t)
					typeArgs = nil
					break loop
				}
			}
			t = p.toP(p.at(KindFieldAccess, t.Pos(), t, p.identNode()))

		default:
			break loop
		}
	}
	if typeArgs != nil {
		p.illegal(mode)
	}
	return p.typeArgumentsOn(t, mode)
}

// selectors parses the array accesses, field accesses, method calls and
// postfix operators following a primary.
func (p *Parser) selectors(t *Node, mode Mode) (*Node, Mode) {
	for {
		if p.kind() == TokenLBracket {
			p.next()
			if mode&ModeType != 0 && p.kind() == TokenRBracket {
				p.next()
				t = p.bracketsOpt(t)
				return p.toP(p.at(KindArrayType, t.Pos(), t)), ModeType
			}
			if mode&ModeExpr != 0 {
				mode = ModeExpr
				t = p.at(KindArrayAccess, t.Pos(), t, p.parseExpression())
			}
			p.accept(TokenRBracket)
			t = p.toP(t)
		} else if p.kind() == TokenDot {
			p.next()
			var typeArgs *Node
			typeArgs, mode = p.typeArgumentsOpt(mode, ModeExpr)
			switch {
			case p.kind() == TokenSuper && mode&ModeExpr != 0:
				mode = ModeExpr
				t = p.toP(p.at(KindFieldAccess, t.Pos(), t, p.leaf(KindSuper)))
				t = p.arguments(typeArgs, t)
			case p.kind() == TokenNew && mode&ModeExpr != 0:
				if typeArgs != nil {
					return p.illegal(mode), mode
				}
				mode = ModeExpr
				newPos := p.tok().Pos()
				p.next()
				if p.kind() == TokenLT {
					typeArgs = p.typeArguments(mode)
				}
				t = p.innerCreator(newPos, typeArgs, t)
			default:
				t = p.toP(p.at(KindFieldAccess, t.Pos(), t, p.identNode()))
				t, mode = p.typeArgumentsOn(t, mode)
				t, mode = p.argumentsOpt(typeArgs, t, mode)
			}
		} else {
			break
		}
	}
	for (p.kind() == TokenIncrement || p.kind() == TokenDecrement) && mode&ModeExpr != 0 {
		mode = ModeExpr
		n := p.at(KindPostfixExpr, t.Pos(), t)
		n.Op = p.kind()
		p.next()
		t = p.toP(n)
	}
	return p.toP(t), mode
}

// superSuffix parses what follows 'super': arguments, or a member access.
func (p *Parser) superSuffix(typeArgs, t *Node) *Node {
	if p.kind() == TokenLParen || typeArgs != nil {
		return p.arguments(typeArgs, t)
	}
	p.accept(TokenDot)
	var ta *Node
	if p.kind() == TokenLT {
		ta = p.typeArguments(ModeExpr)
	}
	t = p.toP(p.at(KindFieldAccess, t.Pos(), t, p.identNode()))
	t, _ = p.argumentsOpt(ta, t, ModeExpr)
	return t
}

// argumentsOpt turns t into a call if an argument list follows.
func (p *Parser) argumentsOpt(typeArgs, t *Node, mode Mode) (*Node, Mode) {
	if mode&ModeExpr != 0 && p.kind() == TokenLParen || typeArgs != nil {
		return p.arguments(typeArgs, t), ModeExpr
	}
	return t, mode
}

// arguments parses an argument list and returns a call of t.
func (p *Parser) arguments(typeArgs, t *Node) *Node {
	args := p.argumentList()
	call := p.at(KindCallExpr, t.Pos(), typeArgs, t, args)
	return p.toP(call)
}

func (p *Parser) argumentList() *Node {
	n := p.at(KindArguments, p.tok().Pos())
	if p.kind() != TokenLParen {
		p.missingError(p.tok().Pos(), "expected", TokenLParen.Display())
		return n
	}
	p.next()
	if p.kind() != TokenRParen {
		n.AddChild(p.parseExpression())
		for p.kind() == TokenComma {
			p.next()
			n.AddChild(p.parseExpression())
		}
	}
	p.accept(TokenRParen)
	return p.toP(n)
}

// typeArgumentsOpt parses type arguments at the start of a term, as in
// "<T>foo()". They are allowed only in useMode.
func (p *Parser) typeArgumentsOpt(mode, useMode Mode) (*Node, Mode) {
	if p.kind() != TokenLT {
		return nil, mode
	}
	p.checkFeature(FeatureGenerics, p.tok().Pos())
	if mode&useMode == 0 || mode&ModeNoParams != 0 {
		p.illegal(mode)
	}
	return p.typeArguments(useMode), useMode
}

// typeArgumentsOn applies type arguments following the type t.
func (p *Parser) typeArgumentsOn(t *Node, mode Mode) (*Node, Mode) {
	if p.kind() == TokenLT && mode&ModeType != 0 && mode&ModeNoParams == 0 {
		p.checkFeature(FeatureGenerics, p.tok().Pos())
		return p.typeApply(t, ModeType), ModeType
	}
	return t, mode
}

func (p *Parser) typeApply(t *Node, mode Mode) *Node {
	args := p.typeArguments(mode)
	pt := p.at(KindParameterizedType, t.Pos(), t)
	pt.Children = append(pt.Children, args.Children...)
	return p.toP(pt)
}

// typeArguments parses "<" args ">". Outside expression mode the arguments
// may be wildcards. The closing '>' may be the first character of a longer
// token such as ">>".
func (p *Parser) typeArguments(mode Mode) *Node {
	n := p.at(KindTypeArguments, p.tok().Pos())
	if p.kind() != TokenLT {
		p.missingError(p.tok().Pos(), "expected", TokenLT.Display())
		return n
	}
	p.next()
	arg := func() *Node {
		if mode&ModeExpr == 0 {
			return p.typeArgument()
		}
		return p.parseType()
	}
	n.AddChild(arg())
	for p.kind() == TokenComma {
		p.next()
		n.AddChild(arg())
	}
	p.splitGT()
	return p.toP(n)
}

// typeArgument parses a type or a wildcard: "?", "? extends T", "? super T".
func (p *Parser) typeArgument() *Node {
	if p.kind() != TokenQuestion {
		return p.parseType()
	}
	pos := p.tok().Pos()
	p.next()
	w := p.at(KindWildcard, pos)
	switch p.kind() {
	case TokenExtends, TokenSuper:
		w.Op = p.kind()
		p.next()
		w.AddChild(p.parseType())
	case TokenIdent:
		// "? T" is a common typo for "? extends T".
		w.Op = TokenQuestion
		p.toP(w)
		args := []any{TokenGT.Display(), TokenExtends.Display(), TokenSuper.Display()}
		p.reportError(p.prevEnd(), "expected3", args...)
		return p.toP(p.errorNode(pos, "expected3", args, w, p.identNode()))
	default:
		w.Op = TokenQuestion
	}
	return p.toP(w)
}

func (p *Parser) bracketsOpt(t *Node) *Node {
	if p.kind() == TokenLBracket {
		p.next()
		t = p.bracketsOptCont(t)
	}
	return t
}

func (p *Parser) bracketsOptCont(t *Node) *Node {
	p.accept(TokenRBracket)
	t = p.bracketsOpt(t)
	return p.toP(p.at(KindArrayType, t.Pos(), t))
}

// bracketsSuffix parses the ".class" that may follow an array or primitive
// type in an expression.
func (p *Parser) bracketsSuffix(t *Node, mode Mode) (*Node, Mode) {
	switch {
	case mode&ModeExpr != 0 && p.kind() == TokenDot:
		pos := p.tok().Pos()
		p.next()
		p.accept(TokenClass)
		if p.offset() == p.errorEndPos {
			// "int.foo": keep the name so the tree covers the input.
			var name *Token
			if p.kind() == TokenIdent {
				tok := p.tok()
				name = &tok
				p.next()
			} else {
				name = errorName(p.tok().Pos())
			}
			id := p.at(KindIdentifier, name.Pos())
			id.Token = name
			sel := p.toP(p.at(KindFieldAccess, t.Pos(), t, id))
			args := []any{TokenClass.Display()}
			return p.toP(p.errorNode(pos, "expected", args, sel)), ModeExpr
		}
		return p.toP(p.at(KindClassLiteral, t.Pos(), t)), ModeExpr
	case mode&ModeType != 0:
		return t, ModeType
	}
	p.missingError(p.tok().Pos(), "dot.class.expected")
	return t, mode
}

// creator parses what follows 'new'.
func (p *Parser) creator(newPos Position, typeArgs *Node) *Node {
	if p.kind().IsPrimitive() && typeArgs == nil {
		return p.arrayCreatorRest(newPos, p.leaf(KindPrimitiveType))
	}
	t := p.qualident()
	if p.kind() == TokenLT {
		p.checkFeature(FeatureGenerics, p.tok().Pos())
		t = p.typeApply(t, ModeType)
	}
	for p.kind() == TokenDot {
		p.next()
		t = p.toP(p.at(KindFieldAccess, t.Pos(), t, p.identNode()))
		if p.kind() == TokenLT {
			p.checkFeature(FeatureGenerics, p.tok().Pos())
			t = p.typeApply(t, ModeType)
		}
	}
	switch p.kind() {
	case TokenLBracket:
		e := p.arrayCreatorRest(newPos, t)
		if typeArgs != nil {
			pos := newPos
			if len(typeArgs.Children) > 0 {
				pos = typeArgs.Children[0].Pos()
			}
			p.setErrorEndPos(p.prevEnd().Offset)
			p.reportError(pos, "cannot.create.array.with.type.arguments")
			return p.toP(p.errorNode(newPos, "cannot.create.array.with.type.arguments", nil, typeArgs, e))
		}
		return e
	case TokenLParen:
		return p.classCreatorRest(newPos, nil, typeArgs, t)
	}
	args := []any{TokenLParen.Display(), TokenLBracket.Display()}
	nc := p.at(KindNewExpr, newPos, typeArgs, t, p.at(KindArguments, p.tok().Pos()))
	p.reportError(p.tok().Pos(), "expected2", args...)
	return p.toP(p.errorNode(newPos, "expected2", args, p.toP(nc)))
}

// innerCreator parses the "Inner(args)" of "outer.new Inner(args)".
func (p *Parser) innerCreator(newPos Position, typeArgs, outer *Node) *Node {
	t := p.identNode()
	if p.kind() == TokenLT {
		p.checkFeature(FeatureGenerics, p.tok().Pos())
		t = p.typeApply(t, ModeType)
	}
	return p.classCreatorRest(newPos, outer, typeArgs, t)
}

func (p *Parser) classCreatorRest(newPos Position, outer, typeArgs, t *Node) *Node {
	args := p.argumentList()
	n := p.at(KindNewExpr, newPos, outer, typeArgs, t, args)
	if p.kind() == TokenLBrace {
		n.AddChild(p.classBody("", false))
	}
	return p.toP(n)
}

// arrayCreatorRest parses the dimensions or initializer of an array
// creation whose element type is elem.
func (p *Parser) arrayCreatorRest(newPos Position, elem *Node) *Node {
	p.accept(TokenLBracket)
	if p.kind() == TokenRBracket {
		p.accept(TokenRBracket)
		elem = p.bracketsOpt(elem)
		if p.kind() == TokenLBrace {
			init := p.arrayInitializer(p.tok().Pos())
			return p.toP(p.at(KindNewArrayExpr, newPos, elem, init))
		}
		return p.syntaxError(p.tok().Pos(), nil, "array.dimension.missing")
	}
	dims := []*Node{p.parseExpression()}
	p.accept(TokenRBracket)
	for p.kind() == TokenLBracket {
		p.next()
		if p.kind() == TokenRBracket {
			elem = p.bracketsOptCont(elem)
		} else {
			dims = append(dims, p.parseExpression())
			p.accept(TokenRBracket)
		}
	}
	n := p.at(KindNewArrayExpr, newPos, elem)
	n.Children = append(n.Children, dims...)
	return p.toP(n)
}

func (p *Parser) arrayInitializer(pos Position) *Node {
	p.enter()
	defer p.leave()

	n := p.at(KindArrayInit, pos)
	p.accept(TokenLBrace)
	if p.kind() == TokenComma {
		p.next()
	} else if p.kind() != TokenRBrace {
		n.AddChild(p.variableInitializer())
		for p.kind() == TokenComma {
			p.next()
			if p.kind() == TokenRBrace {
				break
			}
			n.AddChild(p.variableInitializer())
		}
	}
	p.accept(TokenRBrace)
	return p.toP(n)
}

func (p *Parser) variableInitializer() *Node {
	if p.kind() == TokenLBrace {
		return p.arrayInitializer(p.tok().Pos())
	}
	return p.parseExpression()
}

// parExpression parses "(" expression ")".
func (p *Parser) parExpression() *Node {
	p.accept(TokenLParen)
	t := p.parseExpression()
	p.accept(TokenRParen)
	return t
}
