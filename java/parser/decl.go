package parser

// compilationUnit parses a whole source file.
func (p *Parser) compilationUnit() *Node {
	pos := p.tok().Pos()
	doc := p.tok().Doc
	unit := p.at(KindCompilationUnit, pos)

	var mods *Node
	if p.kind() == TokenAt {
		mods = p.modifiersOpt(nil)
	}
	if p.kind() == TokenPackage {
		start := p.tok().Pos()
		annots := mods
		if mods != nil {
			p.checkNoMods(mods.Flags)
			if mods.Pos().IsValid() {
				start = mods.Pos()
			}
			mods = nil
		} else {
			annots = p.at(KindModifiers, NoPos)
		}
		p.next()
		pkg := p.at(KindPackageDecl, start, annots, p.qualident())
		p.accept(TokenSemicolon)
		unit.AddChild(p.toP(pkg))
		p.adoptMissing(unit)
	}

	checkForImports := true
	for p.kind() != TokenEOF {
		if p.offset() <= p.errorEndPos {
			p.skip(checkForImports, false, false, false)
			if p.kind() == TokenEOF {
				break
			}
		}
		if checkForImports && mods == nil && p.kind() == TokenImport {
			unit.AddChild(p.importDeclaration())
			p.adoptMissing(unit)
			continue
		}
		declDoc := p.tok().Doc
		if mods != nil {
			declDoc = doc
		}
		def := p.typeDeclaration(mods, declDoc)
		unit.AddChild(def)
		p.adoptMissing(unit)
		if isTypeDecl(def) {
			checkForImports = false
		}
		mods = nil
	}
	p.adoptMissing(unit)
	p.attach(unit, doc)
	return p.toP(unit)
}

func isTypeDecl(n *Node) bool {
	switch n.Kind {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindAnnotationDecl:
		return true
	}
	return false
}

// importDeclaration parses "import [static] a.b.c;" or "import a.b.*;".
func (p *Parser) importDeclaration() *Node {
	n := p.at(KindImportDecl, p.tok().Pos())
	p.next()
	if p.kind() == TokenStatic {
		p.checkFeature(FeatureStaticImport, p.tok().Pos())
		n.Flags |= FlagStatic
		p.next()
	}
	pid := p.identNode()
	for {
		p.accept(TokenDot)
		if p.kind() == TokenStar {
			pid = p.toP(p.at(KindFieldAccess, pid.Pos(), pid, p.leaf(KindIdentifier)))
			break
		}
		pid = p.toP(p.at(KindFieldAccess, pid.Pos(), pid, p.identNode()))
		if p.kind() != TokenDot {
			break
		}
	}
	p.accept(TokenSemicolon)
	n.AddChild(pid)
	return p.toP(n)
}

func (p *Parser) typeDeclaration(mods *Node, doc string) *Node {
	if mods == nil && p.kind() == TokenSemicolon {
		pos := p.tok().Pos()
		p.next()
		return p.toP(p.at(KindEmptyDecl, pos))
	}
	return p.classOrInterfaceOrEnumDeclaration(p.modifiersOpt(mods), doc)
}

func (p *Parser) startsTypeDecl() bool {
	switch p.kind() {
	case TokenClass, TokenInterface:
		return true
	case TokenEnum:
		return p.allows(FeatureEnum)
	}
	return false
}

func (p *Parser) classOrInterfaceOrEnumDeclaration(mods *Node, doc string) *Node {
	switch p.kind() {
	case TokenClass:
		return p.classDeclaration(mods, doc)
	case TokenInterface:
		return p.interfaceDeclaration(mods, doc)
	case TokenEnum:
		p.checkFeature(FeatureEnum, p.tok().Pos())
		return p.enumDeclaration(mods, doc)
	}
	pos := p.tok().Pos()
	errs := []*Node{mods}
	if p.kind() == TokenIdent {
		errs = append(errs, p.identNode())
		p.setErrorEndPos(p.offset())
	}
	if p.allows(FeatureEnum) {
		return p.syntaxError(pos, errs, "expected3",
			TokenClass.Display(), TokenInterface.Display(), TokenEnum.Display())
	}
	return p.syntaxError(pos, errs, "expected2", TokenClass.Display(), TokenInterface.Display())
}

// declStart is where a declaration with the given modifiers begins.
func (p *Parser) declStart(mods *Node) Position {
	if mods.Pos().IsValid() {
		return mods.Pos()
	}
	return p.tok().Pos()
}

func (p *Parser) classDeclaration(mods *Node, doc string) *Node {
	n := p.at(KindClassDecl, p.declStart(mods), mods)
	p.accept(TokenClass)
	n.Token = p.ident()
	n.AddChild(p.typeParametersOpt())
	if p.kind() == TokenExtends {
		pos := p.tok().Pos()
		p.next()
		n.AddChild(p.toP(p.at(KindExtendsClause, pos, p.parseType())))
	}
	if p.kind() == TokenImplements {
		pos := p.tok().Pos()
		p.next()
		n.AddChild(p.toP(p.at(KindImplementsClause, pos, p.typeList()...)))
	}
	n.AddChild(p.classBody(n.Name(), false))
	p.attach(n, doc)
	return p.toP(n)
}

// interfaceDeclaration parses an interface, or an annotation type when
// mods ended with '@'.
func (p *Parser) interfaceDeclaration(mods *Node, doc string) *Node {
	kind := KindInterfaceDecl
	if mods.Flags&FlagAnnotation != 0 {
		kind = KindAnnotationDecl
	}
	n := p.at(kind, p.declStart(mods), mods)
	p.accept(TokenInterface)
	n.Token = p.ident()
	n.AddChild(p.typeParametersOpt())
	if p.kind() == TokenExtends {
		pos := p.tok().Pos()
		p.next()
		n.AddChild(p.toP(p.at(KindExtendsClause, pos, p.typeList()...)))
	}
	n.AddChild(p.classBody(n.Name(), true))
	p.attach(n, doc)
	return p.toP(n)
}

func (p *Parser) enumDeclaration(mods *Node, doc string) *Node {
	n := p.at(KindEnumDecl, p.declStart(mods), mods)
	p.accept(TokenEnum)
	n.Token = p.ident()
	if p.kind() == TokenImplements {
		pos := p.tok().Pos()
		p.next()
		n.AddChild(p.toP(p.at(KindImplementsClause, pos, p.typeList()...)))
	}
	n.AddChild(p.enumBody(n.Name()))
	p.attach(n, doc)
	return p.toP(n)
}

// enumBody parses the constants of an enum, then its other members after
// a ';'.
func (p *Parser) enumBody(enumName string) *Node {
	p.enter()
	defer p.leave()

	body := p.at(KindClassBody, p.tok().Pos())
	p.accept(TokenLBrace)
	if p.kind() == TokenComma {
		p.next()
	} else if p.kind() != TokenRBrace && p.kind() != TokenSemicolon {
		body.AddChild(p.enumeratorDeclaration())
		for p.kind() == TokenComma {
			p.next()
			if p.kind() == TokenRBrace || p.kind() == TokenSemicolon {
				break
			}
			body.AddChild(p.enumeratorDeclaration())
		}
		if p.kind() != TokenSemicolon && p.kind() != TokenRBrace {
			body.AddChild(p.syntaxError(p.tok().Pos(), nil, "expected3",
				TokenComma.Display(), TokenRBrace.Display(), TokenSemicolon.Display()))
			p.next()
		}
	}
	if p.kind() == TokenSemicolon {
		p.next()
		for p.kind() != TokenRBrace && p.kind() != TokenEOF {
			body.Children = append(body.Children, p.classBodyDeclaration(enumName, false)...)
			p.adoptMissing(body)
			if p.offset() <= p.errorEndPos {
				p.skip(false, true, true, false)
			}
		}
	}
	p.accept(TokenRBrace)
	return p.toP(body)
}

func (p *Parser) enumeratorDeclaration() *Node {
	doc := p.tok().Doc
	pos := p.tok().Pos()
	anns := p.annotationsOpt()
	mpos := NoPos
	if len(anns) > 0 {
		mpos = pos
	}
	mods := p.at(KindModifiers, mpos, anns...)
	if deprecated(doc) {
		mods.Flags |= FlagDeprecated
	}
	n := p.at(KindEnumConstant, pos, p.toP(mods))
	n.Token = p.ident()
	if p.kind() == TokenLParen {
		n.AddChild(p.argumentList())
	}
	if p.kind() == TokenLBrace {
		n.AddChild(p.classBody("", false))
	}
	p.attach(n, doc)
	return p.toP(n)
}

func (p *Parser) typeList() []*Node {
	ts := []*Node{p.parseType()}
	for p.kind() == TokenComma {
		p.next()
		ts = append(ts, p.parseType())
	}
	return ts
}

func (p *Parser) qualidentList() []*Node {
	ts := []*Node{p.qualident()}
	for p.kind() == TokenComma {
		p.next()
		ts = append(ts, p.qualident())
	}
	return ts
}

// classBody parses the braced members of a class or interface named
// className. Anonymous classes pass an empty name.
func (p *Parser) classBody(className string, isInterface bool) *Node {
	p.enter()
	defer p.leave()

	body := p.at(KindClassBody, p.tok().Pos())
	p.accept(TokenLBrace)
	if p.offset() <= p.errorEndPos {
		p.skip(false, true, false, false)
		if p.kind() == TokenLBrace {
			p.next()
		}
	}
	for p.kind() != TokenRBrace && p.kind() != TokenEOF {
		body.Children = append(body.Children, p.classBodyDeclaration(className, isInterface)...)
		p.adoptMissing(body)
		if p.offset() <= p.errorEndPos {
			p.skip(false, true, true, false)
		}
	}
	p.accept(TokenRBrace)
	return p.toP(body)
}

// classBodyDeclaration parses one member: a field group, a method, a
// constructor, an initializer or a nested type.
func (p *Parser) classBodyDeclaration(className string, isInterface bool) []*Node {
	pos := p.tok().Pos()
	if p.kind() == TokenSemicolon {
		p.next()
		return []*Node{p.toP(p.at(KindEmptyDecl, pos))}
	}

	doc := p.tok().Doc
	mods := p.modifiersOpt(nil)
	if p.startsTypeDecl() {
		return []*Node{p.classOrInterfaceOrEnumDeclaration(mods, doc)}
	}
	if p.kind() == TokenLBrace && !isInterface &&
		mods.Flags&standardFlags&^FlagStatic == 0 && len(mods.Children) == 0 {
		init := p.at(KindInitializer, pos, p.block())
		init.Flags = mods.Flags & FlagStatic
		return []*Node{p.toP(init)}
	}

	typarams := p.typeParametersOpt()
	if typarams != nil && !mods.Pos().IsValid() {
		mods.Span.Start = typarams.Pos()
	}
	typePos := p.tok().Pos()
	isVoid := p.kind() == TokenVoid
	var typ *Node
	if isVoid {
		typ = p.leaf(KindPrimitiveType)
	} else {
		typ = p.parseType()
	}

	if p.kind() == TokenLParen && !isInterface && typ.Kind == KindIdentifier {
		if typ.Name() != className {
			p.log.Error(typePos, "invalid.meth.decl.ret.type.req")
		}
		return []*Node{p.methodDeclaratorRest(pos, mods, nil, typ.Token, typarams, true, doc)}
	}

	name := p.ident()
	if p.kind() == TokenLParen {
		return []*Node{p.methodDeclaratorRest(pos, mods, typ, name, typarams, isVoid, doc)}
	}
	if !isVoid && typarams == nil {
		field := p.at(KindFieldDecl, pos, mods, typ)
		p.variableDeclaratorsRest(field, name, isInterface)
		p.accept(TokenSemicolon)
		p.attach(field, doc)
		return []*Node{p.toP(field)}
	}

	var errs []*Node
	if isVoid {
		m := p.at(KindMethodDecl, pos, mods, typarams, typ, p.at(KindParameters, p.tok().Pos()))
		m.Token = name
		errs = append(errs, p.toP(m))
	}
	return []*Node{p.syntaxError(p.tok().Pos(), errs, "expected", TokenLParen.Display())}
}

// methodDeclaratorRest parses the parameters, throws clause and body of a
// method, or of a constructor when typ is nil.
func (p *Parser) methodDeclaratorRest(pos Position, mods, typ *Node, name *Token, typarams *Node, isVoid bool, doc string) *Node {
	kind := KindMethodDecl
	if typ == nil {
		kind = KindConstructorDecl
	}
	n := p.at(kind, pos, mods, typarams)
	n.Token = name
	params := p.formalParameters()
	if !isVoid {
		typ = p.bracketsOpt(typ)
	}
	n.AddChild(typ)
	n.AddChild(params)
	if p.kind() == TokenThrows {
		tpos := p.tok().Pos()
		p.next()
		n.AddChild(p.toP(p.at(KindThrowsClause, tpos, p.qualidentList()...)))
	}
	if p.kind() == TokenLBrace {
		n.AddChild(p.block())
	} else {
		if p.kind() == TokenDefault {
			dpos := p.tok().Pos()
			p.accept(TokenDefault)
			n.AddChild(p.toP(p.at(KindDefaultValue, dpos, p.annotationValue())))
		}
		p.accept(TokenSemicolon)
		if p.offset() <= p.errorEndPos {
			p.skip(false, true, false, false)
			if p.kind() == TokenLBrace {
				n.AddChild(p.block())
			}
		}
	}
	p.attach(n, doc)
	return p.toP(n)
}

// typeParametersOpt parses "<T, U extends A & B>", or returns nil.
func (p *Parser) typeParametersOpt() *Node {
	if p.kind() != TokenLT {
		return nil
	}
	p.checkFeature(FeatureGenerics, p.tok().Pos())
	n := p.at(KindTypeParameters, p.tok().Pos())
	p.next()
	n.AddChild(p.typeParameter())
	for p.kind() == TokenComma {
		p.next()
		n.AddChild(p.typeParameter())
	}
	p.accept(TokenGT)
	return p.toP(n)
}

func (p *Parser) typeParameter() *Node {
	n := p.at(KindTypeParameter, p.tok().Pos())
	n.Token = p.ident()
	if p.kind() == TokenExtends {
		p.next()
		n.AddChild(p.parseType())
		for p.kind() == TokenBitAnd {
			p.next()
			n.AddChild(p.parseType())
		}
	}
	return p.toP(n)
}

func (p *Parser) formalParameters() *Node {
	n := p.at(KindParameters, p.tok().Pos())
	p.accept(TokenLParen)
	if p.kind() != TokenRParen {
		last := p.formalParameter()
		n.AddChild(last)
		for p.kind() == TokenComma {
			if last.Flags&FlagVarargs != 0 {
				p.log.Error(p.tok().Pos(), "varargs.must.be.last")
			}
			p.next()
			last = p.formalParameter()
			n.AddChild(last)
		}
	}
	p.accept(TokenRParen)
	return p.toP(n)
}

// formalParameter parses "[final] Type [...] name".
func (p *Parser) formalParameter() *Node {
	mods := p.optFinal(0)
	typ := p.parseType()
	varargs := false
	if p.kind() == TokenEllipsis {
		p.checkFeature(FeatureVarargs, p.tok().Pos())
		varargs = true
		p.next()
	}
	return p.variableDeclaratorID(mods, typ, varargs)
}

func (p *Parser) variableDeclaratorID(mods, typ *Node, varargs bool) *Node {
	start := typ.Pos()
	if mods.Pos().IsValid() {
		start = mods.Pos()
	}
	n := p.at(KindParameter, start, mods)
	n.Token = p.ident()
	if varargs {
		n.Flags |= FlagVarargs
	} else {
		typ = p.bracketsOpt(typ)
	}
	n.AddChild(typ)
	return p.toP(n)
}

// optFinal parses modifiers where only 'final' and annotations are allowed.
func (p *Parser) optFinal(flags Modifier) *Node {
	mods := p.modifiersOpt(nil)
	p.checkNoMods(mods.Flags &^ (FlagFinal | FlagDeprecated))
	mods.Flags |= flags
	return mods
}

// variableDeclaratorsRest adds the declarator named name, and any that
// follow it after commas, to decl.
func (p *Parser) variableDeclaratorsRest(decl *Node, name *Token, reqInit bool) {
	decl.AddChild(p.variableDeclaratorRest(name, reqInit))
	for p.kind() == TokenComma {
		p.next()
		decl.AddChild(p.variableDeclaratorRest(p.ident(), reqInit))
	}
}

func (p *Parser) variableDeclaratorRest(name *Token, reqInit bool) *Node {
	n := p.at(KindVariableDeclarator, name.Pos())
	n.Token = name
	for p.kind() == TokenLBracket {
		p.next()
		p.accept(TokenRBracket)
		n.Dims++
	}
	if p.kind() == TokenAssign {
		p.next()
		n.AddChild(p.variableInitializer())
	} else if reqInit {
		p.missingError(p.tok().Pos(), "expected", TokenAssign.Display())
	}
	return p.toP(n)
}

// modifiersOpt parses modifier keywords and annotations, continuing from
// partial if it is not nil. The result is never nil; with no modifiers its
// position is NoPos.
func (p *Parser) modifiersOpt(partial *Node) *Node {
	var flags Modifier
	var anns []*Node
	pos := p.tok().Pos()
	if partial != nil {
		flags = partial.Flags
		anns = partial.Children
		if partial.Pos().IsValid() {
			pos = partial.Pos()
		}
	}
	if deprecated(p.tok().Doc) {
		flags |= FlagDeprecated
	}
	for {
		var flag Modifier
		if f, ok := modifierTokens[p.kind()]; ok {
			flag = f
		} else if p.kind() == TokenAt {
			flag = FlagAnnotation
		} else {
			break
		}
		if flags&flag != 0 {
			p.log.Error(p.tok().Pos(), "repeated.modifier")
		}
		atPos := p.tok().Pos()
		p.next()
		if flag == FlagAnnotation {
			p.checkFeature(FeatureAnnotations, atPos)
			if p.kind() != TokenInterface {
				ann := p.annotation(atPos)
				if flags == 0 && len(anns) == 0 {
					pos = ann.Pos()
				}
				anns = append(anns, ann)
				flag = 0
			}
		}
		flags |= flag
	}
	if flags == 0 && len(anns) == 0 {
		pos = NoPos
	}
	mods := p.at(KindModifiers, pos, anns...)
	mods.Flags = flags
	if pos.IsValid() {
		p.toP(mods)
	}
	return mods
}

func (p *Parser) annotationsOpt() []*Node {
	var anns []*Node
	for p.kind() == TokenAt {
		pos := p.tok().Pos()
		p.next()
		anns = append(anns, p.annotation(pos))
	}
	return anns
}

// annotation parses an annotation whose '@' at pos was already consumed.
func (p *Parser) annotation(pos Position) *Node {
	p.checkFeature(FeatureAnnotations, pos)
	n := p.at(KindAnnotation, pos, p.qualident())
	if p.kind() == TokenLParen {
		n.Children = append(n.Children, p.annotationFieldValues()...)
	}
	return p.toP(n)
}

func (p *Parser) annotationFieldValues() []*Node {
	var vals []*Node
	p.accept(TokenLParen)
	if p.kind() != TokenRParen {
		vals = append(vals, p.annotationFieldValue())
		for p.kind() == TokenComma {
			p.next()
			vals = append(vals, p.annotationFieldValue())
		}
	}
	p.accept(TokenRParen)
	return vals
}

// annotationFieldValue parses "name = value" or a bare value.
func (p *Parser) annotationFieldValue() *Node {
	if p.kind() != TokenIdent {
		return p.annotationValue()
	}
	t, _ := p.term1(ModeExpr)
	if t.Kind == KindIdentifier && p.kind() == TokenAssign {
		p.accept(TokenAssign)
		return p.toP(p.at(KindAssignExpr, t.Pos(), t, p.annotationValue()))
	}
	return t
}

func (p *Parser) annotationValue() *Node {
	p.enter()
	defer p.leave()

	pos := p.tok().Pos()
	switch p.kind() {
	case TokenAt:
		p.next()
		return p.annotation(pos)
	case TokenLBrace:
		n := p.at(KindArrayInit, pos)
		p.accept(TokenLBrace)
		if p.kind() != TokenRBrace {
			n.AddChild(p.annotationValue())
			for p.kind() == TokenComma {
				p.next()
				if p.kind() == TokenRBrace {
					break
				}
				n.AddChild(p.annotationValue())
			}
		}
		p.accept(TokenRBrace)
		return p.toP(n)
	}
	t, _ := p.term1(ModeExpr)
	return t
}
