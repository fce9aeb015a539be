package format

import (
	"github.com/dhamidi/jparse/java/parser"
)

// printModifiers writes annotations followed by modifier keywords. Unless
// inline, each annotation goes on its own line, as on a declaration.
func (p *JavaPrettyPrinter) printModifiers(mods *parser.Node, inline bool) {
	if mods == nil {
		return
	}
	for _, ann := range mods.Children {
		p.printAnnotation(ann)
		if inline {
			p.write(" ")
		} else {
			p.newline()
			p.writeIndent()
		}
	}
	for _, kw := range mods.Flags.Keywords() {
		p.write(kw)
		p.write(" ")
	}
}

func (p *JavaPrettyPrinter) printAnnotation(node *parser.Node) {
	p.write("@")
	p.printType(node.Child(0))
	if len(node.Children) < 2 {
		return
	}
	p.write("(")
	for i, value := range node.Children[1:] {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(value)
	}
	p.write(")")
}

func (p *JavaPrettyPrinter) printTypeDecl(node *parser.Node) {
	p.writeIndent()
	mods := node.Child(0)
	p.printModifiers(mods, false)
	switch node.Kind {
	case parser.KindClassDecl:
		p.write("class ")
	case parser.KindInterfaceDecl:
		p.write("interface ")
	case parser.KindEnumDecl:
		p.write("enum ")
	case parser.KindAnnotationDecl:
		p.write("@interface ")
	}
	p.write(node.Name())

	var body *parser.Node
	for _, child := range node.Children[1:] {
		switch child.Kind {
		case parser.KindTypeParameters:
			p.printTypeParameters(child)
		case parser.KindExtendsClause:
			p.write(" extends ")
			p.printTypeList(child.Children)
		case parser.KindImplementsClause:
			p.write(" implements ")
			p.printTypeList(child.Children)
		case parser.KindClassBody:
			body = child
		}
	}
	p.write(" ")
	if body != nil {
		p.printClassBody(body, node.Kind == parser.KindEnumDecl)
	} else {
		p.write("{}")
	}
	p.endLine(node)
}

func (p *JavaPrettyPrinter) printTypeParameters(node *parser.Node) {
	p.write("<")
	for i, tp := range node.Children {
		if i > 0 {
			p.write(", ")
		}
		p.write(tp.Name())
		for j, bound := range tp.Children {
			if j == 0 {
				p.write(" extends ")
			} else {
				p.write(" & ")
			}
			p.printType(bound)
		}
	}
	p.write(">")
}

func (p *JavaPrettyPrinter) printTypeList(types []*parser.Node) {
	for i, t := range types {
		if i > 0 {
			p.write(", ")
		}
		p.printType(t)
	}
}

// printClassBody writes a braced member list, leaving the closing brace on
// the current line. Enum bodies list their constants first.
func (p *JavaPrettyPrinter) printClassBody(body *parser.Node, isEnum bool) {
	constants := body.ChildrenOfKind(parser.KindEnumConstant)
	members := body.Children[len(constants):]
	if len(body.Children) == 0 && !p.hasCommentsBefore(body.Span.End) {
		p.write("{}")
		return
	}

	p.write("{")
	p.newline()
	p.indent++
	p.lastLine = body.Pos().Line

	for i, c := range constants {
		p.emitCommentsBefore(c.Pos())
		p.writeIndent()
		p.printEnumConstant(c)
		if i < len(constants)-1 {
			p.write(",")
		} else if len(members) > 0 {
			p.write(";")
		}
		p.endLine(c)
		p.lastLine = lastSourceLine(c)
	}
	if isEnum && len(constants) == 0 && len(members) > 0 {
		p.writeIndent()
		p.write(";")
		p.newline()
	}

	var prev *parser.Node
	if len(constants) > 0 {
		prev = constants[len(constants)-1]
	}
	for _, m := range members {
		if prev != nil && p.wantsBlankLine(prev, m) {
			p.write("\n")
		}
		p.emitCommentsBefore(m.Pos())
		p.printMember(m)
		p.lastLine = lastSourceLine(m)
		prev = m
	}

	p.emitCommentsBefore(body.Span.End)
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *JavaPrettyPrinter) wantsBlankLine(prev, next *parser.Node) bool {
	if prev.Kind == parser.KindFieldDecl && next.Kind == parser.KindFieldDecl {
		return next.Pos().Line > lastSourceLine(prev)+1
	}
	if prev.Kind == parser.KindEnumConstant {
		return true
	}
	return prev.Kind != parser.KindEmptyDecl
}

func (p *JavaPrettyPrinter) printEnumConstant(node *parser.Node) {
	p.printModifiers(node.Child(0), false)
	p.write(node.Name())
	for _, child := range node.Children[1:] {
		switch child.Kind {
		case parser.KindArguments:
			p.printArguments(child)
		case parser.KindClassBody:
			p.write(" ")
			p.printClassBody(child, false)
		}
	}
}

func (p *JavaPrettyPrinter) printMember(node *parser.Node) {
	switch node.Kind {
	case parser.KindFieldDecl:
		p.writeIndent()
		p.printModifiers(node.Child(0), false)
		p.printType(node.Child(1))
		p.write(" ")
		p.printDeclarators(node.Children[2:])
		p.write(";")
		p.endLine(node)
	case parser.KindMethodDecl, parser.KindConstructorDecl:
		p.printMethodDecl(node)
	case parser.KindInitializer:
		p.writeIndent()
		if node.Flags&parser.FlagStatic != 0 {
			p.write("static ")
		}
		p.printBlock(node.Child(0))
		p.endLine(node)
	case parser.KindEmptyDecl:
		p.writeIndent()
		p.write(";")
		p.endLine(node)
	case parser.KindClassDecl, parser.KindInterfaceDecl, parser.KindEnumDecl, parser.KindAnnotationDecl:
		p.printTypeDecl(node)
	default:
		p.writeIndent()
		p.printExpr(node)
		p.newline()
	}
}

func (p *JavaPrettyPrinter) printMethodDecl(node *parser.Node) {
	p.writeIndent()
	p.printModifiers(node.Child(0), false)

	i := 1
	if tp := node.Child(i); tp != nil && tp.Kind == parser.KindTypeParameters {
		p.printTypeParameters(tp)
		p.write(" ")
		i++
	}
	if node.Kind == parser.KindMethodDecl {
		p.printType(node.Child(i))
		p.write(" ")
		i++
	}
	p.write(node.Name())
	p.printParameters(node.Child(i))
	i++

	var body *parser.Node
	for _, child := range node.Children[i:] {
		switch child.Kind {
		case parser.KindThrowsClause:
			p.write(" throws ")
			p.printTypeList(child.Children)
		case parser.KindDefaultValue:
			p.write(" default ")
			p.printExpr(child.Child(0))
		case parser.KindBlock:
			body = child
		}
	}
	if body == nil {
		p.write(";")
	} else {
		p.write(" ")
		p.printBlock(body)
	}
	p.endLine(node)
}

func (p *JavaPrettyPrinter) printParameters(node *parser.Node) {
	p.write("(")
	if node != nil {
		for i, param := range node.Children {
			if i > 0 {
				p.write(", ")
			}
			p.printParameter(param)
		}
	}
	p.write(")")
}

func (p *JavaPrettyPrinter) printParameter(node *parser.Node) {
	p.printModifiers(node.Child(0), true)
	p.printType(node.Child(1))
	if node.Flags&parser.FlagVarargs != 0 {
		p.write("...")
	}
	p.write(" ")
	p.write(node.Name())
}

func (p *JavaPrettyPrinter) printDeclarators(decls []*parser.Node) {
	for i, d := range decls {
		if i > 0 {
			p.write(", ")
		}
		p.write(d.Name())
		for j := 0; j < d.Dims; j++ {
			p.write("[]")
		}
		if init := d.Child(0); init != nil {
			p.write(" = ")
			p.printExpr(init)
		}
	}
}
