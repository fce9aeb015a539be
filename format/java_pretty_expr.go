package format

import (
	"github.com/dhamidi/jparse/java/parser"
)

func (p *JavaPrettyPrinter) printExpr(node *parser.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case parser.KindLiteral, parser.KindIdentifier:
		p.write(node.TokenLiteral())
	case parser.KindThis:
		p.write("this")
	case parser.KindSuper:
		p.write("super")
	case parser.KindBinaryExpr:
		p.printExpr(node.Child(0))
		p.write(" ")
		p.write(node.Op.String())
		p.write(" ")
		p.printExpr(node.Child(1))
	case parser.KindInstanceofExpr:
		p.printExpr(node.Child(0))
		p.write(" instanceof ")
		p.printType(node.Child(1))
	case parser.KindUnaryExpr:
		p.printUnaryExpr(node)
	case parser.KindPostfixExpr:
		p.printExpr(node.Child(0))
		p.write(node.Op.String())
	case parser.KindAssignExpr:
		p.printExpr(node.Child(0))
		p.write(" = ")
		p.printExpr(node.Child(1))
	case parser.KindCompoundAssignExpr:
		p.printExpr(node.Child(0))
		p.write(" ")
		p.write(node.Op.String())
		p.write(" ")
		p.printExpr(node.Child(1))
	case parser.KindTernaryExpr:
		p.printTernaryExpr(node)
	case parser.KindCastExpr:
		p.write("(")
		p.printType(node.Child(0))
		p.write(") ")
		p.printExpr(node.Child(1))
	case parser.KindCallExpr:
		p.printCallExpr(node)
	case parser.KindArguments:
		p.printArguments(node)
	case parser.KindFieldAccess:
		p.printExpr(node.Child(0))
		p.write(".")
		p.printExpr(node.Child(1))
	case parser.KindArrayAccess:
		p.printExpr(node.Child(0))
		p.write("[")
		p.printExpr(node.Child(1))
		p.write("]")
	case parser.KindNewExpr:
		p.printNewExpr(node)
	case parser.KindNewArrayExpr:
		p.printNewArrayExpr(node)
	case parser.KindArrayInit:
		p.printArrayInit(node)
	case parser.KindParenExpr:
		p.write("(")
		p.printExpr(node.Child(0))
		p.write(")")
	case parser.KindClassLiteral:
		p.printType(node.Child(0))
		p.write(".class")
	case parser.KindAnnotation:
		p.printAnnotation(node)
	case parser.KindPrimitiveType, parser.KindArrayType, parser.KindParameterizedType, parser.KindWildcard:
		p.printType(node)
	case parser.KindError:
		for i, child := range node.Children {
			if i > 0 {
				p.write(" ")
			}
			p.printExpr(child)
		}
	}
}

// printType writes a type. Names reuse the expression forms.
func (p *JavaPrettyPrinter) printType(node *parser.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case parser.KindPrimitiveType:
		p.write(node.TokenLiteral())
	case parser.KindArrayType:
		p.printType(node.Child(0))
		p.write("[]")
	case parser.KindParameterizedType:
		p.printType(node.Child(0))
		p.write("<")
		p.printTypeList(node.Children[1:])
		p.write(">")
	case parser.KindTypeArguments:
		p.write("<")
		p.printTypeList(node.Children)
		p.write(">")
	case parser.KindWildcard:
		p.write("?")
		switch node.Op {
		case parser.TokenExtends:
			p.write(" extends ")
			p.printType(node.Child(0))
		case parser.TokenSuper:
			p.write(" super ")
			p.printType(node.Child(0))
		}
	case parser.KindFieldAccess:
		p.printType(node.Child(0))
		p.write(".")
		p.printType(node.Child(1))
	default:
		p.printExpr(node)
	}
}

// printUnaryExpr keeps a space between signs that would otherwise lex as
// "++" or "--".
func (p *JavaPrettyPrinter) printUnaryExpr(node *parser.Node) {
	p.write(node.Op.String())
	if sign := leadingSign(node.Op); sign != 0 && leadingSignOf(node.Child(0)) == sign {
		p.write(" ")
	}
	p.printExpr(node.Child(0))
}

func leadingSign(op parser.TokenKind) byte {
	switch op {
	case parser.TokenPlus, parser.TokenIncrement:
		return '+'
	case parser.TokenMinus, parser.TokenDecrement:
		return '-'
	}
	return 0
}

func leadingSignOf(node *parser.Node) byte {
	if node == nil {
		return 0
	}
	switch node.Kind {
	case parser.KindUnaryExpr:
		return leadingSign(node.Op)
	case parser.KindLiteral:
		if lit := node.TokenLiteral(); lit != "" && lit[0] == '-' {
			return '-'
		}
	}
	return 0
}

func (p *JavaPrettyPrinter) printTernaryExpr(node *parser.Node) {
	cond, then, els := node.Child(0), node.Child(1), node.Child(2)
	total := p.measureExpr(cond) + 3 + p.measureExpr(then) + 3 + p.measureExpr(els)

	p.printExpr(cond)
	if !p.wouldExceed(total) {
		p.write(" ? ")
		p.printExpr(then)
		p.write(" : ")
		p.printExpr(els)
		return
	}
	p.indent++
	p.newline()
	p.writeIndent()
	p.write("? ")
	p.printExpr(then)
	p.newline()
	p.writeIndent()
	p.write(": ")
	p.printExpr(els)
	p.indent--
}

func (p *JavaPrettyPrinter) printCallExpr(node *parser.Node) {
	var typeArgs *parser.Node
	method, args := node.Child(0), node.Child(1)
	if method.Kind == parser.KindTypeArguments {
		typeArgs, method, args = method, node.Child(1), node.Child(2)
	}
	switch {
	case typeArgs == nil:
		p.printExpr(method)
	case method.Kind == parser.KindFieldAccess:
		p.printExpr(method.Child(0))
		p.write(".")
		p.printType(typeArgs)
		p.printExpr(method.Child(1))
	default:
		p.printType(typeArgs)
		p.printExpr(method)
	}
	p.printArguments(args)
}

// printArguments writes "(a, b)", putting each argument on its own line
// when the list does not fit.
func (p *JavaPrettyPrinter) printArguments(node *parser.Node) {
	p.write("(")
	p.printExprList(node.Children)
	p.write(")")
}

func (p *JavaPrettyPrinter) printExprList(exprs []*parser.Node) {
	if len(exprs) == 0 {
		return
	}
	total := 0
	for i, e := range exprs {
		if i > 0 {
			total += 2
		}
		total += p.measureExpr(e)
	}

	if !p.wouldExceed(total+1) || len(exprs) == 1 {
		for i, e := range exprs {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(e)
		}
		return
	}

	p.indent++
	for i, e := range exprs {
		p.newline()
		p.writeIndent()
		p.printExpr(e)
		if i < len(exprs)-1 {
			p.write(",")
		}
	}
	p.indent--
	p.newline()
	p.writeIndent()
}

// printNewExpr handles both "new T(args)" and "outer.new T(args)". The
// Arguments child anchors the optional children before it.
func (p *JavaPrettyPrinter) printNewExpr(node *parser.Node) {
	argIdx := -1
	for i, child := range node.Children {
		if child.Kind == parser.KindArguments {
			argIdx = i
			break
		}
	}
	if argIdx < 1 {
		return
	}
	class := node.Children[argIdx-1]
	var outer, typeArgs *parser.Node
	rest := node.Children[:argIdx-1]
	if n := len(rest); n > 0 && rest[n-1].Kind == parser.KindTypeArguments {
		typeArgs = rest[n-1]
		rest = rest[:n-1]
	}
	if len(rest) > 0 {
		outer = rest[0]
	}

	if outer != nil {
		p.printExpr(outer)
		p.write(".")
	}
	p.write("new ")
	if typeArgs != nil {
		p.printType(typeArgs)
	}
	p.printType(class)
	p.printArguments(node.Children[argIdx])
	if body := node.Child(argIdx + 1); body != nil && body.Kind == parser.KindClassBody {
		p.write(" ")
		p.printClassBody(body, false)
	}
}

// printNewArrayExpr writes an array creation. Brackets without a dimension
// expression are folded into the element type by the parser, so they are
// recovered from its array depth.
func (p *JavaPrettyPrinter) printNewArrayExpr(node *parser.Node) {
	elem := node.Child(0)
	p.write("new ")
	if init := node.Child(1); init != nil && init.Kind == parser.KindArrayInit {
		p.printType(elem)
		p.write("[] ")
		p.printArrayInit(init)
		return
	}

	base, depth := elem, 0
	for base.Kind == parser.KindArrayType {
		base = base.Child(0)
		depth++
	}
	p.printType(base)
	for _, dim := range node.Children[1:] {
		p.write("[")
		p.printExpr(dim)
		p.write("]")
	}
	for i := 0; i < depth; i++ {
		p.write("[]")
	}
}

func (p *JavaPrettyPrinter) printArrayInit(node *parser.Node) {
	if len(node.Children) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.printExprList(node.Children)
	p.write("}")
}
