package format

import (
	"github.com/dhamidi/jparse/java/parser"
)

// printBlock writes "{ ... }" with one statement per line. The closing
// brace is left open on the current line.
func (p *JavaPrettyPrinter) printBlock(node *parser.Node) {
	if node == nil {
		p.write("{}")
		return
	}
	if len(node.Children) == 0 && !p.hasCommentsBefore(node.Span.End) {
		p.write("{}")
		return
	}
	p.write("{")
	p.newline()
	p.indent++
	p.lastLine = node.Pos().Line
	p.printStatements(node.Children)
	p.emitCommentsBefore(node.Span.End)
	p.indent--
	p.writeIndent()
	p.write("}")
}

// printStatements writes stats on their own lines, keeping a single blank
// line wherever the source had one.
func (p *JavaPrettyPrinter) printStatements(stats []*parser.Node) {
	for i, stat := range stats {
		if i > 0 && stat.Pos().Line > lastSourceLine(stats[i-1])+1 && !p.hasCommentsBefore(stat.Pos()) {
			p.write("\n")
		}
		p.emitCommentsBefore(stat.Pos())
		p.printStatement(stat)
		p.lastLine = lastSourceLine(stat)
	}
}

// printStatement writes a complete statement line, ending with a newline.
func (p *JavaPrettyPrinter) printStatement(node *parser.Node) {
	if isTypeDeclKind(node.Kind) {
		p.printTypeDecl(node)
		return
	}
	p.writeIndent()
	p.printStatementInline(node)
	if !p.atLineStart {
		p.endLine(node)
	}
}

// printStatementInline writes a statement from the current column without
// the final newline.
func (p *JavaPrettyPrinter) printStatementInline(node *parser.Node) {
	switch node.Kind {
	case parser.KindBlock:
		p.printBlock(node)

	case parser.KindLocalVarDecl:
		p.printLocalVarDecl(node)
		p.write(";")

	case parser.KindExprStmt:
		p.printExpr(node.Child(0))
		p.write(";")

	case parser.KindEmptyStmt:
		p.write(";")

	case parser.KindIfStmt:
		p.printIfStmt(node)

	case parser.KindForStmt:
		p.write("for (")
		init := node.Child(0)
		var cond *parser.Node
		update, body := node.Child(1), node.Child(2)
		if len(node.Children) == 4 {
			cond, update, body = node.Child(1), node.Child(2), node.Child(3)
		}
		p.printForClause(init)
		p.write(";")
		if cond != nil {
			p.write(" ")
			p.printExpr(cond)
		}
		p.write(";")
		if len(update.Children) > 0 {
			p.write(" ")
			p.printForClause(update)
		}
		p.write(")")
		p.printBody(body)

	case parser.KindEnhancedForStmt:
		p.write("for (")
		p.printLocalVarDecl(node.Child(0))
		p.write(" : ")
		p.printExpr(node.Child(1))
		p.write(")")
		p.printBody(node.Child(2))

	case parser.KindWhileStmt:
		p.write("while (")
		p.printExpr(node.Child(0))
		p.write(")")
		p.printBody(node.Child(1))

	case parser.KindDoStmt:
		p.write("do")
		body := node.Child(0)
		p.printBody(body)
		if body.Kind == parser.KindBlock {
			p.write(" ")
		} else {
			p.writeIndent()
		}
		p.write("while (")
		p.printExpr(node.Child(1))
		p.write(");")

	case parser.KindTryStmt:
		p.write("try ")
		p.printBlock(node.Child(0))
		for _, clause := range node.Children[1:] {
			switch clause.Kind {
			case parser.KindCatchClause:
				p.write(" catch (")
				p.printParameter(clause.Child(0))
				p.write(") ")
				p.printBlock(clause.Child(1))
			case parser.KindFinallyClause:
				p.write(" finally ")
				p.printBlock(clause.Child(0))
			}
		}

	case parser.KindSwitchStmt:
		p.printSwitchStmt(node)

	case parser.KindSynchronizedStmt:
		p.write("synchronized (")
		p.printExpr(node.Child(0))
		p.write(") ")
		p.printBlock(node.Child(1))

	case parser.KindReturnStmt:
		p.write("return")
		if e := node.Child(0); e != nil {
			p.write(" ")
			p.printExpr(e)
		}
		p.write(";")

	case parser.KindThrowStmt:
		p.write("throw ")
		p.printExpr(node.Child(0))
		p.write(";")

	case parser.KindBreakStmt, parser.KindContinueStmt:
		if node.Kind == parser.KindBreakStmt {
			p.write("break")
		} else {
			p.write("continue")
		}
		if node.Token != nil {
			p.write(" ")
			p.write(node.Name())
		}
		p.write(";")

	case parser.KindAssertStmt:
		p.write("assert ")
		p.printExpr(node.Child(0))
		if detail := node.Child(1); detail != nil {
			p.write(" : ")
			p.printExpr(detail)
		}
		p.write(";")

	case parser.KindLabeledStmt:
		p.write(node.Name())
		p.write(": ")
		p.printStatementInline(node.Child(0))

	default:
		p.printExpr(node)
	}
}

// printBody writes the statement controlled by if, for, while or do. Blocks
// stay on the header's line; anything else is indented on the next one,
// leaving the cursor at the start of a line.
func (p *JavaPrettyPrinter) printBody(body *parser.Node) {
	if body.Kind == parser.KindBlock {
		p.write(" ")
		p.printBlock(body)
		return
	}
	p.newline()
	p.indent++
	p.emitCommentsBefore(body.Pos())
	p.printStatement(body)
	p.indent--
}

func (p *JavaPrettyPrinter) printIfStmt(node *parser.Node) {
	p.write("if (")
	p.printExpr(node.Child(0))
	p.write(")")
	then := node.Child(1)
	p.printBody(then)

	els := node.Child(2)
	if els == nil {
		return
	}
	if then.Kind == parser.KindBlock {
		p.write(" ")
	} else {
		p.writeIndent()
	}
	p.write("else")
	if els.Kind == parser.KindIfStmt {
		p.write(" ")
		p.printIfStmt(els)
		return
	}
	p.printBody(els)
}

func (p *JavaPrettyPrinter) printSwitchStmt(node *parser.Node) {
	p.write("switch (")
	p.printExpr(node.Child(0))
	p.write(") {")
	p.newline()
	for _, c := range node.Children[1:] {
		p.emitCommentsBefore(c.Pos())
		p.writeIndent()
		stats := c.Children
		if c.Token != nil && c.Token.Kind == parser.TokenCase {
			p.write("case ")
			p.printExpr(c.Child(0))
			stats = c.Children[1:]
		} else {
			p.write("default")
		}
		p.write(":")
		p.newline()
		p.lastLine = c.Pos().Line
		p.indent++
		p.printStatements(stats)
		p.indent--
	}
	p.emitCommentsBefore(node.Span.End)
	p.writeIndent()
	p.write("}")
}

func (p *JavaPrettyPrinter) printLocalVarDecl(node *parser.Node) {
	p.printModifiers(node.Child(0), true)
	p.printType(node.Child(1))
	p.write(" ")
	p.printDeclarators(node.Children[2:])
}

// printForClause writes a for loop's init or update list without the
// trailing ';'.
func (p *JavaPrettyPrinter) printForClause(node *parser.Node) {
	for i, child := range node.Children {
		if i > 0 {
			p.write(", ")
		}
		if child.Kind == parser.KindLocalVarDecl {
			p.printLocalVarDecl(child)
		} else {
			p.printExpr(child.Child(0))
		}
	}
}
