package codebase

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jparse/format"
	"github.com/dhamidi/jparse/java/javadoc"
	"github.com/dhamidi/jparse/java/parser"
)

// documentSymbols returns the outline of a compilation unit: its types,
// their members and nested types.
func documentSymbols(unit *parser.Node) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for _, decl := range unit.Children {
		if isTypeDeclNode(decl) {
			symbols = append(symbols, typeSymbol(decl))
		}
	}
	return symbols
}

func isTypeDeclNode(n *parser.Node) bool {
	switch n.Kind {
	case parser.KindClassDecl, parser.KindInterfaceDecl, parser.KindEnumDecl, parser.KindAnnotationDecl:
		return true
	}
	return false
}

func typeSymbol(decl *parser.Node) protocol.DocumentSymbol {
	sym := newSymbol(decl, decl.Name(), typeSymbolKind(decl.Kind))
	sym.Children = []protocol.DocumentSymbol{}
	body := decl.Last()
	if body == nil || body.Kind != parser.KindClassBody {
		return sym
	}
	for _, m := range body.Children {
		switch m.Kind {
		case parser.KindEnumConstant:
			sym.Children = append(sym.Children, newSymbol(m, m.Name(), protocol.SymbolKindEnumMember))
		case parser.KindFieldDecl:
			for _, d := range m.ChildrenOfKind(parser.KindVariableDeclarator) {
				field := newSymbol(m, d.Name(), protocol.SymbolKindField)
				field.SelectionRange = tokenRange(d)
				sym.Children = append(sym.Children, field)
			}
		case parser.KindMethodDecl:
			sym.Children = append(sym.Children, newSymbol(m, m.Name(), protocol.SymbolKindMethod))
		case parser.KindConstructorDecl:
			sym.Children = append(sym.Children, newSymbol(m, m.Name(), protocol.SymbolKindConstructor))
		default:
			if isTypeDeclNode(m) {
				sym.Children = append(sym.Children, typeSymbol(m))
			}
		}
	}
	return sym
}

func newSymbol(n *parser.Node, name string, kind protocol.SymbolKind) protocol.DocumentSymbol {
	sym := protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          toProtocolRange(n.Span),
		SelectionRange: tokenRange(n),
	}
	if detail := symbolDetail(n); detail != "" {
		sym.Detail = &detail
	}
	if mods := n.Child(0); mods != nil && mods.Kind == parser.KindModifiers && mods.Flags&parser.FlagDeprecated != 0 {
		sym.Tags = []protocol.SymbolTag{protocol.SymbolTagDeprecated}
	}
	return sym
}

func tokenRange(n *parser.Node) protocol.Range {
	if n.Token == nil {
		return toProtocolRange(n.Span)
	}
	return toProtocolRange(n.Token.Span)
}

func typeSymbolKind(kind parser.NodeKind) protocol.SymbolKind {
	switch kind {
	case parser.KindInterfaceDecl, parser.KindAnnotationDecl:
		return protocol.SymbolKindInterface
	case parser.KindEnumDecl:
		return protocol.SymbolKindEnum
	default:
		return protocol.SymbolKindClass
	}
}

// symbolDetail is the type of a field or the signature of a method.
func symbolDetail(n *parser.Node) string {
	switch n.Kind {
	case parser.KindFieldDecl:
		return format.TypeString(n.Child(1))
	case parser.KindMethodDecl, parser.KindConstructorDecl:
		return format.Signature(n)
	}
	return ""
}

// hoverText describes a declaration in markdown, followed by its
// documentation comment.
func hoverText(decl *parser.Node, doc string) string {
	var sb strings.Builder
	sb.WriteString("```java\n")
	switch decl.Kind {
	case parser.KindMethodDecl, parser.KindConstructorDecl:
		sb.WriteString(format.Signature(decl))
	case parser.KindFieldDecl:
		var names []string
		for _, d := range decl.ChildrenOfKind(parser.KindVariableDeclarator) {
			names = append(names, d.Name())
		}
		fmt.Fprintf(&sb, "%s %s", format.TypeString(decl.Child(1)), strings.Join(names, ", "))
	case parser.KindEnumConstant:
		sb.WriteString(decl.Name())
	default:
		fmt.Fprintf(&sb, "%s %s", typeKeyword(decl.Kind), decl.Name())
	}
	sb.WriteString("\n```")
	if text := javadoc.Markdown(javadoc.Parse(doc)); text != "" {
		sb.WriteString("\n\n")
		sb.WriteString(text)
	}
	return sb.String()
}

func typeKeyword(kind parser.NodeKind) string {
	switch kind {
	case parser.KindInterfaceDecl:
		return "interface"
	case parser.KindEnumDecl:
		return "enum"
	case parser.KindAnnotationDecl:
		return "@interface"
	}
	return "class"
}
