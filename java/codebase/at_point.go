package codebase

import (
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/jparse/java/parser"
)

// DeclarationAt returns the innermost declaration whose span contains the
// byte offset, or nil. Spans need end positions.
func DeclarationAt(root *parser.Node, offset int) *parser.Node {
	if root == nil || !offsetInSpan(offset, root.Span) {
		return nil
	}
	for _, child := range root.Children {
		if found := DeclarationAt(child, offset); found != nil {
			return found
		}
	}
	if isDeclaration(root.Kind) {
		return root
	}
	return nil
}

func isDeclaration(kind parser.NodeKind) bool {
	switch kind {
	case parser.KindClassDecl, parser.KindInterfaceDecl, parser.KindEnumDecl, parser.KindAnnotationDecl,
		parser.KindMethodDecl, parser.KindConstructorDecl, parser.KindFieldDecl, parser.KindEnumConstant:
		return true
	}
	return false
}

func offsetInSpan(offset int, span parser.Span) bool {
	if !span.Start.IsValid() || !span.End.IsValid() {
		return false
	}
	return span.Start.Offset <= offset && offset <= span.End.Offset
}

// offsetAt converts a zero-based line and UTF-16 character index into a
// byte offset in content. Positions past the end of a line clamp to it.
func offsetAt(content []byte, line, character int) int {
	offset := 0
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(string(content[offset:]), '\n')
		if nl < 0 {
			return len(content)
		}
		offset += nl + 1
	}
	units := 0
	for offset < len(content) && content[offset] != '\n' && units < character {
		r, size := utf8.DecodeRune(content[offset:])
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
		offset += size
	}
	return offset
}
