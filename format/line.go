package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jparse/java/parser"
)

// LineEncoder writes a tab-separated outline of the declarations in a
// compilation unit, one per line:
//
//	class	pkg.Outer	public,final
//	field	count	int	private
//	method	size	int	-	public
//	class	pkg.Outer.Inner	static
type LineEncoder struct {
	w    io.Writer
	unit *parser.Node
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(unit *parser.Node) error {
	e.unit = unit
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	if e.unit == nil || e.unit.Kind != parser.KindCompilationUnit {
		return nil, fmt.Errorf("outline needs a compilation unit")
	}
	var sb strings.Builder
	prefix := ""
	if pkg := e.unit.FirstChildOfKind(parser.KindPackageDecl); pkg != nil {
		prefix = typeString(pkg.Child(1)) + "."
	}
	for _, decl := range e.unit.Children {
		if isTypeDeclKind(decl.Kind) {
			e.writeType(&sb, prefix, decl)
		}
	}
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeType(sb *strings.Builder, prefix string, decl *parser.Node) {
	name := prefix + decl.Name()
	fmt.Fprintf(sb, "%s\t%s\t%s\n", declKind(decl.Kind), name, modifiersStr(decl.Child(0)))

	body := decl.Last()
	if body == nil || body.Kind != parser.KindClassBody {
		return
	}
	var nested []*parser.Node
	for _, m := range body.Children {
		switch m.Kind {
		case parser.KindEnumConstant:
			fmt.Fprintf(sb, "constant\t%s\n", m.Name())
		case parser.KindFieldDecl:
			typ := typeString(m.Child(1))
			for _, d := range m.Children[2:] {
				fmt.Fprintf(sb, "field\t%s\t%s%s\t%s\n",
					d.Name(), typ, strings.Repeat("[]", d.Dims), modifiersStr(m.Child(0)))
			}
		case parser.KindMethodDecl:
			typ, params := methodSignature(m)
			fmt.Fprintf(sb, "method\t%s\t%s\t%s\t%s\n",
				m.Name(), typeString(typ), parametersStr(params), modifiersStr(m.Child(0)))
		case parser.KindConstructorDecl:
			_, params := methodSignature(m)
			fmt.Fprintf(sb, "constructor\t%s\t%s\t%s\n",
				m.Name(), parametersStr(params), modifiersStr(m.Child(0)))
		default:
			if isTypeDeclKind(m.Kind) {
				nested = append(nested, m)
			}
		}
	}
	for _, n := range nested {
		e.writeType(sb, name+".", n)
	}
}

func declKind(kind parser.NodeKind) string {
	switch kind {
	case parser.KindInterfaceDecl:
		return "interface"
	case parser.KindEnumDecl:
		return "enum"
	case parser.KindAnnotationDecl:
		return "annotation"
	default:
		return "class"
	}
}

// methodSignature returns the result type, nil for constructors, and the
// parameters of a method or constructor declaration.
func methodSignature(m *parser.Node) (typ, params *parser.Node) {
	i := 1
	if tp := m.Child(i); tp != nil && tp.Kind == parser.KindTypeParameters {
		i++
	}
	if m.Kind == parser.KindMethodDecl {
		typ = m.Child(i)
		i++
	}
	return typ, m.Child(i)
}

func modifiersStr(mods *parser.Node) string {
	if mods == nil {
		return "-"
	}
	words := mods.Flags.Keywords()
	if mods.Flags&parser.FlagDeprecated != 0 {
		words = append(words, "deprecated")
	}
	if len(words) == 0 {
		return "-"
	}
	return strings.Join(words, ",")
}

func parametersStr(params *parser.Node) string {
	if params == nil || len(params.Children) == 0 {
		return "-"
	}
	return strings.Join(parameterTypes(params), ",")
}

func parameterTypes(params *parser.Node) []string {
	var types []string
	for _, p := range params.Children {
		t := typeString(p.Child(1))
		if p.Flags&parser.FlagVarargs != 0 {
			t += "..."
		}
		types = append(types, t)
	}
	return types
}

// TypeString renders a type node the way it is written in source.
func TypeString(n *parser.Node) string {
	return typeString(n)
}

// Signature renders the header of a method or constructor without its
// modifiers, as in "List<T> list(T[], int...)".
func Signature(m *parser.Node) string {
	typ, params := methodSignature(m)
	var sb strings.Builder
	if typ != nil {
		sb.WriteString(typeString(typ))
		sb.WriteByte(' ')
	}
	sb.WriteString(m.Name())
	sb.WriteByte('(')
	if params != nil {
		sb.WriteString(strings.Join(parameterTypes(params), ", "))
	}
	sb.WriteByte(')')
	return sb.String()
}
