package javadoc

import (
	"strings"
	"unicode"
)

// Parse parses a documentation comment. The comment may still carry its
// /** and */ delimiters and leading asterisks, or be the stripped text
// the Java parser records for declarations.
func Parse(comment string) *DocComment {
	p := &parser{src: []rune(clean(comment))}
	doc := &DocComment{Body: p.content(false)}
	for p.pos < len(p.src) {
		doc.Tags = append(doc.Tags, p.blockTag())
	}
	return doc
}

// clean drops the comment delimiters and the leading asterisk of each
// line. One space after the asterisk is removed so that indentation inside
// <pre> blocks survives.
func clean(comment string) string {
	s := strings.TrimSpace(comment)
	s = strings.TrimPrefix(s, "/**")
	s = strings.TrimSuffix(s, "*/")
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t\f")
		switch {
		case strings.HasPrefix(trimmed, "*"):
			trimmed = strings.TrimLeft(trimmed, "*")
			lines[i] = strings.TrimPrefix(trimmed, " ")
		case i == 0:
			lines[i] = trimmed
		}
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

type parser struct {
	src []rune
	pos int
}

func (p *parser) peek() rune {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) rune {
	if p.pos+n < len(p.src) {
		return p.src[p.pos+n]
	}
	return 0
}

// atLineStart reports whether only blanks precede pos on its line.
func (p *parser) atLineStart() bool {
	for i := p.pos - 1; i >= 0; i-- {
		switch p.src[i] {
		case '\n':
			return true
		case ' ', '\t', '\f':
		default:
			return false
		}
	}
	return true
}

func (p *parser) skipHorizontal() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\f') {
		p.pos++
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) word(ok func(rune) bool) string {
	start := p.pos
	for p.pos < len(p.src) && ok(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func isTagChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == ':' || r == '_'
}

func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

// reference reads a program element reference such as java.util.List#add(int, E).
// Blanks inside the parameter list belong to the reference.
func (p *parser) reference() string {
	start, depth := p.pos, 0
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == '}' && depth == 0:
			return string(p.src[start:p.pos])
		case unicode.IsSpace(r) && depth == 0:
			return string(p.src[start:p.pos])
		}
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// content reads description text. Inside an inline tag it stops before the
// closing brace; otherwise it stops before a block tag at the start of a line.
func (p *parser) content(inline bool) []Node {
	var nodes []Node
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, Text{Content: text.String()})
			text.Reset()
		}
	}
	depth := 0
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		switch {
		case !inline && r == '@' && p.atLineStart():
			flush()
			return nodes
		case r == '{' && p.peekAt(1) == '@':
			flush()
			nodes = append(nodes, p.inlineTag())
		case r == '}' && inline && depth == 0:
			flush()
			return nodes
		case r == '<' && p.startsElement():
			flush()
			if n := p.element(); n != nil {
				nodes = append(nodes, n)
			}
		case r == '&':
			if e, ok := p.entity(); ok {
				flush()
				nodes = append(nodes, e)
				continue
			}
			text.WriteRune(r)
			p.pos++
		default:
			if r == '{' {
				depth++
			} else if r == '}' && depth > 0 {
				depth--
			}
			text.WriteRune(r)
			p.pos++
		}
	}
	flush()
	return nodes
}

func (p *parser) inlineTag() Node {
	p.pos += 2
	name := p.word(isTagChar)
	var n Node
	switch name {
	case "code", "literal":
		p.skipHorizontal()
		n = Code{Content: p.balanced(), Literal: name == "literal"}
	case "link", "linkplain":
		p.skipSpace()
		ref := p.reference()
		p.skipSpace()
		var label []Node
		if p.peek() != '}' {
			label = p.content(true)
		}
		n = Link{Reference: ref, Label: label, Plain: name == "linkplain"}
	case "value":
		p.skipSpace()
		n = Value{Reference: p.reference()}
		p.balanced()
	case "inheritDoc":
		n = InheritDoc{}
		p.balanced()
	case "docRoot":
		n = DocRoot{}
		p.balanced()
	default:
		p.skipSpace()
		n = UnknownInline{Name: name, Content: strings.TrimSpace(p.balanced())}
	}
	if p.peek() == '}' {
		p.pos++
	}
	return n
}

// balanced reads up to the brace that closes the current inline tag,
// leaving it unread.
func (p *parser) balanced() string {
	start, depth := p.pos, 0
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return string(p.src[start:p.pos])
			}
			depth--
		}
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *parser) blockTag() *Tag {
	p.pos++
	tag := &Tag{Name: p.word(isTagChar)}
	p.skipHorizontal()
	switch tag.Name {
	case "param":
		if p.peek() == '<' {
			p.pos++
			tag.TypeParam = true
			tag.Arg = p.word(isIdentChar)
			if p.peek() == '>' {
				p.pos++
			}
		} else {
			tag.Arg = p.word(isIdentChar)
		}
	case "throws", "exception":
		tag.Arg = p.reference()
	case "serialField":
		tag.Arg = p.word(isIdentChar)
		p.skipHorizontal()
		tag.Type = p.reference()
	case "see":
		if r := p.peek(); r != '"' && r != '<' {
			tag.Arg = p.reference()
		}
	}
	p.skipHorizontal()
	tag.Description = p.content(false)
	return tag
}

func (p *parser) startsElement() bool {
	r := p.peekAt(1)
	return unicode.IsLetter(r) || r == '/' || r == '!'
}

// element reads an HTML tag. Comments are dropped and yield nil.
func (p *parser) element() Node {
	if p.peekAt(1) == '!' {
		end := strings.Index(string(p.src[p.pos:]), "-->")
		if end < 0 {
			p.pos = len(p.src)
		} else {
			p.pos += len([]rune(string(p.src[p.pos:])[:end+3]))
		}
		return nil
	}
	p.pos++
	if p.peek() == '/' {
		p.pos++
		name := p.word(isIdentChar)
		p.skipTo('>')
		return EndElement{Name: strings.ToLower(name)}
	}
	el := StartElement{Name: strings.ToLower(p.word(isIdentChar))}
	for p.pos < len(p.src) {
		p.skipSpace()
		switch p.peek() {
		case '>':
			p.pos++
			return el
		case '/':
			p.pos++
			el.SelfClose = true
			continue
		case 0:
			return el
		}
		attr := Attribute{Name: strings.ToLower(p.word(func(r rune) bool {
			return !unicode.IsSpace(r) && r != '=' && r != '>' && r != '/'
		}))}
		if attr.Name == "" {
			p.pos++
			continue
		}
		p.skipSpace()
		if p.peek() == '=' {
			p.pos++
			p.skipSpace()
			attr.Value = p.attrValue()
		}
		el.Attributes = append(el.Attributes, attr)
	}
	return el
}

func (p *parser) attrValue() string {
	if q := p.peek(); q == '"' || q == '\'' {
		p.pos++
		v := p.word(func(r rune) bool { return r != q })
		if p.peek() == q {
			p.pos++
		}
		return v
	}
	return p.word(func(r rune) bool { return !unicode.IsSpace(r) && r != '>' })
}

func (p *parser) skipTo(r rune) {
	for p.pos < len(p.src) && p.src[p.pos] != r {
		p.pos++
	}
	if p.pos < len(p.src) {
		p.pos++
	}
}

// entity reads &name; &#n; or &#xh;. A bare ampersand is not an entity.
func (p *parser) entity() (Entity, bool) {
	i := p.pos + 1
	if i < len(p.src) && p.src[i] == '#' {
		i++
		if i < len(p.src) && (p.src[i] == 'x' || p.src[i] == 'X') {
			i++
		}
	}
	start := p.pos + 1
	for i < len(p.src) && (unicode.IsLetter(p.src[i]) || unicode.IsDigit(p.src[i])) {
		i++
	}
	if i >= len(p.src) || p.src[i] != ';' || i == start {
		return Entity{}, false
	}
	name := string(p.src[start:i])
	if name == "#" || name == "#x" || name == "#X" {
		return Entity{}, false
	}
	p.pos = i + 1
	return Entity{Name: name}, true
}
