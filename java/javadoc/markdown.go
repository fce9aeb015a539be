package javadoc

import (
	"html"
	"regexp"
	"strings"
)

// Markdown renders a comment for display in an editor: the description
// followed by one section per kind of block tag.
func Markdown(doc *DocComment) string {
	var sections []string
	if body := normalize(renderNodes(doc.Body)); body != "" {
		sections = append(sections, body)
	}
	if tags := doc.TagsNamed("deprecated"); len(tags) > 0 {
		sections = append(sections, strings.TrimSpace("**Deprecated.** "+inline(tags[0].Description)))
	}

	var params, throws []string
	for _, t := range doc.Tags {
		switch t.Name {
		case "param":
			name := t.Arg
			if t.TypeParam {
				name = "<" + name + ">"
			}
			params = append(params, item("`"+name+"`", t.Description))
		case "throws", "exception":
			throws = append(throws, item("`"+t.Arg+"`", t.Description))
		}
	}
	if len(params) > 0 {
		sections = append(sections, "**Parameters:**\n"+strings.Join(params, "\n"))
	}
	if tags := doc.TagsNamed("return"); len(tags) > 0 {
		sections = append(sections, "**Returns:** "+inline(tags[0].Description))
	}
	if len(throws) > 0 {
		sections = append(sections, "**Throws:**\n"+strings.Join(throws, "\n"))
	}

	for _, s := range []struct{ name, title string }{
		{"since", "Since"},
		{"author", "Author"},
		{"version", "Version"},
	} {
		var values []string
		for _, t := range doc.TagsNamed(s.name) {
			if v := inline(t.Description); v != "" {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			sections = append(sections, "**"+s.title+":** "+strings.Join(values, ", "))
		}
	}

	var refs []string
	for _, t := range doc.TagsNamed("see") {
		ref := inline(t.Description)
		if ref == "" && t.Arg != "" {
			ref = "`" + displayRef(t.Arg) + "`"
		}
		if ref != "" {
			refs = append(refs, ref)
		}
	}
	if len(refs) > 0 {
		sections = append(sections, "**See Also:** "+strings.Join(refs, ", "))
	}

	for _, t := range doc.Tags {
		if t.Known() {
			continue
		}
		sections = append(sections, strings.TrimSpace("**@"+t.Name+"** "+inline(t.Description)))
	}
	return strings.Join(sections, "\n\n")
}

func item(name string, desc []Node) string {
	if d := inline(desc); d != "" {
		return "- " + name + " " + d
	}
	return "- " + name
}

// inline renders nodes on a single line.
func inline(nodes []Node) string {
	return strings.Join(strings.Fields(renderNodes(nodes)), " ")
}

var blankLines = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)

func normalize(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	s = strings.Join(lines, "\n")
	return strings.TrimSpace(blankLines.ReplaceAllString(s, "\n\n"))
}

func renderNodes(nodes []Node) string {
	var sb strings.Builder
	pre, fenced := false, false
	for _, n := range nodes {
		opened := fenced
		fenced = false
		switch n := n.(type) {
		case Text:
			if pre {
				content := n.Content
				if opened {
					content = strings.TrimPrefix(content, "\n")
				}
				sb.WriteString(content)
			} else {
				sb.WriteString(strings.ReplaceAll(n.Content, "`", "\\`"))
			}
		case Code:
			if pre || n.Literal {
				sb.WriteString(n.Content)
			} else {
				sb.WriteString(codeSpan(n.Content))
			}
		case Link:
			label := inline(n.Label)
			switch {
			case label != "":
				sb.WriteString(label)
			case n.Plain:
				sb.WriteString(displayRef(n.Reference))
			default:
				sb.WriteString(codeSpan(displayRef(n.Reference)))
			}
		case Value:
			sb.WriteString(codeSpan(displayRef(n.Reference)))
		case InheritDoc:
		case DocRoot:
		case UnknownInline:
			sb.WriteString(n.Content)
		case Entity:
			sb.WriteString(html.UnescapeString("&" + n.Name + ";"))
		case StartElement:
			switch n.Name {
			case "p":
				sb.WriteString("\n\n")
			case "br":
				sb.WriteString("  \n")
			case "pre":
				pre, fenced = true, true
				sb.WriteString("\n\n```\n")
			case "code", "tt":
				if !pre {
					sb.WriteByte('`')
				}
			case "b", "strong":
				sb.WriteString("**")
			case "i", "em":
				sb.WriteByte('*')
			case "li":
				sb.WriteString("\n- ")
			case "ul", "ol":
				sb.WriteString("\n")
			}
		case EndElement:
			switch n.Name {
			case "pre":
				pre = false
				if !strings.HasSuffix(sb.String(), "\n") {
					sb.WriteByte('\n')
				}
				sb.WriteString("```\n\n")
			case "code", "tt":
				if !pre {
					sb.WriteByte('`')
				}
			case "b", "strong":
				sb.WriteString("**")
			case "i", "em":
				sb.WriteByte('*')
			case "ul", "ol", "p":
				sb.WriteString("\n\n")
			}
		}
	}
	return sb.String()
}

func codeSpan(s string) string {
	if strings.Contains(s, "`") {
		return "`` " + s + " ``"
	}
	return "`" + s + "`"
}

// displayRef turns "List#add(int)" into "List.add(int)" and "#size()"
// into "size()".
func displayRef(ref string) string {
	if strings.HasPrefix(ref, "#") {
		return ref[1:]
	}
	return strings.Replace(ref, "#", ".", 1)
}
