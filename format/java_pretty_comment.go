package format

import (
	"strings"

	"github.com/dhamidi/jparse/java/parser"
)

// emitCommentsBefore prints, each on its own line, the comments that start
// before pos in the source.
func (p *JavaPrettyPrinter) emitCommentsBefore(pos parser.Position) {
	if !pos.IsValid() {
		return
	}
	for p.commentIndex < len(p.comments) {
		comment := p.comments[p.commentIndex]
		if comment.Span.Start.Offset >= pos.Offset {
			break
		}
		p.emitComment(comment)
	}
}

func (p *JavaPrettyPrinter) emitRemainingComments() {
	for p.commentIndex < len(p.comments) {
		p.emitComment(p.comments[p.commentIndex])
	}
}

func (p *JavaPrettyPrinter) emitComment(comment parser.Token) {
	if !p.atLineStart {
		p.newline()
	}
	if comment.Span.Start.Line > p.lastLine+1 && p.column == 0 && p.commentIndex > 0 {
		p.write("\n")
	}
	p.writeIndent()
	p.write(reindentComment(comment.Literal, strings.Repeat(p.indentStr, p.indent)))
	p.newline()
	p.lastLine = comment.Span.End.Line
	if comment.Kind == parser.TokenLineComment || !comment.Span.End.IsValid() {
		p.lastLine = comment.Span.Start.Line
	}
	p.commentIndex++
}

// emitTrailingComment prints a comment that sat on the same source line as
// end, right after the code, so "x++; // bump" keeps its shape.
func (p *JavaPrettyPrinter) emitTrailingComment(end parser.Position) {
	if !end.IsValid() || p.commentIndex >= len(p.comments) {
		return
	}
	comment := p.comments[p.commentIndex]
	if comment.Span.Start.Line != end.Line || comment.Span.Start.Offset < end.Offset {
		return
	}
	if comment.Kind == parser.TokenComment && strings.Contains(comment.Literal, "\n") {
		return
	}
	p.write(" ")
	p.write(comment.Literal)
	p.lastLine = comment.Span.Start.Line
	p.commentIndex++
}

// reindentComment shifts the continuation lines of a block comment so that
// its leading stars line up under the new indentation.
func reindentComment(text, indent string) string {
	if !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimLeft(lines[i], " \t")
		if strings.HasPrefix(trimmed, "*") {
			lines[i] = indent + " " + trimmed
		} else {
			lines[i] = indent + trimmed
		}
	}
	return strings.Join(lines, "\n")
}

// hasCommentsBefore reports whether an unprinted comment starts before pos.
func (p *JavaPrettyPrinter) hasCommentsBefore(pos parser.Position) bool {
	return pos.IsValid() && p.commentIndex < len(p.comments) &&
		p.comments[p.commentIndex].Span.Start.Offset < pos.Offset
}
