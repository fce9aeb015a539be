package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// literal converts the current literal token, with an optional "-" prefix,
// into a Literal node starting at pos. A value out of range yields an
// erroneous node.
func (p *Parser) literal(pos Position, prefix string) *Node {
	tok := p.tok()
	if prefix != "" {
		tok.Literal = prefix + tok.Literal
		tok.Span.Start = pos
	}

	value, key := literalValue(tok, prefix)
	var n *Node
	if key != "" {
		var args []any
		if key == "int.number.too.large" {
			args = append(args, prefix+tok.Value)
		}
		p.log.Error(p.tok().Pos(), key, args...)
		n = p.errorNode(pos, key, args)
	} else {
		n = p.at(KindLiteral, pos)
		n.Token = &tok
		n.Value = value
	}
	if p.endPositions {
		n.Span.End = tok.End()
	}
	p.next()
	return n
}

// literalValue returns the canonical value of a literal token, or the key of
// the diagnostic explaining why it has none.
func literalValue(tok Token, prefix string) (string, string) {
	switch tok.Kind {
	case TokenIntLiteral:
		v, err := parseInteger(prefix+tok.Value, tok.Radix, 32)
		if err != nil {
			return "", "int.number.too.large"
		}
		return strconv.FormatInt(v, 10), ""
	case TokenLongLiteral:
		v, err := parseInteger(prefix+tok.Value, tok.Radix, 64)
		if err != nil {
			return "", "int.number.too.large"
		}
		return strconv.FormatInt(v, 10), ""
	case TokenFloatLiteral, TokenDoubleLiteral:
		bits := 64
		if tok.Kind == TokenFloatLiteral {
			bits = 32
		}
		f, err := strconv.ParseFloat(tok.Value, bits)
		if err != nil && !isRangeError(err) {
			// The lexer has already reported the malformed literal.
			return "NaN", ""
		}
		switch {
		case math.IsInf(f, 0):
			return "", "fp.number.too.large"
		case f == 0 && !isZeroLiteral(tok.Value):
			return "", "fp.number.too.small"
		}
		return strconv.FormatFloat(f, 'g', -1, bits), ""
	case TokenTrue:
		return "true", ""
	case TokenFalse:
		return "false", ""
	case TokenNull:
		return "null", ""
	}
	return tok.Value, ""
}

// parseInteger converts digits in the given radix. Decimal literals must fit
// the signed range; octal and hex literals may use the full unsigned range.
func parseInteger(s string, radix, bits int) (int64, error) {
	if radix == 10 {
		return strconv.ParseInt(s, 10, bits)
	}
	u, err := strconv.ParseUint(s, radix, bits)
	if err != nil {
		return 0, err
	}
	if bits == 32 {
		return int64(int32(uint32(u))), nil
	}
	return int64(u), nil
}

func isRangeError(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

func isZeroLiteral(s string) bool {
	radix := 10
	if len(s) > 1 && (s[1] == 'x' || s[1] == 'X') {
		radix = 16
		s = s[2:]
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '0' || c == '.' {
			continue
		}
		return digitValue(c, radix) <= 0
	}
	return true
}

// foldStrings collapses a left-nested chain of '+' whose operands are all
// string literals. It reports false if t is not such a chain.
func foldStrings(t *Node) (string, bool) {
	var parts []string
	for {
		switch {
		case t.Kind == KindLiteral && t.Token.Kind == TokenStringLiteral:
			var sb strings.Builder
			sb.WriteString(t.Value)
			for i := len(parts) - 1; i >= 0; i-- {
				sb.WriteString(parts[i])
			}
			return sb.String(), true
		case t.Kind == KindBinaryExpr && t.Op == TokenPlus:
			rhs := t.Children[1]
			if rhs.Kind == KindLiteral && rhs.Token.Kind == TokenStringLiteral {
				parts = append(parts, rhs.Value)
				t = t.Children[0]
				continue
			}
		}
		return "", false
	}
}

// QuoteString returns s as a Java string literal.
func QuoteString(s string) string {
	return quote(s, '"')
}

// QuoteChar returns s as a Java char literal.
func QuoteChar(s string) string {
	return quote(s, '\'')
}

func quote(s string, q byte) string {
	var sb strings.Builder
	sb.WriteByte(q)
	for _, r := range s {
		switch r {
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		case '\\':
			sb.WriteString(`\\`)
		case '"', '\'':
			if byte(r) == q {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		default:
			if r < 0x20 || r == 0x7f || !unicode.IsPrint(r) {
				if r > 0xffff {
					// Encode as a surrogate pair.
					r -= 0x10000
					fmt.Fprintf(&sb, `\u%04x\u%04x`, 0xd800+(r>>10), 0xdc00+(r&0x3ff))
				} else {
					fmt.Fprintf(&sb, `\u%04x`, r)
				}
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}
