package javadoc

import "strings"

// IsDeprecated reports whether a raw documentation comment marks its
// declaration deprecated. Like javac, it only honors @deprecated at the
// start of a line, after blanks and asterisks, and followed by a blank or
// the end of the comment.
func IsDeprecated(comment string) bool {
	s := strings.TrimPrefix(comment, "/**")
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimLeft(line, " \t\f\r")
		line = strings.TrimLeft(line, "*")
		line = strings.TrimLeft(line, " \t\f\r")
		rest, ok := strings.CutPrefix(line, "@deprecated")
		if !ok {
			continue
		}
		if rest == "" || strings.HasPrefix(rest, "*/") {
			return true
		}
		switch rest[0] {
		case ' ', '\t', '\f', '\r':
			return true
		}
	}
	return false
}
