package parser

import (
	"errors"
	"fmt"
	"strings"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single problem found while parsing. Key identifies the
// kind of problem; Args are the values substituted into its message.
type Diagnostic struct {
	Pos      Position
	Severity Severity
	Key      string
	Args     []any
}

func (d Diagnostic) Message() string {
	return FormatMessage(d.Key, d.Args...)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message())
}

// Log receives diagnostics from the parser.
type Log interface {
	Error(pos Position, key string, args ...any)
	Warning(pos Position, key string, args ...any)
}

type diagKey struct {
	offset int
	key    string
}

// Diagnostics is a Log that collects everything it receives. Only the first
// error at an offset is kept, whatever its key; a warning is dropped when
// one with the same offset and key came before.
type Diagnostics struct {
	list     []Diagnostic
	errorsAt map[int]bool
	seen     map[diagKey]bool
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{errorsAt: make(map[int]bool), seen: make(map[diagKey]bool)}
}

func (d *Diagnostics) Error(pos Position, key string, args ...any) {
	d.add(Diagnostic{Pos: pos, Severity: SeverityError, Key: key, Args: args})
}

func (d *Diagnostics) Warning(pos Position, key string, args ...any) {
	d.add(Diagnostic{Pos: pos, Severity: SeverityWarning, Key: key, Args: args})
}

func (d *Diagnostics) add(diag Diagnostic) {
	if diag.Severity == SeverityError {
		if d.errorsAt[diag.Pos.Offset] {
			return
		}
		d.errorsAt[diag.Pos.Offset] = true
	} else {
		k := diagKey{diag.Pos.Offset, diag.Key}
		if d.seen[k] {
			return
		}
		d.seen[k] = true
	}
	d.list = append(d.list, diag)
}

func (d *Diagnostics) All() []Diagnostic {
	return d.list
}

// ErrorCount returns the number of error-severity diagnostics.
func (d *Diagnostics) ErrorCount() int {
	n := 0
	for _, diag := range d.list {
		if diag.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Err joins all error diagnostics into one error, or returns nil.
func (d *Diagnostics) Err() error {
	var errs []error
	for _, diag := range d.list {
		if diag.Severity == SeverityError {
			errs = append(errs, errors.New(diag.String()))
		}
	}
	return errors.Join(errs...)
}

var messages = map[string]string{
	"expected":                                "%s expected",
	"expected2":                               "%s or %s expected",
	"expected3":                               "%s, %s, or %s expected",
	"premature.eof":                           "reached end of file while parsing",
	"illegal.start.of.expr":                   "illegal start of expression",
	"illegal.start.of.type":                   "illegal start of type",
	"illegal.char":                            "illegal character: %s",
	"illegal.esc.char":                        "illegal escape character",
	"illegal.unicode.esc":                     "illegal unicode escape",
	"illegal.line.end.in.char.lit":            "illegal line end in character literal",
	"unclosed.str.lit":                        "unclosed string literal",
	"unclosed.char.lit":                       "unclosed character literal",
	"unclosed.comment":                        "unclosed comment",
	"empty.char.lit":                          "empty character literal",
	"malformed.fp.lit":                        "malformed floating point literal",
	"invalid.hex.number":                      "hexadecimal numbers must contain at least one hexadecimal digit",
	"int.number.too.large":                    "integer number too large: %s",
	"fp.number.too.large":                     "floating point number too large",
	"fp.number.too.small":                     "floating point number too small",
	"not.stmt":                                "not a statement",
	"orphaned":                                "orphaned %s",
	"else.without.if":                         "'else' without 'if'",
	"catch.without.try":                       "'catch' without 'try'",
	"finally.without.try":                     "'finally' without 'try'",
	"try.without.catch.or.finally":            "'try' without 'catch' or 'finally'",
	"repeated.modifier":                       "repeated modifier",
	"mod.not.allowed.here":                    "modifier %s not allowed here",
	"local.enum":                              "enum types must not be local",
	"dot.class.expected":                      "'.class' expected",
	"array.dimension.missing":                 "array dimension missing",
	"cannot.create.array.with.type.arguments": "cannot create array with type arguments",
	"invalid.meth.decl.ret.type.req":          "invalid method declaration; return type required",
	"varargs.must.be.last":                    "varargs parameter must be the last parameter",
	"too.deeply.nested":                       "input too deeply nested",
	"assert.as.identifier":                    "as of release 1.4, 'assert' is a keyword, and may not be used as an identifier",
	"enum.as.identifier":                      "as of release 5, 'enum' is a keyword, and may not be used as an identifier",
	"assert.not.supported.in.source":          "assertions are not supported in -source %s",
	"enums.not.supported.in.source":           "enums are not supported in -source %s",
	"generics.not.supported.in.source":        "generics are not supported in -source %s",
	"varargs.not.supported.in.source":         "variable-arity methods are not supported in -source %s",
	"foreach.not.supported.in.source":         "for-each loops are not supported in -source %s",
	"static.import.not.supported.in.source":   "static import declarations are not supported in -source %s",
	"annotations.not.supported.in.source":     "annotations are not supported in -source %s",
}

// FormatMessage renders the message for a diagnostic key. Unknown keys are
// rendered as the key followed by the arguments.
func FormatMessage(key string, args ...any) string {
	format, ok := messages[key]
	if !ok {
		if len(args) == 0 {
			return key
		}
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = fmt.Sprint(a)
		}
		return key + ": " + strings.Join(parts, ", ")
	}
	return fmt.Sprintf(format, args...)
}
