package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dhamidi/jparse/java/parser"
)

func TestLineEncoder(t *testing.T) {
	src := `package p;
public class A {
  private static final int X = 1, Y[] = {};
  /** @deprecated */
  public A(int a, String... rest) {}
  protected abstract <T> java.util.List<T> list(T[] xs);
  enum K { ONE, TWO }
  interface I { void f(); }
}
`
	unit := parseUnit(t, "A.java", []byte(src))

	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(unit); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"class\tp.A\tpublic",
		"field\tX\tint\tprivate,static,final",
		"field\tY\tint[]\tprivate,static,final",
		"constructor\tA\tint,String...\tpublic,deprecated",
		"method\tlist\tjava.util.List<T>\tT[]\tprotected,abstract",
		"enum\tp.A.K\t-",
		"constant\tONE",
		"constant\tTWO",
		"interface\tp.A.I\t-",
		"method\tf\tvoid\t-\t-",
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLineEncoderNeedsUnit(t *testing.T) {
	p := parser.ParseExpression(strings.NewReader("a + b"))
	node, err := p.Finish()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(node); err == nil {
		t.Error("expected an error for a non-unit node")
	}
}

func TestSignature(t *testing.T) {
	unit := parseUnit(t, "S.java", []byte("class S { S(int a, String... b) {} <T> java.util.List<T> list(T[] xs, int[] ys) { return null; } void run() {} }"))
	body := unit.Child(0).Last()
	tests := []struct {
		member *parser.Node
		want   string
	}{
		{body.Child(0), "S(int, String...)"},
		{body.Child(1), "java.util.List<T> list(T[], int[])"},
		{body.Child(2), "void run()"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Signature(tt.member); got != tt.want {
				t.Errorf("Signature = %q, want %q", got, tt.want)
			}
		})
	}
}
