package javadoc

import "testing"

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain",
			input: "/** Counts things. */",
			want:  "Counts things.",
		},
		{
			name:  "inline markup",
			input: "/** First <b>bold</b> &amp; {@code x}.<p>Second {@link Foo#bar() bar} and {@link #size()}. */",
			want:  "First **bold** & `x`.\n\nSecond bar and `size()`.",
		},
		{
			name:  "pre block",
			input: "/**\n * Example:\n * <pre>\n *   int x = 1;\n * </pre>\n */",
			want:  "Example:\n\n```\n  int x = 1;\n```",
		},
		{
			name: "block tags",
			input: `/**
 * Returns x.
 *
 * @param <T> the type
 * @param x the value
 * @return x
 * @throws IllegalStateException if bad
 * @deprecated
 */`,
			want: "Returns x.\n\n**Deprecated.**\n\n**Parameters:**\n- `<T>` the type\n- `x` the value\n\n" +
				"**Returns:** x\n\n**Throws:**\n- `IllegalStateException` if bad",
		},
		{
			name:  "see and since",
			input: "/**\n * @since 1.5\n * @see List#add(int, E)\n * @see \"The Book\"\n * @author A\n * @author B\n */",
			want:  "**Since:** 1.5\n\n**Author:** A, B\n\n**See Also:** `List.add(int, E)`, \"The Book\"",
		},
		{
			name:  "unknown tag",
			input: "/** @todo later */",
			want:  "**@todo** later",
		},
		{
			name:  "empty",
			input: "/** */",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Markdown(Parse(tt.input)); got != tt.want {
				t.Errorf("got:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}
