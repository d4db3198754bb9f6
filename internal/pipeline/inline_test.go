package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2html/ast"
)

func text(s string) *ast.Text { return &ast.Text{Content: s} }

func TestParseInlines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []ast.Inline
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "plain text",
			input: "hello world",
			want:  []ast.Inline{text("hello world")},
		},
		{
			name:  "code span",
			input: "run `go test` now",
			want: []ast.Inline{
				text("run "), &ast.Code{Content: "go test"}, text(" now"),
			},
		},
		{
			name:  "code span content is literal",
			input: "`**not bold** <b>`",
			want:  []ast.Inline{&ast.Code{Content: "**not bold** <b>"}},
		},
		{
			name:  "empty code span",
			input: "``",
			want:  []ast.Inline{&ast.Code{}},
		},
		{
			name:  "unterminated code span",
			input: "a `b",
			want:  []ast.Inline{text("a "), text("`"), text("b")},
		},
		{
			name:  "bold",
			input: "**a**",
			want:  []ast.Inline{&ast.Bold{Children: []ast.Inline{text("a")}}},
		},
		{
			name:  "underscore bold",
			input: "__a__",
			want:  []ast.Inline{&ast.Bold{Children: []ast.Inline{text("a")}}},
		},
		{
			name:  "empty bold",
			input: "****",
			want:  []ast.Inline{&ast.Bold{}},
		},
		{
			name:  "unterminated bold",
			input: "**a",
			want:  []ast.Inline{text("*"), text("*"), text("a")},
		},
		{
			name:  "italic",
			input: "*a* and _b_",
			want: []ast.Inline{
				&ast.Italic{Children: []ast.Inline{text("a")}},
				text(" and "),
				&ast.Italic{Children: []ast.Inline{text("b")}},
			},
		},
		{
			name:  "unterminated italic",
			input: "*a",
			want:  []ast.Inline{text("*"), text("a")},
		},
		{
			name:  "bold containing italic",
			input: "**a *b* c**",
			want: []ast.Inline{
				&ast.Bold{Children: []ast.Inline{
					text("a "),
					&ast.Italic{Children: []ast.Inline{text("b")}},
					text(" c"),
				}},
			},
		},
		{
			name:  "italic skips bold delimiter",
			input: "*a **b** c*",
			want: []ast.Inline{
				&ast.Italic{Children: []ast.Inline{
					text("a "),
					&ast.Bold{Children: []ast.Inline{text("b")}},
					text(" c"),
				}},
			},
		},
		{
			name:  "mismatched delimiters",
			input: "*a_",
			want:  []ast.Inline{text("*"), text("a"), text("_")},
		},
		{
			name:  "link",
			input: "[Go](https://go.dev)",
			want: []ast.Inline{
				&ast.Link{URL: "https://go.dev", Children: []ast.Inline{text("Go")}},
			},
		},
		{
			name:  "link with title",
			input: `[Go](https://go.dev "The Go site")`,
			want: []ast.Inline{
				&ast.Link{URL: "https://go.dev", Title: "The Go site", Children: []ast.Inline{text("Go")}},
			},
		},
		{
			name:  "link text is parsed",
			input: "[**b** `c`](u)",
			want: []ast.Inline{
				&ast.Link{URL: "u", Children: []ast.Inline{
					&ast.Bold{Children: []ast.Inline{text("b")}},
					text(" "),
					&ast.Code{Content: "c"},
				}},
			},
		},
		{
			name:  "link without closing bracket",
			input: "[text without closing",
			want:  []ast.Inline{text("["), text("text without closing")},
		},
		{
			name:  "bracket not followed by paren",
			input: "[a] (b)",
			want:  []ast.Inline{text("["), text("a] (b)")},
		},
		{
			name:  "link with empty destination",
			input: "[a]()",
			want:  []ast.Inline{text("["), text("a]()")},
		},
		{
			name:  "destination with spaces but no title",
			input: "[a](b c)",
			want:  []ast.Inline{text("["), text("a](b c)")},
		},
		{
			name:  "destination ends at first paren",
			input: "[w](https://en.wikipedia.org/wiki/Go_(game))",
			want: []ast.Inline{
				&ast.Link{URL: "https://en.wikipedia.org/wiki/Go_(game", Children: []ast.Inline{text("w")}},
				text(")"),
			},
		},
		{
			name:  "image",
			input: "![logo](logo.png)",
			want:  []ast.Inline{&ast.Image{URL: "logo.png", Alt: "logo"}},
		},
		{
			name:  "image alt is literal",
			input: `![*a*](x.png "T")`,
			want:  []ast.Inline{&ast.Image{URL: "x.png", Alt: "*a*", Title: "T"}},
		},
		{
			name:  "bang without image",
			input: "wow! ok",
			want:  []ast.Inline{text("wow"), text("!"), text(" ok")},
		},
		{
			name:  "named entity",
			input: "a &amp; b",
			want: []ast.Inline{
				text("a "), &ast.RawHTMLInline{Content: "&amp;"}, text(" b"),
			},
		},
		{
			name:  "numeric and hex entities",
			input: "&#169;&#x1F600;",
			want: []ast.Inline{
				&ast.RawHTMLInline{Content: "&#169;"},
				&ast.RawHTMLInline{Content: "&#x1F600;"},
			},
		},
		{
			name:  "bare ampersand",
			input: "a & b",
			want:  []ast.Inline{text("a "), text("&"), text(" b")},
		},
		{
			name:  "allowed inline tags",
			input: "<kbd>Ctrl</kbd>",
			want: []ast.Inline{
				&ast.RawHTMLInline{Content: "<kbd>"},
				text("Ctrl"),
				&ast.RawHTMLInline{Content: "</kbd>"},
			},
		},
		{
			name:  "self closing tag with attributes",
			input: `<span class="x" />`,
			want:  []ast.Inline{&ast.RawHTMLInline{Content: `<span class="x" />`}},
		},
		{
			name:  "disallowed tag is text",
			input: "<script>",
			want:  []ast.Inline{text("<"), text("script>")},
		},
		{
			name:  "event handler attribute is text",
			input: `<span onclick="x()">`,
			want:  []ast.Inline{text("<"), text(`span onclick="x()">`)},
		},
		{
			name:  "encoded script URL in attribute is text",
			input: `<data value="&#106;avascript:x()">`,
			want: []ast.Inline{
				text("<"),
				text(`data value="`),
				&ast.RawHTMLInline{Content: "&#106;"},
				text(`avascript:x()">`),
			},
		},
		{
			name:  "less than in prose",
			input: "a < b",
			want:  []ast.Inline{text("a "), text("<"), text(" b")},
		},
		{
			name:  "underscores inside words",
			input: "snake_case_name",
			want: []ast.Inline{
				text("snake"),
				&ast.Italic{Children: []ast.Inline{text("case")}},
				text("name"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseInlines(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseInlines(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestInlineParser_Options(t *testing.T) {
	t.Parallel()

	t.Run("unsafe html passes any tag", func(t *testing.T) {
		t.Parallel()

		p := NewInlineParser(Config{UnsafeHTML: true})
		got := p.Parse(`<script src="x.js">`)
		want := []ast.Inline{&ast.RawHTMLInline{Content: `<script src="x.js">`}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("extra inline tags", func(t *testing.T) {
		t.Parallel()

		p := NewInlineParser(Config{InlineTags: []string{"Sl-Icon"}})
		got := p.Parse(`<sl-icon name="gear"></sl-icon>`)
		want := []ast.Inline{
			&ast.RawHTMLInline{Content: `<sl-icon name="gear">`},
			&ast.RawHTMLInline{Content: `</sl-icon>`},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestInlineParser_MaxDepth(t *testing.T) {
	t.Parallel()

	t.Run("nesting beyond limit stays literal", func(t *testing.T) {
		t.Parallel()

		var warnings []error
		p := NewInlineParser(Config{MaxDepth: 1, Warn: func(err error) { warnings = append(warnings, err) }})

		got := p.Parse("**a *b* c**")
		want := []ast.Inline{
			&ast.Bold{Children: []ast.Inline{
				text("a "), text("*"), text("b"), text("*"), text(" c"),
			}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
		if len(warnings) != 1 {
			t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
		}
		if !errors.Is(warnings[0], ErrNestingTooDeep) {
			t.Errorf("warning = %v, want ErrNestingTooDeep", warnings[0])
		}
	})

	t.Run("unbalanced brackets terminate", func(t *testing.T) {
		t.Parallel()

		input := strings.Repeat("[", 5000) + "x" + strings.Repeat("](u)", 5000)
		if got := ParseInlines(input); len(got) == 0 {
			t.Error("ParseInlines() returned no nodes")
		}
	})
}

func TestParseInlines_CoversInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"**a *b* c**",
		"*a **b** c*",
		"[x](y) ![z](w) `c` <b>d</b> &amp; e",
		"_*_*_*",
		"![](",
		"<<>>&&;;",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			got := NewRenderer(Config{UnsafeHTML: true}).RenderInlines(ParseInlines(input))
			if got == "" {
				t.Errorf("RenderInlines(ParseInlines(%q)) is empty", input)
			}
		})
	}
}
