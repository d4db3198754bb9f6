package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	testPostTmpl  = `<title>{{.Title}}</title>{{with .CSS}}<style>{{.}}</style>{{end}}<i>{{.Date}}</i>{{range .Tags}}<span class="tag">{{.}}</span>{{end}}{{with .IndexURL}}<a href="{{.}}">back</a>{{end}}{{.Content}}`
	testIndexTmpl = `<h1>{{.SiteTitle}}</h1>{{range .Posts}}<a href="{{.URL}}">{{.Title}}</a><p>{{.Excerpt}}</p>{{end}}`
)

func newTestPageRenderer(t *testing.T) *PageRenderer {
	t.Helper()
	r, err := NewPageRenderer(testPostTmpl, testIndexTmpl)
	if err != nil {
		t.Fatalf("NewPageRenderer() error = %v", err)
	}
	return r
}

// ---------------------------------------------------------------------------
// TestPageRenderer_RenderPost - Post pages
// ---------------------------------------------------------------------------

func TestPageRenderer_RenderPost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page PostPage
		want string
	}{
		{
			name: "content inserted verbatim",
			page: PostPage{Title: "Hello", Content: "<h1>Hello</h1>\n\n<p>x</p>"},
			want: "<title>Hello</title><i></i><h1>Hello</h1>\n\n<p>x</p>",
		},
		{
			name: "metadata escaped",
			page: PostPage{Title: "<b>&</b>", Date: "2024", Tags: []string{"a<b"}},
			want: `<title>&lt;b&gt;&amp;&lt;/b&gt;</title><i>2024</i><span class="tag">a&lt;b</span>`,
		},
		{
			name: "css kept as stylesheet",
			page: PostPage{Title: "T", CSS: "\nbody { color: #333; }\n"},
			want: "<title>T</title><style>body { color: #333; }</style><i></i>",
		},
		{
			name: "css cannot close style element",
			page: PostPage{Title: "T", CSS: "a{}</style><script>x</script>"},
			want: `<title>T</title><style>a{}<\/style><script>x<\/script></style><i></i>`,
		},
		{
			name: "index link",
			page: PostPage{Title: "T", IndexURL: "../index.html"},
			want: `<title>T</title><i></i><a href="../index.html">back</a>`,
		},
		{
			name: "script index link filtered",
			page: PostPage{Title: "T", IndexURL: "javascript:alert(1)"},
			want: `<title>T</title><i></i><a href="#ZgotmplZ">back</a>`,
		},
	}

	r := newTestPageRenderer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.RenderPost(context.Background(), &tt.page)
			if err != nil {
				t.Fatalf("RenderPost() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RenderPost() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPageRenderer_RenderIndex - Index page ordering
// ---------------------------------------------------------------------------

func TestPageRenderer_RenderIndex(t *testing.T) {
	t.Parallel()

	posts := []IndexEntry{
		{Title: "Old", Date: "2023-05-01", URL: "old.html", Excerpt: "first"},
		{Title: "New B", Date: "2024-02-01", URL: "b.html"},
		{Title: "New A", Date: "2024-02-01", URL: "a.html"},
		{Title: "Keyed", Date: "1 March 2024", SortKey: "2024-03-01", URL: "k.html"},
	}
	page := &IndexPage{SiteTitle: "Notes & Posts", Posts: posts}

	got, err := newTestPageRenderer(t).RenderIndex(context.Background(), page)
	if err != nil {
		t.Fatalf("RenderIndex() error = %v", err)
	}

	want := `<h1>Notes &amp; Posts</h1>` +
		`<a href="k.html">Keyed</a><p></p>` +
		`<a href="b.html">New B</a><p></p>` +
		`<a href="a.html">New A</a><p></p>` +
		`<a href="old.html">Old</a><p>first</p>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderIndex() mismatch (-want +got):\n%s", diff)
	}
	if posts[0].Title != "Old" {
		t.Error("RenderIndex() reordered the caller's slice")
	}
}

func TestSortIndex(t *testing.T) {
	t.Parallel()

	entries := []IndexEntry{
		{URL: "a.html", Date: "2024-01-01"},
		{URL: "c.html"},
		{URL: "b.html", Date: "2024-01-01"},
		{URL: "d.html", Date: "2025-06-30"},
	}
	SortIndex(entries)

	var got []string
	for _, e := range entries {
		got = append(got, e.URL)
	}
	want := []string{"d.html", "b.html", "a.html", "c.html"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortIndex() order mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestNewPageRenderer / Errors
// ---------------------------------------------------------------------------

func TestNewPageRenderer_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewPageRenderer("{{.Title", testIndexTmpl); !errors.Is(err, ErrPageRender) {
		t.Errorf("bad post template error = %v, want ErrPageRender", err)
	}
	if _, err := NewPageRenderer(testPostTmpl, "{{range}}"); !errors.Is(err, ErrPageRender) {
		t.Errorf("bad index template error = %v, want ErrPageRender", err)
	}

	r, err := NewPageRenderer("{{.Missing}}", testIndexTmpl)
	if err != nil {
		t.Fatalf("NewPageRenderer() error = %v", err)
	}
	if _, err := r.RenderPost(context.Background(), &PostPage{}); !errors.Is(err, ErrPageRender) {
		t.Errorf("RenderPost() unknown field error = %v, want ErrPageRender", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.RenderPost(ctx, &PostPage{}); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderPost() cancelled error = %v, want context.Canceled", err)
	}
	if _, err := r.RenderIndex(ctx, &IndexPage{}); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderIndex() cancelled error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestExcerpt - First paragraph text
// ---------------------------------------------------------------------------

func TestExcerpt(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 250)

	tests := []struct {
		name     string
		fragment string
		limit    int
		want     string
	}{
		{
			name:     "first paragraph after header",
			fragment: "<h1>Title</h1>\n\n<p>Intro text.</p>\n\n<p>Second.</p>",
			limit:    DefaultExcerptLength,
			want:     "Intro text.",
		},
		{
			name:     "inline markup dropped and entities decoded",
			fragment: `<p>Some <strong>bold</strong> &amp; <a href="u">link</a></p>`,
			limit:    DefaultExcerptLength,
			want:     "Some bold & link",
		},
		{
			name:     "no paragraph",
			fragment: "<h2>Only</h2>\n\n<pre><code>x</code></pre>",
			limit:    DefaultExcerptLength,
			want:     "",
		},
		{
			name:     "paragraph inside blockquote counts",
			fragment: "<blockquote>\n<p>quoted</p>\n</blockquote>",
			limit:    DefaultExcerptLength,
			want:     "quoted",
		},
		{
			name:     "long text truncated",
			fragment: "<p>" + long + "</p>",
			limit:    DefaultExcerptLength,
			want:     strings.Repeat("a", 200) + "...",
		},
		{
			name:     "exact limit kept whole",
			fragment: "<p>" + strings.Repeat("b", 200) + "</p>",
			limit:    DefaultExcerptLength,
			want:     strings.Repeat("b", 200),
		},
		{
			name:     "cut counts characters not bytes",
			fragment: "<p>日本語のテキスト</p>",
			limit:    3,
			want:     "日本語...",
		},
		{
			name:     "style block skipped",
			fragment: "<style>\np { color: red; }\n</style>\n\n<p>body</p>",
			limit:    DefaultExcerptLength,
			want:     "body",
		},
		{
			name:     "unclosed paragraph",
			fragment: "<p>trailing  text\nhere",
			limit:    0,
			want:     "trailing text here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Excerpt(tt.fragment, tt.limit); got != tt.want {
				t.Errorf("Excerpt() = %q, want %q", got, tt.want)
			}
		})
	}
}
