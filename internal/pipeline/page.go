package pipeline

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"html/template"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrPageRender wraps template parse and execution failures.
var ErrPageRender = errors.New("page template rendering failed")

// DefaultExcerptLength is the excerpt size, in characters, shown on the index.
const DefaultExcerptLength = 200

// excerptEllipsis marks a truncated excerpt.
const excerptEllipsis = "..."

// PostPage is the data passed to a post template.
type PostPage struct {
	SiteTitle string
	Title     string
	Date      string
	Tags      []string
	IndexURL  string // Link back to the index; empty hides it
	CSS       string // Placed in a <style> element in the head
	Content   string // Converted fragment, inserted verbatim
}

// IndexEntry is one document listed on the index page.
type IndexEntry struct {
	Title   string
	Date    string // As displayed
	SortKey string // Orders entries; Date is used when empty
	Tags    []string
	URL     string // Relative to the index page
	Excerpt string // Plain text
}

// IndexPage is the data passed to an index template.
type IndexPage struct {
	SiteTitle string
	CSS       string
	Posts     []IndexEntry
}

// Template views. Fields the templates must not escape get html/template
// types here, so callers never handle them.
type (
	postView struct {
		SiteTitle, Title, Date, IndexURL string
		Tags                             []string
		CSS                              template.CSS
		Content                          template.HTML
	}

	indexView struct {
		SiteTitle string
		CSS       template.CSS
		Posts     []IndexEntry
	}
)

// PageRenderer wraps fragments into standalone pages.
type PageRenderer struct {
	post  *template.Template
	index *template.Template
}

// NewPageRenderer parses the post and index templates.
func NewPageRenderer(postTmpl, indexTmpl string) (*PageRenderer, error) {
	post, err := template.New("post").Parse(postTmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing post template: %v", ErrPageRender, err)
	}
	index, err := template.New("index").Parse(indexTmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing index template: %v", ErrPageRender, err)
	}
	return &PageRenderer{post: post, index: index}, nil
}

// RenderPost executes the post template for page.
func (r *PageRenderer) RenderPost(ctx context.Context, page *PostPage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := postView{
		SiteTitle: page.SiteTitle,
		Title:     page.Title,
		Date:      page.Date,
		IndexURL:  page.IndexURL,
		Tags:      page.Tags,
		CSS:       template.CSS(sanitizeCSS(strings.TrimSpace(page.CSS))), // #nosec G203 -- theme or user stylesheet
		Content:   template.HTML(page.Content),                             // #nosec G203 -- renderer output
	}
	return execute(r.post, view)
}

// RenderIndex executes the index template. Posts are listed newest first:
// by sort key, then URL, both descending. page.Posts is not modified.
func (r *PageRenderer) RenderIndex(ctx context.Context, page *IndexPage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := indexView{
		SiteTitle: page.SiteTitle,
		CSS:       template.CSS(sanitizeCSS(strings.TrimSpace(page.CSS))), // #nosec G203 -- theme or user stylesheet
		Posts:     slices.Clone(page.Posts),
	}
	SortIndex(view.Posts)
	return execute(r.index, view)
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// SortIndex orders entries newest first: by sort key (Date when empty),
// then by URL, both descending.
func SortIndex(entries []IndexEntry) {
	slices.SortStableFunc(entries, func(a, b IndexEntry) int {
		if c := cmp.Compare(b.sortKey(), a.sortKey()); c != 0 {
			return c
		}
		return cmp.Compare(b.URL, a.URL)
	})
}

func (e IndexEntry) sortKey() string {
	if e.SortKey != "" {
		return e.SortKey
	}
	return e.Date
}

// Excerpt returns the text of the first <p> element of fragment, with
// whitespace collapsed. Text longer than limit characters is cut and
// followed by "...". Markup inside the paragraph is dropped.
func Excerpt(fragment string, limit int) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	inParagraph := false
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return truncateText(sb.String(), limit)
		case html.StartTagToken:
			if tok := z.Token(); tok.DataAtom == atom.P {
				inParagraph = true
			}
		case html.EndTagToken:
			if inParagraph && z.Token().DataAtom == atom.P {
				return truncateText(sb.String(), limit)
			}
		case html.TextToken:
			if inParagraph {
				sb.WriteString(z.Token().Data)
			}
		}
	}
}

// truncateText collapses whitespace in s and cuts it to limit runes.
func truncateText(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + excerptEllipsis
}
