// Package frontmatter separates a leading metadata block from a Markdown
// document body.
//
// A block starts with a first line of "---" and ends at the next "---"
// line. It is decoded as YAML; when that fails, each "key: value" line is
// read on its own, which accepts the loose syntax hand-written headers often
// use (unquoted colons, stray quotes).
package frontmatter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/yamlutil"
)

const delimiter = "---"

// Well-known keys.
const (
	keyTitle = "title"
	keyDate  = "date"
	keyTags  = "tags"
)

// Meta holds the metadata of one document.
type Meta struct {
	Title string            `yaml:"title,omitempty"`
	Date  string            `yaml:"date,omitempty"`
	Tags  []string          `yaml:"tags,omitempty"`
	Extra map[string]string `yaml:"extra,omitempty"`
}

// IsZero reports whether no metadata was found.
func (m Meta) IsZero() bool {
	return m.Title == "" && m.Date == "" && len(m.Tags) == 0 && len(m.Extra) == 0
}

// Split returns the metadata and the body of content. Without a complete
// block, Meta is zero and body is content unchanged. The body is trimmed of
// surrounding whitespace when a block was removed.
func Split(content string) (meta Meta, body string) {
	block, body, ok := cut(content)
	if !ok {
		return Meta{}, content
	}
	return parse(block), strings.TrimSpace(body)
}

// cut splits content into the text between the delimiters and the rest.
func cut(content string) (block, rest string, ok bool) {
	first, after, found := strings.Cut(content, "\n")
	if !found || strings.TrimRight(first, " \t\r") != delimiter {
		return "", "", false
	}

	lines := strings.SplitAfter(after, "\n")
	for i, line := range lines {
		if strings.TrimRight(line, " \t\r\n") == delimiter {
			return strings.Join(lines[:i], ""), strings.Join(lines[i+1:], ""), true
		}
	}
	return "", "", false
}

func parse(block string) Meta {
	if fields, err := yamlutil.UnmarshalMapping([]byte(block)); err == nil {
		return fromMapping(fields)
	}
	return fromLines(block)
}

func fromMapping(fields map[string]any) Meta {
	var meta Meta
	for key, value := range fields {
		key = strings.TrimSpace(key)
		switch key {
		case keyTitle:
			meta.Title = scalar(value)
		case keyDate:
			meta.Date = scalar(value)
		case keyTags:
			meta.Tags = tagList(value)
		default:
			meta.setExtra(key, scalar(value))
		}
	}
	return meta
}

// fromLines reads "key: value" lines, splitting at the first colon.
func fromLines(block string) Meta {
	var meta Meta
	for _, line := range strings.Split(block, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = unquote(value)
		switch key {
		case keyTitle:
			meta.Title = value
		case keyDate:
			meta.Date = value
		case keyTags:
			meta.Tags = splitTags(value)
		default:
			meta.setExtra(key, value)
		}
	}
	return meta
}

func (m *Meta) setExtra(key, value string) {
	if key == "" {
		return
	}
	if m.Extra == nil {
		m.Extra = make(map[string]string)
	}
	m.Extra[key] = value
}

func scalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format(time.DateOnly)
		}
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// tagList accepts a YAML sequence or a comma separated string.
func tagList(value any) []string {
	switch v := value.(type) {
	case []any:
		tags := make([]string, 0, len(v))
		for _, t := range v {
			if s := scalar(t); s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	case nil:
		return nil
	default:
		return splitTags(scalar(v))
	}
}

// splitTags splits "a, b" or "[a, b]" into trimmed, unquoted tags.
func splitTags(value string) []string {
	var tags []string
	for _, t := range strings.Split(value, ",") {
		t = unquote(strings.Trim(strings.TrimSpace(t), "[]"))
		if t != "" && !slices.Contains(tags, t) {
			tags = append(tags, t)
		}
	}
	return tags
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}
