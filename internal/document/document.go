// Package document handles whole input files: YAML front matter around a
// Markdown body, and HTML pages that are turned into Markdown first.
package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/qawatake/md2jira/pkg/markdown"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Document is a Markdown source split into front matter and body.
type Document struct {
	// Title is the "title" key of the front matter.
	Title string
	// Issue is the "issue" key of the front matter, a Jira issue key such as PRJ-123.
	Issue string
	// Meta holds every front matter key, including title and issue.
	Meta map[string]any
	// Body is the Markdown after the front matter.
	Body string
}

// Result is a converted document.
type Result struct {
	Title  string
	Issue  string
	Markup string
}

var leadingHeading = regexp.MustCompile(`^#{1,6}(?:[ \t]|$)`)

// Parse splits src into front matter and body. A source without an opening
// "---" line has no front matter and is returned whole as the body.
func Parse(src string) (*Document, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	if !strings.HasPrefix(src, delimiter+"\n") {
		return &Document{Body: src}, nil
	}

	rest := src[len(delimiter)+1:]
	var front, body string
	switch {
	case strings.HasPrefix(rest, delimiter+"\n"), rest == delimiter:
		body = strings.TrimPrefix(strings.TrimPrefix(rest, delimiter), "\n")
	default:
		end := strings.Index(rest, "\n"+delimiter+"\n")
		switch {
		case end >= 0:
			front, body = rest[:end], rest[end+len(delimiter)+2:]
		case strings.HasSuffix(rest, "\n"+delimiter):
			front = strings.TrimSuffix(rest, "\n"+delimiter)
		default:
			return nil, fmt.Errorf("front matter is not terminated by %q", delimiter)
		}
	}

	doc := &Document{Body: body}
	if err := yaml.Unmarshal([]byte(front), &doc.Meta); err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}
	doc.Title = stringValue(doc.Meta, "title")
	doc.Issue = stringValue(doc.Meta, "issue")
	return doc, nil
}

// Markdown returns the body, preceded by the title as a level one heading
// when the body does not already open with a heading.
func (d *Document) Markdown() string {
	body := strings.TrimLeft(d.Body, "\n")
	if d.Title == "" || leadingHeading.MatchString(body) {
		return d.Body
	}
	return "# " + d.Title + "\n\n" + body
}

// Convert parses src and converts its Markdown into Jira markup.
func Convert(src string, opts ...markdown.Option) (*Result, error) {
	doc, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return &Result{
		Title:  doc.Title,
		Issue:  doc.Issue,
		Markup: markdown.Convert(doc.Markdown(), opts...),
	}, nil
}

func stringValue(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
