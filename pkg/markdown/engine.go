package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/Code-Hex/dd"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var gfm = goldmark.New(goldmark.WithExtensions(extension.GFM))

// walker visits a goldmark document depth first. Each node's children are
// rendered before the node itself, and the node is handed to the Renderer
// with that output as its content.
type walker struct {
	source  []byte
	r       *Renderer
	verbose bool
}

// Render parses markdown as GitHub flavored Markdown and renders it with r.
// Soft line breaks are rendered as line breaks. No post-processing is
// applied; see Convert.
func Render(markdown string, r *Renderer) string {
	return render([]byte(markdown), r, false)
}

func render(source []byte, r *Renderer, verbose bool) string {
	doc := gfm.Parser().Parse(text.NewReader(source))
	w := &walker{source: source, r: r, verbose: verbose}
	return w.walk(doc)
}

func (w *walker) emit(n *Node) string {
	if w.verbose {
		w.r.debugf("node: %s", dd.Dump(n))
	}
	return w.r.Render(n)
}

func (w *walker) children(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		b.WriteString(w.walk(c))
	}
	return b.String()
}

func (w *walker) walk(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Document, *ast.TextBlock:
		return w.children(n)
	case *ast.Paragraph:
		return w.emit(&Node{Kind: KindParagraph, Content: w.children(n)})
	case *ast.Heading:
		return w.emit(&Node{Kind: KindHeading, Content: w.children(n), Level: n.Level})
	case *ast.Text:
		value := n.Segment.Value(w.source)
		if !n.IsRaw() {
			value = util.UnescapePunctuations(value)
		}
		out := w.emit(&Node{Kind: KindText, Content: escapeHTML(string(value), false)})
		if n.SoftLineBreak() || n.HardLineBreak() {
			out += w.emit(&Node{Kind: KindLineBreak})
		}
		return out
	case *ast.String:
		return w.emit(&Node{Kind: KindText, Content: escapeHTML(string(n.Value), false)})
	case *ast.Emphasis:
		kind := KindEmphasis
		if n.Level >= 2 {
			kind = KindStrong
		}
		return w.emit(&Node{Kind: kind, Content: w.children(n)})
	case *east.Strikethrough:
		return w.emit(&Node{Kind: KindStrikethrough, Content: w.children(n)})
	case *ast.CodeSpan:
		return w.emit(&Node{Kind: KindCodeSpan, Content: escapeHTML(w.codeSpan(n), true)})
	case *ast.FencedCodeBlock:
		return w.emit(&Node{Kind: KindCodeBlock, Content: w.lines(n.Lines()), Lang: string(n.Language(w.source))})
	case *ast.CodeBlock:
		return w.emit(&Node{Kind: KindCodeBlock, Content: w.lines(n.Lines())})
	case *ast.Blockquote:
		return w.emit(&Node{Kind: KindBlockquote, Content: w.children(n)})
	case *ast.ThematicBreak:
		return w.emit(&Node{Kind: KindHorizontalRule})
	case *ast.Link:
		return w.emit(&Node{Kind: KindLink, Href: string(n.Destination), Title: string(n.Title), Content: w.children(n)})
	case *ast.AutoLink:
		label := w.emit(&Node{Kind: KindText, Content: escapeHTML(string(n.Label(w.source)), false)})
		return w.emit(&Node{Kind: KindLink, Href: string(n.URL(w.source)), Content: label})
	case *ast.Image:
		return w.emit(&Node{Kind: KindImage, Href: string(n.Destination), Title: string(n.Title), Content: w.children(n)})
	case *ast.List:
		return w.emit(&Node{Kind: KindList, Ordered: n.IsOrdered(), Content: w.children(n)})
	case *ast.ListItem:
		return w.emit(&Node{Kind: KindListItem, Content: w.children(n)})
	case *east.TaskCheckBox:
		return w.emit(&Node{Kind: KindCheckbox, Checked: n.IsChecked}) + " "
	case *east.Table:
		var head, body strings.Builder
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if _, ok := c.(*east.TableHeader); ok {
				head.WriteString(w.walk(c))
				continue
			}
			body.WriteString(w.walk(c))
		}
		return w.emit(&Node{Kind: KindTable, Head: head.String(), Content: body.String()})
	case *east.TableHeader, *east.TableRow:
		return w.emit(&Node{Kind: KindTableRow, Content: w.children(n)})
	case *east.TableCell:
		_, header := n.Parent().(*east.TableHeader)
		return w.emit(&Node{Kind: KindTableCell, Content: w.children(n), Header: header, Align: alignOf(n.Alignment)})
	case *ast.HTMLBlock:
		var b bytes.Buffer
		w.writeLines(&b, n.Lines())
		if n.HasClosure() {
			b.Write(n.ClosureLine.Value(w.source))
		}
		return w.emit(&Node{Kind: KindHTML, Content: b.String()})
	case *ast.RawHTML:
		var b bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(w.source))
		}
		return w.emit(&Node{Kind: KindHTML, Content: b.String()})
	}
	return w.children(node)
}

// codeSpan returns the literal content of an inline code span. Line endings
// inside the span become spaces.
func (w *walker) codeSpan(n *ast.CodeSpan) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var value []byte
		switch t := c.(type) {
		case *ast.Text:
			value = t.Segment.Value(w.source)
		case *ast.String:
			value = t.Value
		}
		if v, ok := bytes.CutSuffix(value, []byte("\n")); ok {
			b.Write(v)
			b.WriteByte(' ')
			continue
		}
		b.Write(value)
	}
	return b.String()
}

// lines joins the lines of a block without its final line ending.
func (w *walker) lines(segs *text.Segments) string {
	var b bytes.Buffer
	w.writeLines(&b, segs)
	return strings.TrimSuffix(b.String(), "\n")
}

func (w *walker) writeLines(b *bytes.Buffer, segs *text.Segments) {
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(w.source))
	}
}

func alignOf(a east.Alignment) Align {
	switch a {
	case east.AlignLeft:
		return AlignLeft
	case east.AlignCenter:
		return AlignCenter
	case east.AlignRight:
		return AlignRight
	}
	return AlignNone
}

var entityRef = regexp.MustCompile(`^&#?\w+;`)

// escapeHTML escapes the characters HTML gives meaning to, so text can never
// be mistaken for a tag by the HTML table. Unless all is set, '&' starting an
// entity reference is kept as is. The entities are decoded after rendering.
func escapeHTML(s string, all bool) string {
	if !strings.ContainsAny(s, `<>"'&`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		case '&':
			if !all && entityRef.MatchString(s[i:]) {
				b.WriteByte(c)
			} else {
				b.WriteString("&amp;")
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
