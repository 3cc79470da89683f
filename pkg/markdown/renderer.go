package markdown

import (
	"fmt"
	"strings"

	"github.com/qawatake/md2jira/internal/codefmt"
)

const (
	// DefaultCodeColor colors inline code spans.
	DefaultCodeColor = "#00875a"
	// DefaultCodeTheme is the {code} macro theme.
	DefaultCodeTheme = "RDark"
	// DefaultCollapseThreshold is the number of lines a code block may have
	// before it is rendered collapsed.
	DefaultCollapseThreshold = 20
)

// Renderer turns already-rendered node content into Jira wiki markup. It
// holds no per-document state and is safe for concurrent use.
type Renderer struct {
	codeColor         string
	codeTheme         string
	collapseThreshold int
	htmlTable         []substitution
	debugf            func(format string, args ...any)
}

// NewRenderer returns a Renderer configured by opts.
func NewRenderer(opts ...Option) *Renderer {
	return newRenderer(applyOptions(opts...))
}

func newRenderer(o *options) *Renderer {
	r := &Renderer{
		codeColor:         o.codeColor,
		codeTheme:         o.codeTheme,
		collapseThreshold: o.collapseThreshold,
		htmlTable:         defaultHTMLTable,
		debugf:            o.logf(),
	}
	if r.codeColor != DefaultCodeColor {
		r.htmlTable = newHTMLTable(r.codeColor)
	}
	return r
}

// Render dispatches n to the rule for its kind.
func (r *Renderer) Render(n *Node) string {
	switch n.Kind {
	case KindText:
		return r.Text(n.Content)
	case KindParagraph:
		return r.Paragraph(n.Content)
	case KindHeading:
		return r.Heading(n.Content, n.Level)
	case KindStrong:
		return r.Strong(n.Content)
	case KindEmphasis:
		return r.Emphasis(n.Content)
	case KindStrikethrough:
		return r.Strikethrough(n.Content)
	case KindBlockquote:
		return r.Blockquote(n.Content)
	case KindLineBreak:
		return r.LineBreak()
	case KindHorizontalRule:
		return r.HorizontalRule()
	case KindLink:
		return r.Link(n.Href, n.Content)
	case KindImage:
		return r.Image(n.Href)
	case KindList:
		return r.List(n.Content, n.Ordered)
	case KindListItem:
		return r.ListItem(n.Content)
	case KindTable:
		return r.Table(n.Head, n.Content)
	case KindTableRow:
		return r.TableRow(n.Content)
	case KindTableCell:
		return r.TableCell(n.Content, n.Header)
	case KindCheckbox:
		return r.Checkbox(n.Checked)
	case KindCodeSpan:
		return r.CodeSpan(n.Content)
	case KindCodeBlock:
		return r.CodeBlock(n.Content, n.Lang)
	case KindHTML:
		return r.HTML(n.Content)
	}
	return n.Content
}

func (r *Renderer) Paragraph(text string) string {
	r.debugf("Paragraph: %s", text)
	return text + "\n\n"
}

func (r *Renderer) Heading(text string, level int) string {
	r.debugf("Heading: %s", text)
	return fmt.Sprintf("h%d. %s\n\n", level, text)
}

func (r *Renderer) Strong(text string) string {
	r.debugf("Strong: %s", text)
	return "*" + text + "*"
}

func (r *Renderer) Emphasis(text string) string {
	r.debugf("Emphasis: %s", text)
	return "_" + text + "_"
}

func (r *Renderer) Strikethrough(text string) string {
	r.debugf("Strikethrough: %s", text)
	return "-" + text + "-"
}

func (r *Renderer) Blockquote(quote string) string {
	r.debugf("Blockquote: %s", quote)
	return "{quote}" + quote + "{quote}"
}

func (r *Renderer) LineBreak() string { return "\n" }

func (r *Renderer) HorizontalRule() string { return "----\n\n" }

// Link renders [text|href], or [href] when the link has no text.
func (r *Renderer) Link(href, text string) string {
	if text == "" {
		return "[" + href + "]"
	}
	return "[" + text + "|" + href + "]"
}

func (r *Renderer) Image(href string) string { return "!" + href + "!" }

// List prefixes every non-empty line of the rendered items with a bullet.
// Items of a nested list already start with a bullet, so "* *" is folded
// into "**" to produce Jira's nested list syntax.
func (r *Renderer) List(body string, ordered bool) string {
	bullet := "*"
	if ordered {
		bullet = "#"
	}
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if line == "" {
			continue
		}
		b.WriteString("\n" + bullet + " " + line)
	}
	return strings.ReplaceAll(b.String(), "* *", "**") + "\n\n"
}

func (r *Renderer) ListItem(body string) string { return body + "\n" }

func (r *Renderer) Table(header, body string) string { return header + body + "\n" }

func (r *Renderer) TableRow(content string) string { return content + "\n" }

func (r *Renderer) TableCell(content string, header bool) string {
	if header {
		return "||" + content
	}
	return "|" + content
}

func (r *Renderer) Checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[-]"
}

// CodeSpan wraps inline code in a colored monospace run. Jira would read the
// braces as macros, so they are escaped.
func (r *Renderer) CodeSpan(text string) string {
	r.debugf("CodeSpan: %s", text)
	return "{color:" + r.codeColor + "}{{" + braceEscaper.Replace(text) + "}}{color}"
}

// CodeBlock emits a {code} macro. Braces are literal inside {code}, so the
// code is not escaped.
func (r *Renderer) CodeBlock(code, lang string) string {
	formatted := codefmt.Format(code, lang)
	if formatted == "" {
		formatted = code
	}
	r.debugf("Formatted code: %s", formatted)
	collapse := strings.Count(formatted, "\n")+1 > r.collapseThreshold
	return fmt.Sprintf("{code:language=%s|borderStyle=solid|theme=%s|linenumbers=true|collapse=%t}\n%s\n{code}\n\n",
		codefmt.JiraLanguage(lang), r.codeTheme, collapse, formatted)
}

// HTML converts a raw HTML fragment.
func (r *Renderer) HTML(raw string) string {
	r.debugf("HTML: %s", raw)
	return applyTable(r.htmlTable, raw)
}

// Text passes plain text through the HTML table as well. The engine has
// already escaped '<' and '>' in text, so no tag can match here.
func (r *Renderer) Text(text string) string {
	r.debugf("Text: %s", text)
	return applyTable(r.htmlTable, text)
}
