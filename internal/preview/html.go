package preview

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	bf "github.com/russross/blackfriday/v2"
)

// CodeStyle is the chroma style used for code blocks.
const CodeStyle = "github"

var codeFormatter = chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true))

// htmlRenderer is blackfriday's HTML renderer with code blocks highlighted
// by chroma.
type htmlRenderer struct {
	*bf.HTMLRenderer
}

func newHTMLRenderer() *htmlRenderer {
	return &htmlRenderer{
		HTMLRenderer: bf.NewHTMLRenderer(bf.HTMLRendererParameters{Flags: bf.CommonHTMLFlags}),
	}
}

func (r *htmlRenderer) RenderNode(w io.Writer, node *bf.Node, entering bool) bf.WalkStatus {
	if node.Type != bf.CodeBlock {
		return r.HTMLRenderer.RenderNode(w, node, entering)
	}
	lang := infoLanguage(node.CodeBlockData.Info)
	fmt.Fprintf(w, `<pre><code class="hljs %s">`, html.EscapeString(lang))
	if err := highlight(w, string(node.Literal), lang); err != nil {
		io.WriteString(w, html.EscapeString(string(node.Literal)))
	}
	io.WriteString(w, "</code></pre>\n")
	return bf.GoToNext
}

func infoLanguage(info []byte) string {
	fields := strings.Fields(string(info))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func highlight(w io.Writer, code, lang string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}
	return codeFormatter.Format(w, styles.Get(CodeStyle), it)
}

// HTML renders md as an HTML fragment.
func HTML(md string) string {
	out := bf.Run([]byte(strings.ReplaceAll(md, "\r\n", "\n")),
		bf.WithRenderer(newHTMLRenderer()),
		bf.WithExtensions(bf.CommonExtensions),
	)
	return string(out)
}

// Page renders md as a standalone HTML document carrying the stylesheet
// for its code blocks.
func Page(md, title string) (string, error) {
	var css bytes.Buffer
	if err := codeFormatter.WriteCSS(&css, styles.Get(CodeStyle)); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<style>\n%s</style>\n", css.String())
	b.WriteString("</head>\n<body>\n")
	b.WriteString(HTML(md))
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
