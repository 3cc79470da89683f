package markdown

import "regexp"

type substitution struct {
	re   *regexp.Regexp
	repl string
}

func sub(pattern, repl string) substitution {
	return substitution{re: regexp.MustCompile(`(?i)` + pattern), repl: repl}
}

var defaultHTMLTable = newHTMLTable(DefaultCodeColor)

// newHTMLTable builds the substitutions applied to raw HTML, top to bottom.
// Later rules rely on earlier ones having consumed their tags, e.g. thead must
// go before th and the catch-all strip must run last.
func newHTMLTable(codeColor string) []substitution {
	return []substitution{
		sub(`<br\s*/?>`, "\n"),

		sub(`<(?:strong|b)>`, "*"),
		sub(`</(?:strong|b)>`, "*"),
		sub(`<(?:em|i)>`, "_"),
		sub(`</(?:em|i)>`, "_"),
		sub(`<u>`, "+"),
		sub(`</u>`, "+"),
		sub(`<(?:s|strike|del)>`, "-"),
		sub(`</(?:s|strike|del)>`, "-"),

		sub(`<code>`, "{color:"+codeColor+"}{{"),
		sub(`</code>`, "}}{color}"),
		sub(`</?pre>`, "{noformat}"),
		sub(`</?blockquote>`, "{quote}"),

		sub(`<h([1-6])>`, "h${1}. "),
		sub(`</h[1-6]>`, "\n\n"),
		sub(`<p>`, ""),
		sub(`</p>`, "\n\n"),

		sub(`<a\s+href="([^"]*)"[^>]*>([^<]+)</a>`, "[${2}|${1}]"),
		sub(`<a\s+href="([^"]*)"[^>]*></a>`, "[${1}]"),
		sub(`<img\s+src="([^"]*)"[^>]*>`, "!${1}!"),

		sub(`<(?:ul|ol)>`, ""),
		sub(`</(?:ul|ol)>`, "\n"),
		sub(`<li>`, "* "),
		sub(`</li>`, "\n"),

		sub(`<table[^>]*>`, ""),
		sub(`</table>`, "\n"),
		sub(`</?(?:thead|tbody)[^>]*>`, ""),
		sub(`<tr[^>]*>`, ""),
		sub(`</tr>`, "|\n"),
		sub(`<th[^>]*>`, "||"),
		sub(`</th>`, ""),
		sub(`<td[^>]*>`, "|"),
		sub(`</td>`, ""),

		sub(`<hr\s*/?>`, "----\n"),
		sub(`<div[^>]*>`, ""),
		sub(`</div>`, "\n"),
		sub(`</?span[^>]*>`, ""),

		sub(`<[^>]*>`, ""),
		sub(`\n{3,}`, "\n\n"),
	}
}

// ConvertHTML rewrites the supported subset of HTML tags into Jira markup and
// strips every other tag, keeping its content.
func ConvertHTML(html string) string {
	return applyTable(defaultHTMLTable, html)
}

func applyTable(table []substitution, html string) string {
	for _, s := range table {
		html = s.re.ReplaceAllString(html, s.repl)
	}
	return html
}
