// Package markdown converts Markdown, including embedded HTML, into Jira wiki
// markup.
//
// Conversion has two stages. The document is parsed as GitHub flavored
// Markdown and every node is rendered by a Renderer. The result is then
// passed line by line through post-processing passes that tell {code}
// regions apart from ordinary text and repair the places where Markdown and
// Jira markup disagree, such as "__" and "{...}".
package markdown

import "strings"

// Convert converts markdown into Jira wiki markup. It never fails: content
// that cannot be formatted or mapped is passed through as is.
func Convert(markdown string, opts ...Option) string {
	o := applyOptions(opts...)
	r := newRenderer(o)

	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	out := render([]byte(markdown), r, o.verbose())

	out = FixCommentedCodeBlocks(out)
	out = FixDoubleUnderscore(out)
	out = cleanup(out)
	return EscapeAPIEndpoints(out)
}
