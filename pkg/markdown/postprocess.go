package markdown

import (
	"regexp"
	"strings"
)

var (
	braceEscaper    = strings.NewReplacer("{", `\{`, "}", `\}`)
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	apiEndpoint     = regexp.MustCompile(`((?:GET|POST|PUT|DELETE|PATCH|HEAD|OPTIONS)\s+/)?[a-zA-Z0-9/\-.]*\{[^}]+\}[a-zA-Z0-9/\-.]*`)
	underscoreRun   = regexp.MustCompile(`(?:\\_|_){2,}`)
	jiraMacro       = regexp.MustCompile(`\{(?:quote|noformat)\}`)
)

// FixCommentedCodeBlocks removes shell style "# " markers that leak onto
// {code} marker lines and one leading '#' from lines inside a region.
func FixCommentedCodeBlocks(markup string) string {
	stripMarkers := func(line string) string { return strings.ReplaceAll(line, "# ", "") }
	return ProcessCodeBlockLines(markup, LineHandlers{
		CodeStart: stripMarkers,
		CodeBody:  func(line string) string { return strings.TrimPrefix(line, "#") },
		CodeEnd:   stripMarkers,
	})
}

// FixDoubleUnderscore escapes every run of two or more underscores outside
// {code} regions. Real bold has already been rendered as *...*, so any "__"
// left over would otherwise be read by Jira as the edge of an italic run.
// Underscores that are already escaped count towards a run, so running it
// twice is a no-op.
func FixDoubleUnderscore(markup string) string {
	return ProcessCodeBlockLines(markup, LineHandlers{
		Plain: func(line string) string { return underscoreRun.ReplaceAllStringFunc(line, escapeUnderscores) },
	})
}

func escapeUnderscores(run string) string {
	return strings.Repeat(`\_`, strings.Count(run, "_"))
}

// EscapeAPIEndpoints escapes the braces of path parameters such as
// "POST /api/pdf/{documentId}/finalize" outside {code} regions. Lines that
// already carry inline code or code markup are left alone, and {quote} and
// {noformat} macros keep their braces.
func EscapeAPIEndpoints(markup string) string {
	return ProcessCodeBlockLines(markup, LineHandlers{
		Plain: escapeAPIEndpointPatterns,
	})
}

func escapeAPIEndpointPatterns(line string) string {
	if strings.Contains(line, "{color") || strings.Contains(line, "{code") || strings.Contains(line, "{{") {
		return line
	}
	var b strings.Builder
	last := 0
	for _, loc := range jiraMacro.FindAllStringIndex(line, -1) {
		b.WriteString(apiEndpoint.ReplaceAllStringFunc(line[last:loc[0]], braceEscaper.Replace))
		b.WriteString(line[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(apiEndpoint.ReplaceAllStringFunc(line[last:], braceEscaper.Replace))
	return b.String()
}

// entities are decoded one after another, so "&amp;lt;" ends up as "&lt;".
var entities = []struct{ ref, char string }{
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&amp;", "&"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&nbsp;", " "},
}

// cleanup decodes the entities left by text escaping everywhere and
// collapses horizontal whitespace on lines outside {code} regions. Leading
// whitespace is dropped after a line break and trailing whitespace before
// one, so the edges of the whole markup keep a single space.
func cleanup(markup string) string {
	for _, e := range entities {
		markup = strings.ReplaceAll(markup, e.ref, e.char)
	}
	lines := strings.Split(markup, "\n")
	for i, kind := range classifyLines(lines) {
		if kind != plainLine {
			continue
		}
		line := horizontalSpace.ReplaceAllString(lines[i], " ")
		if i > 0 {
			line = strings.TrimLeft(line, " ")
		}
		if i < len(lines)-1 {
			line = strings.TrimRight(line, " ")
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
