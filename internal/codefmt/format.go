// Package codefmt re-indents code block contents for a handful of languages
// before they are embedded in a {code} macro.
//
// The indenters are line based and do not understand string or comment
// literals, so a brace inside a string literal shifts the indentation of the
// following lines.
package codefmt

import "strings"

type indenter struct {
	width   int
	openers string
	closers string
}

var (
	scriptIndenter = indenter{width: 2, openers: "{[(", closers: "}])"}
	javaIndenter   = indenter{width: 4, openers: "{", closers: "}"}
)

// Format returns code re-indented for language. Unsupported languages and
// code that cannot be formatted are returned unchanged.
func Format(code, language string) string {
	switch strings.ToLower(language) {
	case "json":
		return formatJSON(code)
	case "typescript", "ts", "javascript", "js":
		return scriptIndenter.indent(code)
	case "java":
		return javaIndenter.indent(code)
	}
	return code
}

func (in indenter) indent(code string) string {
	lines := strings.Split(code, "\n")
	depth := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && strings.ContainsRune(in.closers, rune(trimmed[0])) {
			depth = max(0, depth-1)
		}
		lines[i] = strings.Repeat(" ", depth*in.width) + trimmed
		if trimmed != "" && strings.ContainsRune(in.openers, rune(trimmed[len(trimmed)-1])) {
			depth++
		}
	}
	return strings.Join(lines, "\n")
}
