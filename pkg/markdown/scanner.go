package markdown

import "strings"

// LineFunc transforms a single line of rendered markup.
type LineFunc func(line string) string

// LineHandlers receives each line of rendered markup according to where it
// sits relative to {code} regions. A nil handler leaves its lines unchanged.
type LineHandlers struct {
	CodeStart LineFunc // a line opening a region, e.g. {code:language=java|...}
	CodeBody  LineFunc // a line inside a region
	CodeEnd   LineFunc // a line containing {code}
	Plain     LineFunc // any other line
}

// ProcessCodeBlockLines splits markup into lines, classifies each one as
// opening, inside, closing or outside a {code} region and applies the
// matching handler. Regions do not nest.
func ProcessCodeBlockLines(markup string, h LineHandlers) string {
	lines := strings.Split(markup, "\n")
	for i, kind := range classifyLines(lines) {
		var fn LineFunc
		switch kind {
		case codeStartLine:
			fn = h.CodeStart
		case codeBodyLine:
			fn = h.CodeBody
		case codeEndLine:
			fn = h.CodeEnd
		default:
			fn = h.Plain
		}
		if fn != nil {
			lines[i] = fn(lines[i])
		}
	}
	return strings.Join(lines, "\n")
}

type lineKind int

const (
	plainLine lineKind = iota
	codeStartLine
	codeBodyLine
	codeEndLine
)

func classifyLines(lines []string) []lineKind {
	kinds := make([]lineKind, len(lines))
	inCode := false
	for i, line := range lines {
		switch {
		// "{code}" is tested first: it also contains "{code".
		case strings.Contains(line, "{code}"):
			inCode = false
			kinds[i] = codeEndLine
		case strings.Contains(line, "{code"):
			inCode = true
			kinds[i] = codeStartLine
		case inCode:
			kinds[i] = codeBodyLine
		default:
			kinds[i] = plainLine
		}
	}
	return kinds
}
