// Package preview renders Markdown for reading before it is converted: in the
// terminal with glamour, or as an HTML page with highlighted code blocks.
package preview

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// Terminal renders Markdown with ANSI styling.
type Terminal struct {
	r *glamour.TermRenderer
}

// NewTerminal returns a Terminal using a glamour standard style such as
// "dark", "light" or "notty". "auto" and "" pick one from the terminal
// background. Lines are wrapped at width when it is positive.
func NewTerminal(style string, width int) (*Terminal, error) {
	opts := []glamour.TermRendererOption{glamour.WithEmoji()}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &Terminal{r: r}, nil
}

// Render returns md styled for the terminal, without surrounding blank lines.
func (t *Terminal) Render(md string) (string, error) {
	out, err := t.r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// Strip removes ANSI escape sequences, for output that is not a terminal.
func Strip(s string) string {
	return ansi.Strip(s)
}
