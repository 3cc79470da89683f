package markdown

import (
	"log"
	"os"
)

type options struct {
	codeColor         string
	codeTheme         string
	collapseThreshold int
	debugf            func(format string, args ...any)
}

// Option configures Convert and NewRenderer.
type Option func(*options)

// WithCodeColor sets the color used for inline code spans.
func WithCodeColor(color string) Option {
	return func(o *options) {
		if color != "" {
			o.codeColor = color
		}
	}
}

// WithCodeTheme sets the theme parameter of {code} macros.
func WithCodeTheme(theme string) Option {
	return func(o *options) {
		if theme != "" {
			o.codeTheme = theme
		}
	}
}

// WithCollapseThreshold sets how many lines a code block may have before it
// is rendered collapsed. Non-positive values are ignored.
func WithCollapseThreshold(lines int) Option {
	return func(o *options) {
		if lines > 0 {
			o.collapseThreshold = lines
		}
	}
}

// WithDebugf routes diagnostic output of the conversion to fn.
func WithDebugf(fn func(format string, args ...any)) Option {
	return func(o *options) {
		o.debugf = fn
	}
}

// WithLogger routes diagnostic output of the conversion to l.
func WithLogger(l *log.Logger) Option {
	return WithDebugf(l.Printf)
}

// Verbose logs every rendered node to stderr.
func Verbose() Option {
	return WithLogger(log.New(os.Stderr, "[md2jira] ", log.LstdFlags))
}

func applyOptions(opts ...Option) *options {
	o := &options{
		codeColor:         DefaultCodeColor,
		codeTheme:         DefaultCodeTheme,
		collapseThreshold: DefaultCollapseThreshold,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) verbose() bool { return o.debugf != nil }

func (o *options) logf() func(format string, args ...any) {
	if o.debugf == nil {
		return func(string, ...any) {}
	}
	return o.debugf
}
