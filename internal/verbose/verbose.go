// Package verbose prints diagnostics to stderr when --verbose is set.
package verbose

import (
	"fmt"
	"io"
	"os"
)

var (
	Enabled bool
	// Output receives the diagnostics; stdout is kept for converted markup.
	Output io.Writer = os.Stderr
)

func Printf(format string, args ...any) {
	if Enabled {
		fmt.Fprintf(Output, format, args...)
	}
}

func Println(args ...any) {
	if Enabled {
		fmt.Fprintln(Output, args...)
	}
}

// Debugf is Printf terminated by a newline. It fits markdown.WithDebugf.
func Debugf(format string, args ...any) {
	if Enabled {
		fmt.Fprintf(Output, format+"\n", args...)
	}
}
