package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// warningColor highlights the prefix only. color.NoColor turns it off when the output is not a
// terminal or NO_COLOR is set.
var warningColor = color.New(color.FgYellow, color.Bold)

// printf prints a message with no decoration.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a message prefixed with a highlighted "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	warningColor.Fprint(w, "Warning: ")
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}
