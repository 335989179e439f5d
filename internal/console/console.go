// Package console prints user-facing task progress lines.
package console

import (
	"io"
	"os"

	"github.com/mitchellh/colorstring"
)

var out io.Writer = os.Stdout

// SetOutput redirects console output. Used in tests.
func SetOutput(w io.Writer) {
	out = w
}

// Task prints a top-level task line.
func Task(format string, args ...any) {
	colorstring.Fprintf(out, "[blue][bold]==>[reset] "+format+"\n", args...)
}

// Subtask prints a nested step under the current task.
func Subtask(format string, args ...any) {
	colorstring.Fprintf(out, "[green][bold]  ->[reset] "+format+"\n", args...)
}

// Skip prints a nested step that was skipped because it was already done.
func Skip(format string, args ...any) {
	colorstring.Fprintf(out, "[yellow][bold]  ->[reset] "+format+"\n", args...)
}

// Error prints a failure line.
func Error(format string, args ...any) {
	colorstring.Fprintf(out, "[red][bold]  ->[reset] "+format+"\n", args...)
}
