package logging

import (
	"fmt"
	"io"
	"os"
)

// User-facing output for cj commands ("Building container image...",
// "Browser redirection is not available..."), separate from the structured
// debug logging. Info and success go to the out stream so warnings and
// errors survive piping of normal output.
var (
	userOut io.Writer = os.Stdout
	userErr io.Writer = os.Stderr
)

// SetUserStreams redirects user-facing output and returns a function that
// restores the previous streams. A nil writer leaves that stream unchanged.
func SetUserStreams(out, errOut io.Writer) func() {
	prevOut, prevErr := userOut, userErr
	if out != nil {
		userOut = out
	}
	if errOut != nil {
		userErr = errOut
	}
	return func() {
		userOut, userErr = prevOut, prevErr
	}
}

// UserInfo prints an info message to the out stream.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(userOut, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success message to the out stream.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(userOut, "✓ "+format+"\n", args...)
}

// UserWarning prints a warning message to the error stream.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(userErr, "⚠ "+format+"\n", args...)
}

// UserError prints an error message to the error stream.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(userErr, "✗ "+format+"\n", args...)
}
