package config

import (
	"fmt"
	"io"
	"os"
)

// Exit codes shared by the command entry points.
const (
	ExitFailure   = 1
	ExitAssertion = 2
)

var (
	exitWriter io.Writer = os.Stderr
	exitFunc             = os.Exit
)

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	ExitCodef(ExitFailure, format, args...)
}

// ExitCodef writes a formatted error message to stderr and exits with code.
// Codes below 1 are raised to ExitFailure so a fatal path never reports success.
func ExitCodef(code int, format string, args ...any) {
	if code < ExitFailure {
		code = ExitFailure
	}
	fmt.Fprintf(exitWriter, format+"\n", args...)
	exitFunc(code)
}
