// Package errors holds the CLI-facing error helpers: a consistent
// "Error: " presentation for stderr and the fatal exit path commands
// funnel through.
package errors

import (
	"fmt"
	"os"

	"github.com/strideapp/stride/internal/logger"
)

// Format renders err for the terminal with the standard prefix.
// A nil error renders as the empty string.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf renders a formatted message with the standard prefix.
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err, prints it to stderr, and exits with code 1.
// A nil error is a no-op so callers can pass errors through unconditionally.
func Fatal(err error) {
	if err == nil {
		return
	}
	fatal(err.Error(), Format(err))
}

// Fatalf is Fatal with a format string.
func Fatalf(format string, args ...interface{}) {
	fatal(fmt.Sprintf(format, args...), Formatf(format, args...))
}

func fatal(logMsg, display string) {
	logger.Error("Command execution failed", "error", logMsg)
	fmt.Fprintln(os.Stderr, display)
	os.Exit(1)
}
