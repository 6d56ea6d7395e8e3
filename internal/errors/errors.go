// Package errors reports command failures: each error is written to the log
// file and echoed to stderr with a uniform prefix before the process exits.
package errors

import (
	"fmt"
	"os"

	"github.com/mwhitten/tally/internal/logger"
)

// Format prefixes an error for terminal display. Nil yields an empty string.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format over a format string.
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs the error, prints it to stderr, and exits with code 1. A nil
// error is a no-op.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf is Fatal over a format string.
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
