package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/liftlog/internal/logger"
)

// HintError carries follow-up instructions printed under the error line.
type HintError struct {
	Err   error
	Hints []string
}

func (e *HintError) Error() string {
	return e.Err.Error()
}

func (e *HintError) Unwrap() error {
	return e.Err
}

// WithHints attaches user-facing hints to err. A nil err stays nil.
func WithHints(err error, hints ...string) error {
	if err == nil {
		return nil
	}
	return &HintError{Err: err, Hints: hints}
}

// Format formats an error message with a consistent "Error: " prefix,
// followed by any hints attached with WithHints.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)

	var hinted *HintError
	if stderrors.As(err, &hinted) && len(hinted.Hints) > 0 {
		var b strings.Builder
		b.WriteString(msg)
		for _, h := range hinted.Hints {
			b.WriteString("\n       ")
			b.WriteString(h)
		}
		return b.String()
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
