package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibwhole/internal/digitlist"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between algorithms.
	ExitErrorConfig   = 4   // Indicates a configuration error, including an exhausted group cap.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError records which algorithm failed on which index while
// preserving the original cause.
type CalculationError struct {
	// Algorithm is the calculator name, empty when unknown.
	Algorithm string
	// N is the Fibonacci index being computed.
	N uint64
	// Cause is the underlying error.
	Cause error
}

// Error returns the cause, prefixed with the algorithm and index when known.
func (e CalculationError) Error() string {
	if e.Algorithm == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: F(%d): %v", e.Algorithm, e.N, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents a calculation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// CapacityError reports that a WholeNumber needed more digit groups than
// the configured cap allows.
type CapacityError struct {
	// MaxGroups is the configured cap.
	MaxGroups int
	// Cause is the allocation failure from the digit list.
	Cause error
}

// Error returns a formatted message describing the exhausted cap.
func (e CapacityError) Error() string {
	return fmt.Sprintf("digit group limit of %d reached: %v", e.MaxGroups, e.Cause)
}

// Unwrap returns the allocation failure.
func (e CapacityError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsCapacityError reports whether err stems from an exhausted group cap.
func IsCapacityError(err error) bool {
	var capErr CapacityError
	return errors.As(err, &capErr) || errors.Is(err, digitlist.ErrAllocation)
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	var cfgErr ConfigError
	var valErr ValidationError
	var timeoutErr TimeoutError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr), errors.As(err, &valErr), IsCapacityError(err):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleCalculationError writes a user-facing message for err to out and
// returns the matching exit code. A nil err yields ExitSuccess and writes
// nothing.
func HandleCalculationError(err error, duration time.Duration, out io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Calculation timed out after %s.\n", duration.Round(time.Millisecond))
	case ExitErrorCanceled:
		fmt.Fprintln(out, "Calculation canceled.")
	default:
		if IsCapacityError(err) {
			fmt.Fprintf(out, "Calculation stopped: %v\nRaise --memory-limit or --max-groups to compute larger terms.\n", err)
		} else {
			fmt.Fprintf(out, "Calculation failed: %v\n", err)
		}
	}
	return code
}
