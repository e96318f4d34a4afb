// Package apperrors defines structured application error types and maps
// them to process exit codes. It separates configuration mistakes from
// calculation failures, timeouts and digit-group capacity exhaustion.
//
// Error Wrapping Guidelines:
// Errors are wrapped with fmt.Errorf and %w. Every type carrying a cause
// implements Unwrap so that errors.Is and errors.As see through it.
package apperrors
