// Package errs provides standardized error types for the fulfillment core.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type carrying the error details
//   - Constructor functions with and without a cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// Callers classify failures with errors.Is against the sentinels and inspect
// the struct fields when they need the details.
package errs
