// Package errs provides standardized error types for the relief logistics
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - A struct type carrying the error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for error-chain support
//
// ErrStaleVersion deserves a note: it is the only retryable error in the
// taxonomy. It signals that an optimistic concurrency check failed at commit
// time and the caller should reload the affected entities and resubmit.
package errs
