// Package errs provides the standardized error types used across the
// ordertrack application.
//
// Every error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound) used with errors.Is
//   - a struct carrying the error details
//   - constructors with and without an underlying cause
//   - Error() for formatting and Unwrap() pointing at the sentinel
//
// Domain-specific failures (illegal status transitions, payment amount
// mismatches) are defined next to the types they concern and follow the same
// sentinel-plus-struct pattern.
package errs
