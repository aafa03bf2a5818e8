// Package errs provides standardized error types for the fulfillment ledger.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - TransitionNotAllowedError: an action the current order status does not permit
//   - CapacityExceededError: a quantity that a fulfillment stage cannot take
//   - ObjectNotFoundError: a missing order or movement row
//   - VersionConflictError: a concurrent writer changed the order first
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works across wrapping
//
// KindOf maps any error onto the closed Kind taxonomy used by transports.
// Only KindConcurrencyConflict is retryable.
package errs
