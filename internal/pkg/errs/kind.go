package errs

import "errors"

// Kind classifies an error for callers that need to decide how to surface or retry it.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindGuardViolation
	KindCapacity
	KindNotFound
	KindConcurrencyConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindGuardViolation:
		return "GuardViolation"
	case KindCapacity:
		return "CapacityError"
	case KindNotFound:
		return "NotFoundError"
	case KindConcurrencyConflict:
		return "ConcurrencyConflict"
	case KindInternal:
		return "InternalError"
	}
	return "InternalError"
}

// KindOf walks the error chain (including errors.Join trees) and returns the first known kind.
// Validation wins over everything else so a joined validation failure is never reported as internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	case errors.Is(err, ErrTransitionNotAllowed):
		return KindGuardViolation
	case errors.Is(err, ErrCapacityExceeded):
		return KindCapacity
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrVersionConflict):
		return KindConcurrencyConflict
	}
	return KindInternal
}

// IsRetryable reports whether the caller may retry the operation unchanged.
func IsRetryable(err error) bool {
	return KindOf(err) == KindConcurrencyConflict
}
