package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound       = errors.New("object not found")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrValueIsRequired      = errors.New("value is required")
	ErrTransitionNotAllowed = errors.New("transition is not allowed")
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrVersionConflict      = errors.New("version conflict")
)

// sanitize flattens a value into a single log-safe line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports a missing aggregate or entity.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return withCause(
			fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID)),
			e.Cause,
		)
	}
	return fmt.Sprintf("%s: %s %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports malformed input.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
			ErrValueIsOutOfRange, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max)),
		e.Cause,
	)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory field.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// TransitionNotAllowedError reports an action that the current status does not permit.
type TransitionNotAllowedError struct {
	From  string
	To    string
	Cause error
}

func NewTransitionNotAllowedError(from, to string) *TransitionNotAllowedError {
	return &TransitionNotAllowedError{From: from, To: to}
}

func NewTransitionNotAllowedErrorWithCause(from, to string, cause error) *TransitionNotAllowedError {
	return &TransitionNotAllowedError{From: from, To: to, Cause: cause}
}

func (e *TransitionNotAllowedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s -> %s", ErrTransitionNotAllowed, e.From, e.To), e.Cause)
}

// Unwrap exposes both the sentinel and the cause, so callers can match either.
func (e *TransitionNotAllowedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTransitionNotAllowed}
	}
	return []error{ErrTransitionNotAllowed, e.Cause}
}

// CapacityExceededError reports a quantity that is not positive or exceeds what a stage can still take.
type CapacityExceededError struct {
	Stage     string
	Requested string
	Remaining string
}

func NewCapacityExceededError(stage, requested, remaining string) *CapacityExceededError {
	return &CapacityExceededError{Stage: stage, Requested: requested, Remaining: remaining}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: %s requested %s, remaining %s",
		ErrCapacityExceeded, e.Stage, sanitize(e.Requested), sanitize(e.Remaining))
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// VersionConflictError reports an optimistic concurrency failure on persist.
type VersionConflictError struct {
	ParamName string
	ID        any
	Version   int64
}

func NewVersionConflictError(paramName string, id any, version int64) *VersionConflictError {
	return &VersionConflictError{ParamName: paramName, ID: id, Version: version}
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s was modified after version %d",
		ErrVersionConflict, e.ParamName, sanitize(e.ID), e.Version)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
