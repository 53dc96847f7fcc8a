package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned across the core boundary wraps one
// of these through DomainError; anything else is an internal failure.
var (
	// ErrNotFound is returned when a requested resource does not exist or
	// belongs to a tournament the caller does not own.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when trying to create a resource that already exists.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidGameSize is returned when a game count cannot be served by the member pairs.
	ErrInvalidGameSize = errors.New("invalid game size")

	// ErrParticipantMismatch is returned when a result does not cover exactly a game's participants.
	ErrParticipantMismatch = errors.New("participant mismatch")

	// ErrInsufficientWords is returned when the word bank cannot serve a take.
	ErrInsufficientWords = errors.New("insufficient words")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned when authentication is required but not provided.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned when the current state forbids the operation.
	ErrConflict = errors.New("conflict")

	// ErrInternal marks broken invariants inside the core.
	ErrInternal = errors.New("internal error")
)

// Machine-readable error kinds.
const (
	KindNotFound            = "NOT_FOUND"
	KindAlreadyExists       = "ALREADY_EXISTS"
	KindInvalidGameSize     = "INVALID_GAME_SIZE"
	KindParticipantMismatch = "PARTICIPANT_MISMATCH"
	KindInsufficientWords   = "INSUFFICIENT_WORDS"
	KindValidation          = "VALIDATION_ERROR"
	KindUnauthorized        = "UNAUTHORIZED"
	KindForbidden           = "FORBIDDEN"
	KindConflict            = "CONFLICT"
	KindInternal            = "INTERNAL_ERROR"
)

// DomainError wraps a base error with additional context.
type DomainError struct {
	// Base is the underlying error type (e.g., ErrNotFound)
	Base error

	// Message provides human-readable context
	Message string

	// Field indicates which field caused the error (for validation errors)
	Field string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Base.Error(), e.Message, e.Field)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Base.Error(), e.Message)
	}
	return e.Base.Error()
}

// Unwrap returns the base error for errors.Is/As support.
func (e *DomainError) Unwrap() error {
	return e.Base
}

// NewNotFoundError creates a not found error for the named resource.
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{Base: ErrNotFound, Message: resource}
}

// NewAlreadyExistsError creates an already exists error for the named resource.
func NewAlreadyExistsError(resource string) *DomainError {
	return &DomainError{Base: ErrAlreadyExists, Message: resource}
}

// NewInvalidGameSizeError reports that pairs cannot fill games with at least
// MinPairsPerGame pairs each.
func NewInvalidGameSizeError(pairs, games int) *DomainError {
	return &DomainError{
		Base:    ErrInvalidGameSize,
		Message: fmt.Sprintf("%d pairs cannot be split into %d games", pairs, games),
		Field:   "games",
	}
}

// NewParticipantMismatchError reports a result whose keys differ from the participants.
func NewParticipantMismatchError() *DomainError {
	return &DomainError{
		Base:    ErrParticipantMismatch,
		Message: "result pairs must equal game participants",
		Field:   "results",
	}
}

// NewInsufficientWordsError reports a take the word bank cannot serve.
func NewInsufficientWordsError(difficulty, requested, available int) *DomainError {
	return &DomainError{
		Base:    ErrInsufficientWords,
		Message: fmt.Sprintf("requested %d words of difficulty %d, %d available", requested, difficulty, available),
	}
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{Base: ErrInvalidInput, Message: message, Field: field}
}

// NewConflictError creates a conflict error with context.
func NewConflictError(message string) *DomainError {
	return &DomainError{Base: ErrConflict, Message: message}
}

// NewForbiddenError creates a forbidden error with context.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Base: ErrForbidden, Message: message}
}

// NewUnauthorizedError creates an unauthorized error with context.
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{Base: ErrUnauthorized, Message: message}
}

// NewInternalError reports a broken invariant.
func NewInternalError(message string) *DomainError {
	return &DomainError{Base: ErrInternal, Message: message}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidGameSize checks if an error is an invalid game size error.
func IsInvalidGameSize(err error) bool {
	return errors.Is(err, ErrInvalidGameSize)
}

// IsParticipantMismatch checks if an error is a participant mismatch error.
func IsParticipantMismatch(err error) bool {
	return errors.Is(err, ErrParticipantMismatch)
}

// IsInsufficientWords checks if an error is an insufficient words error.
func IsInsufficientWords(err error) bool {
	return errors.Is(err, ErrInsufficientWords)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnauthorized checks if an error is unauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// KindOf returns the machine-readable kind of err. Errors that do not wrap
// a known sentinel are internal.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case IsNotFound(err):
		return KindNotFound
	case IsAlreadyExists(err):
		return KindAlreadyExists
	case IsInvalidGameSize(err):
		return KindInvalidGameSize
	case IsParticipantMismatch(err):
		return KindParticipantMismatch
	case IsInsufficientWords(err):
		return KindInsufficientWords
	case IsValidationError(err):
		return KindValidation
	case IsUnauthorized(err):
		return KindUnauthorized
	case IsForbidden(err):
		return KindForbidden
	case IsConflict(err):
		return KindConflict
	default:
		return KindInternal
	}
}
