package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrClassification indicates that an account's declared nature disagrees with the chart rules.
var ErrClassification = errors.New("classification error")

// ErrReconciliation indicates that a set of movements cannot be reconciled.
var ErrReconciliation = errors.New("reconciliation error")

// ErrPersistence wraps failures surfaced by the storage layer.
var ErrPersistence = errors.New("persistence error")

// ErrConflict indicates a concurrent modification, e.g. a movement reconciled by another caller.
var ErrConflict = errors.New("conflict")

// ErrCodeInUse indicates that a reconciliation code is already carried by another group.
// Unlike ErrConflict it says nothing about the movements themselves.
var ErrCodeInUse = errors.New("reconciliation code in use")

// ErrForbidden indicates that the caller lacks the role required for an operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP status code, a user facing message, the error kind
// (one of the sentinels above) and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Kind    error
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewAppError builds an AppError whose kind is derived from the status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Kind: kindForCode(code), Err: err}
}

// NewPersistenceError wraps a storage failure.
func NewPersistenceError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Kind: ErrPersistence, Err: err}
}

// NewValidationError reports a rejected input.
func NewValidationError(format string, args ...any) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...), Kind: ErrValidation}
}

// NewClassificationError reports an account whose nature does not fit its number.
func NewClassificationError(format string, args ...any) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: fmt.Sprintf(format, args...), Kind: ErrClassification}
}

// NewReconciliationError reports a movement set that cannot be reconciled.
func NewReconciliationError(format string, args ...any) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: fmt.Sprintf(format, args...), Kind: ErrReconciliation}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(format string, args ...any) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...), Kind: ErrNotFound}
}

// NewConflictError reports a concurrent modification.
func NewConflictError(format string, args ...any) *AppError {
	return &AppError{Code: http.StatusConflict, Message: fmt.Sprintf(format, args...), Kind: ErrConflict}
}

// NewCodeInUseError reports a reconciliation code taken by another group.
func NewCodeInUseError(code string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: fmt.Sprintf("reconciliation code %s is already in use", code), Kind: ErrCodeInUse}
}

// NewForbiddenError reports a missing role.
func NewForbiddenError(format string, args ...any) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: fmt.Sprintf(format, args...), Kind: ErrForbidden}
}

// Message returns the user facing message of err. For an AppError that is its
// Message field, without the wrapped cause.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// StatusCode maps err to an HTTP status code.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrClassification), errors.Is(err, ErrReconciliation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict), errors.Is(err, ErrCodeInUse):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func kindForCode(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return ErrInternal
	}
}
