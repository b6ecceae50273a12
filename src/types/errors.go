package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	ERR_NOT_FOUND        ErrorKind = "NotFound"
	ERR_VALIDATION       ErrorKind = "Validation"
	ERR_DUPLICATED_DATA  ErrorKind = "DuplicatedData"
	ERR_ILLEGAL_ARGUMENT ErrorKind = "IllegalArgument"
)

// AppError is a failure the caller can act on. Anything else surfaces as 500.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches any AppError of the same kind, so errors.Is(err, ErrNotFound) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrNotFound        = &AppError{Kind: ERR_NOT_FOUND}
	ErrValidation      = &AppError{Kind: ERR_VALIDATION}
	ErrDuplicatedData  = &AppError{Kind: ERR_DUPLICATED_DATA}
	ErrIllegalArgument = &AppError{Kind: ERR_ILLEGAL_ARGUMENT}
)

func NewNotFoundError(format string, args ...any) error {
	return &AppError{Kind: ERR_NOT_FOUND, Message: fmt.Sprintf(format, args...)}
}

func NewValidationError(format string, args ...any) error {
	return &AppError{Kind: ERR_VALIDATION, Message: fmt.Sprintf(format, args...)}
}

func NewDuplicatedDataError(format string, args ...any) error {
	return &AppError{Kind: ERR_DUPLICATED_DATA, Message: fmt.Sprintf(format, args...)}
}

func NewIllegalArgumentError(format string, args ...any) error {
	return &AppError{Kind: ERR_ILLEGAL_ARGUMENT, Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps an error to its response status and category string.
func HTTPStatus(err error) (int, string) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, "Internal server error"
	}
	switch appErr.Kind {
	case ERR_NOT_FOUND:
		return http.StatusNotFound, "Not found"
	case ERR_VALIDATION:
		return http.StatusBadRequest, "Validation error"
	case ERR_DUPLICATED_DATA:
		return http.StatusConflict, "Validation error, duplicate data"
	case ERR_ILLEGAL_ARGUMENT:
		return http.StatusBadRequest, "Bad request"
	}
	return http.StatusInternalServerError, "Internal server error"
}
