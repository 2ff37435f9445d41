package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// CodedError defines errors that carry a stable, client-facing error code.
type CodedError interface {
	error
	ErrorCode() string
}

// Stable error codes returned to API clients.
const (
	CodeFolderAlreadyExists = "ERR_FOLDER_ALREADY_EXISTS"
	CodeInvalidPathName     = "ERR_INVALID_PATH_NAME"
	CodeInvalidTitle        = "ERR_INVALID_TITLE"
	CodeFolderNotFound      = "ERR_FOLDER_NOT_FOUND"
	CodeParentNotFound      = "ERR_PARENT_NOT_FOUND"
	CodeParentNotFolder     = "ERR_PARENT_NOT_FOLDER"
	CodeInvalidOffset       = "ERR_INVALID_OFFSET"
	CodeInvalidLimit        = "ERR_INVALID_LIMIT"
	CodeInvalidDepth        = "ERR_INVALID_DEPTH"
	CodeInvalidOrder        = "ERR_INVALID_ORDER"
	CodeInvalidType         = "ERR_INVALID_TYPE"
	CodeInvalidSite         = "ERR_INVALID_SITE"
	CodeConcurrentUpdate    = "ERR_CONCURRENT_UPDATE"
	CodeInternal            = "ERR_INTERNAL"
)

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Code    string
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Code    string
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// ErrorCode implementations (CodedError interface)
func (e *NotFoundError) ErrorCode() string   { return e.Code }
func (e *ValidationError) ErrorCode() string { return e.Code }

// Is allows errors.Is() to match the sentinel of each type
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Code         string // Stable error code (ERR_FOLDER_ALREADY_EXISTS)
	Message      string // Human-readable error message
	ResourceType string // Type of resource (folder, page, asset)
	ResourceID   string // ID of the existing/conflicting resource, empty when unknown
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// ErrorCode implements the CodedError interface
func (e *ConflictError) ErrorCode() string {
	return e.Code
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewValidationError builds a ValidationError with a code.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// NewNotFoundError builds a NotFoundError with a code.
func NewNotFoundError(code, message string) *NotFoundError {
	return &NotFoundError{Code: code, Message: message}
}

// CodeOf returns the stable code carried by err, or CodeInternal when err has none.
func CodeOf(err error) string {
	var coded CodedError
	if errors.As(err, &coded) && coded.ErrorCode() != "" {
		return coded.ErrorCode()
	}
	return CodeInternal
}

// StatusOf returns the HTTP status for err, or 500 when err is not an HTTPError.
func StatusOf(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}
	return http.StatusInternalServerError
}
