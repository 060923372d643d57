package collection

import (
	"errors"
	"fmt"
)

// Error represents a failure of the collection's configuration or view
// contract.
//
// Collection errors include:
//   - Duplicate view name: two declarations derive the same public name
//   - Empty path: a declared path expression is the empty string
//   - Immutable view: an external write to a declared view's public name
//   - Unknown view: a read or write addressed to an undeclared name
//
// All errors are synchronous and surfaced immediately; none are retried or
// downgraded internally.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// View is the public view name involved, when known.
	View string

	// Path is the source path expression involved, when known.
	Path string
}

// ErrorCode categorizes collection errors.
type ErrorCode string

const (
	// ErrCodeDuplicateView indicates two declarations derive the same
	// public name. Fatal to construction.
	ErrCodeDuplicateView ErrorCode = "CONFIG_DUPLICATE_VIEW"

	// ErrCodeEmptyPath indicates a declared path expression is empty.
	// Fatal to construction.
	ErrCodeEmptyPath ErrorCode = "CONFIG_EMPTY_PATH"

	// ErrCodeImmutableView indicates an external write to a declared view.
	ErrCodeImmutableView ErrorCode = "IMMUTABLE_VIEW"

	// ErrCodeUnknownView indicates a read or write addressed to a name no
	// declaration derives.
	ErrCodeUnknownView ErrorCode = "UNKNOWN_VIEW"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.View != "" && e.Path != "":
		return fmt.Sprintf("%s: %s (view=%s, path=%s)", e.Code, e.Message, e.View, e.Path)
	case e.View != "":
		return fmt.Sprintf("%s: %s (view=%s)", e.Code, e.Message, e.View)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsConfigError returns true if the error is a construction-time
// configuration error (duplicate view name or empty path).
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeDuplicateView || ce.Code == ErrCodeEmptyPath
	}
	return false
}

// IsImmutableViewError returns true if the error is a rejected external
// write to a declared view.
func IsImmutableViewError(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeImmutableView
	}
	return false
}

// IsUnknownViewError returns true if the error names an undeclared view.
func IsUnknownViewError(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeUnknownView
	}
	return false
}

// newDuplicateViewError creates an Error for a public-name collision.
func newDuplicateViewError(name, path string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateView,
		Message: "view name already declared",
		View:    name,
		Path:    path,
	}
}

// newEmptyPathError creates an Error for an empty path expression.
func newEmptyPathError() *Error {
	return &Error{
		Code:    ErrCodeEmptyPath,
		Message: "view path expression must not be empty",
	}
}

// newImmutableViewError creates an Error for a rejected view write.
func newImmutableViewError(name string) *Error {
	return &Error{
		Code:    ErrCodeImmutableView,
		Message: "declared views are read-only",
		View:    name,
	}
}

// newUnknownViewError creates an Error for an undeclared view name.
func newUnknownViewError(name string) *Error {
	return &Error{
		Code:    ErrCodeUnknownView,
		Message: "no view declared under this name",
		View:    name,
	}
}
