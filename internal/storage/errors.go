package storage

import (
	"errors"
	"fmt"
)

// ============================================================================
// STORAGE ERROR CODES
// ============================================================================
// These mirror domain error codes. The handler layer maps them to HTTP
// status codes through the ErrorCode method.

const (
	codeInvalid  = "invalid"
	codeNotFound = "not_found"
	codeNotImpl  = "not_implemented"
)

// StorageError is a storage failure with a domain-style code.
type StorageError struct {
	Code    string
	Message string
}

func (e *StorageError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *StorageError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *StorageError) ErrorMessage() string {
	return e.Message
}

func newStorageError(code, message string) *StorageError {
	return &StorageError{Code: code, Message: message}
}

var (
	// ErrReadOnly is returned by writes to a backend that only serves files.
	ErrReadOnly = newStorageError(codeNotImpl, "storage backend is read-only")

	// ErrInvalidKey is returned for keys that escape the storage root.
	ErrInvalidKey = newStorageError(codeInvalid, "invalid storage key")
)

// ErrFileNotFound creates an error for when a file is not found.
func ErrFileNotFound(key string) error {
	return newStorageError(codeNotFound, fmt.Sprintf("file not found: %s", key))
}

// ErrUnknownProvider creates an error for unknown storage providers.
func ErrUnknownProvider(provider string) error {
	return newStorageError(codeInvalid, fmt.Sprintf("unknown storage provider: %s", provider))
}

// IsNotFound reports whether err is a not-found storage error.
func IsNotFound(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Code == codeNotFound
}
