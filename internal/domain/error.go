package domain

import (
	"errors"
	"fmt"
)

// Application error codes.
// Handlers map these to HTTP status codes.
const (
	ECONFLICT     = "conflict"        // 409 - duplicate account, stale state
	EINTERNAL     = "internal"        // 500 - details hidden from the visitor
	EINVALID      = "invalid"         // 400 - bad input
	ENOTFOUND     = "not_found"       // 404
	EUNAUTHORIZED = "unauthorized"    // 401 - sign-in required or bad credentials
	EFORBIDDEN    = "forbidden"       // 403
	ENOTIMPL      = "not_implemented" // 501
	ERATELIMIT    = "rate_limit"      // 429
	ETOOLARGE     = "too_large"       // 413 - request body over the limit
	EUNAVAILABLE  = "unavailable"     // 503 - catalog or state backend down
)

// genericMessage is shown instead of the message of internal errors.
const genericMessage = "An internal error occurred. Please try again later."

// Error is an application error carrying a machine-readable code.
type Error struct {
	// Code is one of the E* constants.
	Code string

	// Message is safe to show to visitors.
	Message string

	// Op names the operation that failed (e.g. "cart.add"). Logged, never shown.
	Op string

	// Err is the wrapped cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap supports errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the code from err.
// Returns "" for nil and EINTERNAL for errors that carry no code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError(err); ok {
		return e.Code
	}
	if IsValidationError(err) {
		return EINVALID
	}
	return EINTERNAL
}

// ErrorMessage extracts a visitor-facing message from err.
// Internal and unknown errors collapse to a generic message.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError(err); ok && e.Code != EINTERNAL {
		return e.Message
	}
	if ve := validationError(err); ve != nil {
		return "Please correct the highlighted fields."
	}
	return genericMessage
}

// ErrorOp extracts the failing operation from err, for logging.
func ErrorOp(err error) string {
	if e, ok := asError(err); ok {
		return e.Op
	}
	if ve := validationError(err); ve != nil {
		return ve.Op
	}
	return ""
}

// Errorf builds an error with a formatted message.
//
//	domain.Errorf(domain.EINVALID, "cart.add", "quantity %d exceeds stock", qty)
func Errorf(code, op, format string, args ...any) error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a code and operation to err. Returns nil if err is nil.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Op: op, Message: message, Err: err}
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

func asError(err error) (*Error, bool) {
	var e *Error
	if err != nil && errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// =============================================================================
// Validation errors
// =============================================================================

// ValidationError collects field-level failures of a submitted form.
type ValidationError struct {
	// Fields maps a field name to its message.
	Fields map[string]string

	// Op is the operation that rejected the input.
	Op string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	prefix := ""
	if e.Op != "" {
		prefix = e.Op + ": "
	}
	if len(e.Fields) == 1 {
		for field, msg := range e.Fields {
			return fmt.Sprintf("%s%s: %s", prefix, field, msg)
		}
	}
	return fmt.Sprintf("%svalidation failed for %d fields", prefix, len(e.Fields))
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(op, field, message string) error {
	return &ValidationError{Op: op, Fields: map[string]string{field: message}}
}

// AddFieldError adds a field failure to err, creating a ValidationError
// when err is nil or of another type.
func AddFieldError(err error, field, message string) error {
	if ve := validationError(err); ve != nil {
		ve.Fields[field] = message
		return ve
	}
	return &ValidationError{Fields: map[string]string{field: message}}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	return validationError(err) != nil
}

// GetValidationFields returns the field map of a ValidationError, or nil.
func GetValidationFields(err error) map[string]string {
	if ve := validationError(err); ve != nil {
		return ve.Fields
	}
	return nil
}

func validationError(err error) *ValidationError {
	var ve *ValidationError
	if err != nil && errors.As(err, &ve) {
		return ve
	}
	return nil
}

// =============================================================================
// Constructors
// =============================================================================

// NotFound reports a missing resource.
//
//	domain.NotFound("product.get", "product", "42")
func NotFound(op, resource, identifier string) error {
	return &Error{Code: ENOTFOUND, Op: op, Message: fmt.Sprintf("%s not found: %s", resource, identifier)}
}

// Unauthorized reports missing or bad credentials.
func Unauthorized(op, message string) error {
	return &Error{Code: EUNAUTHORIZED, Op: op, Message: message}
}

// Forbidden reports an authenticated but disallowed action.
func Forbidden(op, message string) error {
	return &Error{Code: EFORBIDDEN, Op: op, Message: message}
}

// Invalid reports a single bad input that is not tied to a form field.
func Invalid(op, message string) error {
	return &Error{Code: EINVALID, Op: op, Message: message}
}

// Conflict reports a state conflict such as a duplicate account.
func Conflict(op, message string) error {
	return &Error{Code: ECONFLICT, Op: op, Message: message}
}

// Unavailable reports a backend that could not be reached.
func Unavailable(err error, op, message string) error {
	return &Error{Code: EUNAVAILABLE, Op: op, Message: message, Err: err}
}

// Internal wraps an unexpected failure. Visitors see a generic message.
func Internal(err error, op, message string) error {
	return &Error{Code: EINTERNAL, Op: op, Message: message, Err: err}
}
