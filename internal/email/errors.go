package email

import "fmt"

// ============================================================================
// EMAIL ERROR CODES
// ============================================================================
// These mirror domain error codes. The handler layer maps them to HTTP
// status codes through the ErrorCode method.

const (
	codeNotFound = "not_found"
	codeInvalid  = "invalid"
)

// EmailError represents an email-specific error with a code and message.
type EmailError struct {
	Code    string
	Message string
}

func (e *EmailError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *EmailError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *EmailError) ErrorMessage() string {
	return e.Message
}

func newEmailError(code, message string) *EmailError {
	return &EmailError{Code: code, Message: message}
}

var (
	// ErrNoRecipients is returned when an email has no recipients.
	ErrNoRecipients = newEmailError(codeInvalid, "Email has no recipients")
)

// ErrTemplateNotFound creates a template not found error.
func ErrTemplateNotFound(templateName string) error {
	return newEmailError(codeNotFound, fmt.Sprintf("Email template %s not found", templateName))
}
