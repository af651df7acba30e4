package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ACCOUNT DOMAIN TYPES
// =============================================================================

var (
	ErrEmailTaken         = &Error{Code: ECONFLICT, Message: "An account with this email already exists"}
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Incorrect email or password"}
	ErrNotSignedIn        = &Error{Code: EUNAUTHORIZED, Message: "Please sign in first"}
)

// Account is a stored local account.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// User returns the context view of the account.
func (a Account) User() *User {
	return &User{ID: a.ID, Name: a.Name, Email: a.Email}
}

// Registration is the input of account registration.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims surrounding whitespace from every field.
func (r Registration) Normalize() Registration {
	return Registration{
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.TrimSpace(r.Email),
		Password: strings.TrimSpace(r.Password),
	}
}

// Credentials is the input of sign-in.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NormalizeEmail is the lookup form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
