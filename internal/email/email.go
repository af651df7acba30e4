// Package email composes and delivers storefront emails: order
// confirmations and account welcomes.
package email

import "context"

// Email represents an email message to be sent.
type Email struct {
	To       []string          // Recipient email addresses
	From     string            // Sender address; the sender's default when empty
	Subject  string            // Email subject
	TextBody string            // Plain text body
	HTMLBody string            // HTML body (optional)
	Headers  map[string]string // Custom headers (optional)
}

// Sender delivers email messages.
type Sender interface {
	// Send sends an email message and returns a provider message ID, if
	// one is available.
	Send(ctx context.Context, email *Email) (string, error)
}
