package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// LogSender writes emails to the logger instead of delivering them. It is
// used when email delivery is disabled.
type LogSender struct {
	logger *slog.Logger
	seq    atomic.Int64
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, email *Email) (string, error) {
	if len(email.To) == 0 {
		return "", ErrNoRecipients
	}
	id := fmt.Sprintf("log-%d", s.seq.Add(1))
	s.logger.InfoContext(ctx, "email not delivered (delivery disabled)",
		"id", id,
		"to", email.To,
		"subject", email.Subject,
	)
	return id, nil
}
