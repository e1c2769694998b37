package mailer

import (
	"context"
	"log/slog"
)

// Email is a fully rendered message ready for delivery.
type Email struct {
	From    string // Overrides the sender default when set
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	To      []string
}

// Sender delivers rendered emails.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// LogSender writes emails to the logger instead of delivering them.
// Used when no email provider is configured.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender returns a Sender that only logs.
func NewLogSender(log *slog.Logger) *LogSender {
	if log == nil {
		log = slog.Default()
	}
	return &LogSender{log: log}
}

// Send implements Sender.
func (s *LogSender) Send(ctx context.Context, email *Email) error {
	s.log.InfoContext(ctx, "email not delivered, no provider configured",
		slog.Any("to", email.To),
		slog.String("subject", email.Subject),
	)
	return nil
}
