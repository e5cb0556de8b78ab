package email

import (
	"context"

	"github.com/dtroode/newsletter-server/internal/logger"
	"github.com/dtroode/newsletter-server/internal/model"
)

var _ model.EmailSender = (*LogSender)(nil)

// LogSender writes emails to the log instead of delivering them. It is used
// when no email provider is configured.
type LogSender struct {
	logger *logger.Logger
}

func NewLogSender(logger *logger.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, e model.Email) error {
	s.logger.WithContext(ctx).Warn("Email client: provider not configured, not sending email",
		"to", e.To,
		"subject", e.Subject,
		"text", e.Text)
	return nil
}
