package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Mailer delivers password-reset messages. Implementations must not reveal
// delivery details to callers beyond success/failure.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, resetURL string) error
}

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer builds a mailer with the given API key and sender address.
func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

// SendPasswordReset emails the reset link to the recipient.
func (m *ResendMailer) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	body, err := renderResetEmail(name, resetURL)
	if err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Password Reset Request",
		Html:    body,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// LogMailer stands in when no email provider is configured; it logs the
// reset link instead of sending it.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer builds the logging stand-in.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendPasswordReset logs the link and succeeds.
func (m *LogMailer) SendPasswordReset(_ context.Context, to, name, resetURL string) error {
	m.logger.Info("password reset link (email provider not configured)",
		zap.String("to", to),
		zap.String("name", name),
		zap.String("url", resetURL),
	)
	return nil
}
