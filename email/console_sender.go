package email

import (
	"context"

	"github.com/sirupsen/logrus"
)

// ConsoleSender logs emails instead of sending them (for development/testing)
type ConsoleSender struct {
	log logrus.FieldLogger
}

// NewConsoleSender creates a log-based email sender
func NewConsoleSender(log logrus.FieldLogger) Sender {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ConsoleSender{log: log.WithField("component", "email")}
}

// SendPasswordReset logs the reset link
func (c *ConsoleSender) SendPasswordReset(ctx context.Context, data PasswordResetEmailData) error {
	c.log.WithFields(logrus.Fields{
		"to":         data.To,
		"username":   data.Username,
		"token":      data.Token,
		"link":       data.ResetLink,
		"expires_in": data.ExpiresInMin,
	}).Info("password reset email")
	return nil
}

// SendEmail logs the email
func (c *ConsoleSender) SendEmail(ctx context.Context, data EmailData) error {
	c.log.WithFields(logrus.Fields{
		"from":    data.FromAddress,
		"to":      data.To,
		"subject": data.Subject,
	}).Info(data.TextBody)
	return nil
}

// ProviderType returns the provider type
func (c *ConsoleSender) ProviderType() ProviderType {
	return ProviderTypeConsole
}

// NoOpSender is a no-operation sender that discards emails silently
type NoOpSender struct{}

// NewNoOpSender creates a no-operation email sender
func NewNoOpSender() Sender {
	return &NoOpSender{}
}

func (n *NoOpSender) SendPasswordReset(ctx context.Context, data PasswordResetEmailData) error {
	return nil
}

func (n *NoOpSender) SendEmail(ctx context.Context, data EmailData) error {
	return nil
}

func (n *NoOpSender) ProviderType() ProviderType {
	return ProviderTypeNoOp
}
