package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ProviderType represents the type of email provider
type ProviderType string

const (
	ProviderTypeConsole ProviderType = "console"
	ProviderTypeSMTP    ProviderType = "smtp"
	ProviderTypeNoOp    ProviderType = "noop"
)

// Config selects and configures the outgoing mail provider.
type Config struct {
	Provider     string     `koanf:"provider"` // console, smtp or noop
	FromAddress  string     `koanf:"from_address"`
	FromName     string     `koanf:"from_name"`
	AppName      string     `koanf:"app_name"`
	SupportEmail string     `koanf:"support_email"`
	ResetURL     string     `koanf:"reset_url"` // token is appended as ?token=
	SMTP         SMTPConfig `koanf:"smtp"`
}

// SMTPConfig holds SMTP-specific configuration
type SMTPConfig struct {
	Host       string `koanf:"host"`
	Port       int    `koanf:"port"`
	Username   string `koanf:"username"`
	Password   string `koanf:"password"`
	UseTLS     bool   `koanf:"use_tls"`
	UseSSL     bool   `koanf:"use_ssl"`
	SkipVerify bool   `koanf:"skip_verify"`
}

// PasswordResetEmailData contains data for password reset emails
type PasswordResetEmailData struct {
	To           string
	Username     string
	Token        string
	ResetLink    string
	ExpiresInMin int
	AppName      string
	SupportEmail string
}

// EmailData represents generic email data
type EmailData struct {
	To          string
	Subject     string
	TextBody    string
	HTMLBody    string
	FromAddress string
	FromName    string
}

// Sender defines the interface for sending emails
type Sender interface {
	// SendPasswordReset sends a password reset link
	SendPasswordReset(ctx context.Context, data PasswordResetEmailData) error

	// SendEmail sends a generic email
	SendEmail(ctx context.Context, data EmailData) error

	// ProviderType returns the type of the provider
	ProviderType() ProviderType
}

// New creates the Sender selected by cfg.
func New(cfg Config, log logrus.FieldLogger) (Sender, error) {
	switch ProviderType(strings.ToLower(strings.TrimSpace(cfg.Provider))) {
	case "", ProviderTypeConsole:
		return NewConsoleSender(log), nil
	case ProviderTypeSMTP:
		if cfg.SMTP.Host == "" {
			return nil, fmt.Errorf("smtp host is required")
		}
		return NewSMTPSender(cfg), nil
	case ProviderTypeNoOp:
		return NewNoOpSender(), nil
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Provider)
	}
}

// ResetLink builds the link put into reset emails.
func ResetLink(base, token string) string {
	if base == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "token=" + token
}
