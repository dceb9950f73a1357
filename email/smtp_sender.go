package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

// SMTPSender sends emails via SMTP
type SMTPSender struct {
	config       SMTPConfig
	fromAddress  string
	fromName     string
	appName      string
	supportEmail string
}

// NewSMTPSender creates a new SMTP email sender
func NewSMTPSender(cfg Config) *SMTPSender {
	sc := cfg.SMTP
	if sc.Port == 0 {
		if sc.UseSSL {
			sc.Port = 465
		} else {
			sc.Port = 587
		}
	}
	appName := cfg.AppName
	if appName == "" {
		appName = "AgentDMS"
	}
	fromName := cfg.FromName
	if fromName == "" {
		fromName = appName
	}
	return &SMTPSender{
		config:       sc,
		fromAddress:  cfg.FromAddress,
		fromName:     fromName,
		appName:      appName,
		supportEmail: cfg.SupportEmail,
	}
}

// SendPasswordReset sends a password reset email
func (s *SMTPSender) SendPasswordReset(ctx context.Context, data PasswordResetEmailData) error {
	if data.AppName == "" {
		data.AppName = s.appName
	}
	if data.SupportEmail == "" {
		data.SupportEmail = s.supportEmail
	}
	htmlBody, err := renderPasswordResetHTML(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}
	return s.SendEmail(ctx, EmailData{
		To:       data.To,
		Subject:  fmt.Sprintf("%s password reset", data.AppName),
		TextBody: renderPasswordResetText(data),
		HTMLBody: htmlBody,
	})
}

// SendEmail sends a generic email
func (s *SMTPSender) SendEmail(ctx context.Context, data EmailData) error {
	fromAddr := data.FromAddress
	if fromAddr == "" {
		fromAddr = s.fromAddress
	}
	if fromAddr == "" {
		fromAddr = s.config.Username
	}
	fromName := data.FromName
	if fromName == "" {
		fromName = s.fromName
	}

	msg := buildMessage(fmt.Sprintf("%s <%s>", fromName, fromAddr), data)

	var auth smtp.Auth
	if s.config.Username != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	client, err := s.dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	if err := client.Mail(fromAddr); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(data.To); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write email body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close email body: %w", err)
	}
	return client.Quit()
}

// ProviderType returns the provider type
func (s *SMTPSender) ProviderType() ProviderType {
	return ProviderTypeSMTP
}

// dial connects with implicit TLS when UseSSL is set, otherwise plain with an
// optional STARTTLS upgrade.
func (s *SMTPSender) dial() (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	tlsConfig := &tls.Config{
		ServerName:         s.config.Host,
		InsecureSkipVerify: s.config.SkipVerify,
	}
	if s.config.UseSSL {
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SMTP server via SSL: %w", err)
		}
		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create SMTP client: %w", err)
		}
		return client, nil
	}
	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if s.config.UseTLS {
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to start TLS: %w", err)
		}
	}
	return client, nil
}

func buildMessage(from string, data EmailData) string {
	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + data.To + "\r\n")
	msg.WriteString("Subject: " + data.Subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")

	if data.HTMLBody == "" {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		msg.WriteString(data.TextBody)
		return msg.String()
	}

	boundary := "boundary-agentdms-email"
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary))
	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(data.TextBody)
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(data.HTMLBody)
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return msg.String()
}

var passwordResetHTML = template.Must(template.New("password_reset").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Password Reset</title></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>{{.AppName}} password reset</h2>
    <p>Hello{{if .Username}} <strong>{{.Username}}</strong>{{end}},</p>
    <p>We received a request to reset your password.</p>
    {{if .ResetLink}}<p><a href="{{.ResetLink}}">Choose a new password</a></p>{{end}}
    <p>Reset token: <code>{{.Token}}</code></p>
    <p style="color: #666; font-size: 14px;">The token expires in <strong>{{.ExpiresInMin}} minutes</strong>. If you did not ask for a reset you can ignore this email.</p>
    {{if .SupportEmail}}<p style="color: #999; font-size: 12px;">Need help? Contact <a href="mailto:{{.SupportEmail}}">{{.SupportEmail}}</a>.</p>{{end}}
</body>
</html>`))

func renderPasswordResetHTML(data PasswordResetEmailData) (string, error) {
	var buf strings.Builder
	if err := passwordResetHTML.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderPasswordResetText(data PasswordResetEmailData) string {
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("%s - Password Reset\n\n", data.AppName))
	if data.Username != "" {
		buf.WriteString(fmt.Sprintf("Hello %s,\n\n", data.Username))
	} else {
		buf.WriteString("Hello,\n\n")
	}
	buf.WriteString("We received a request to reset your password.\n\n")
	if data.ResetLink != "" {
		buf.WriteString(fmt.Sprintf("Open this link to choose a new password:\n\n    %s\n\n", data.ResetLink))
	}
	buf.WriteString(fmt.Sprintf("Reset token: %s\n\n", data.Token))
	buf.WriteString(fmt.Sprintf("The token expires in %d minutes.\n", data.ExpiresInMin))
	if data.SupportEmail != "" {
		buf.WriteString(fmt.Sprintf("\nIf you need help, contact us at %s.\n", data.SupportEmail))
	}
	return buf.String()
}
