package email

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestNewSelectsProvider(t *testing.T) {
	s, err := New(Config{}, nil)
	if err != nil || s.ProviderType() != ProviderTypeConsole {
		t.Fatalf("expected console sender, got %v %v", s, err)
	}
	s, err = New(Config{Provider: "noop"}, nil)
	if err != nil || s.ProviderType() != ProviderTypeNoOp {
		t.Fatalf("expected noop sender, got %v %v", s, err)
	}
	if _, err := New(Config{Provider: "smtp"}, nil); err == nil {
		t.Fatalf("smtp without host should fail")
	}
	s, err = New(Config{Provider: "smtp", SMTP: SMTPConfig{Host: "mail.local"}}, nil)
	if err != nil || s.ProviderType() != ProviderTypeSMTP {
		t.Fatalf("expected smtp sender, got %v %v", s, err)
	}
	if _, err := New(Config{Provider: "pigeon"}, nil); err == nil {
		t.Fatalf("unknown provider should fail")
	}
}

func TestConsoleSenderLogs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := NewConsoleSender(logger)
	err := s.SendPasswordReset(context.Background(), PasswordResetEmailData{To: "a@b.c", Token: "tok"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.InfoLevel || entry.Data["token"] != "tok" {
		t.Fatalf("unexpected log entry %+v", entry)
	}
}

func TestResetLink(t *testing.T) {
	if got := ResetLink("https://app/reset", "abc"); got != "https://app/reset?token=abc" {
		t.Fatalf("unexpected link %s", got)
	}
	if got := ResetLink("https://app/reset?x=1", "abc"); got != "https://app/reset?x=1&token=abc" {
		t.Fatalf("unexpected link %s", got)
	}
	if ResetLink("", "abc") != "" {
		t.Fatalf("empty base should give empty link")
	}
}

func TestRenderPasswordReset(t *testing.T) {
	data := PasswordResetEmailData{AppName: "AgentDMS", Username: "ann", Token: "t0k", ResetLink: "https://x/?token=t0k", ExpiresInMin: 30}
	html, err := renderPasswordResetHTML(data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "t0k") || !strings.Contains(html, "30 minutes") {
		t.Fatalf("html missing data: %s", html)
	}
	text := renderPasswordResetText(data)
	if !strings.Contains(text, "Hello ann") || !strings.Contains(text, "https://x/?token=t0k") {
		t.Fatalf("text missing data: %s", text)
	}
	msg := buildMessage("A <a@b.c>", EmailData{To: "x@y.z", Subject: "s", TextBody: "t", HTMLBody: "<p>h</p>"})
	if !strings.Contains(msg, "multipart/alternative") {
		t.Fatalf("expected multipart message")
	}
}
