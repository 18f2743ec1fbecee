// Package mailer delivers estimate emails over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/domodwyer/mailyak/v3"
)

const (
	DefaultFrom     = "estimate@paint-pro.io"
	DefaultFromName = "Paint Pro Estimator"
	TemplateName    = "estimate-email"
)

var (
	ErrNotConfigured    = errors.New("mailer: smtp host not configured")
	ErrInvalidRecipient = errors.New("mailer: invalid recipient address")
)

// Config holds SMTP settings. SandboxRecipient, when set, receives every
// message instead of the requested recipient.
type Config struct {
	Host             string
	Port             int
	Username         string
	Password         string
	From             string
	FromName         string
	SandboxRecipient string
}

type Message struct {
	To      string
	Subject string
	Body    string
}

// SendResult reports where a message actually went.
type SendResult struct {
	Delivered       bool   `json:"delivered"`
	ActualRecipient string `json:"actualRecipient"`
	WasRedirected   bool   `json:"wasRedirected"`
}

type Sender struct {
	cfg    Config
	logger *slog.Logger
	send   func(*mailyak.MailYak) error
}

func New(cfg Config, logger *slog.Logger) *Sender {
	if cfg.From == "" {
		cfg.From = DefaultFrom
	}
	if cfg.FromName == "" {
		cfg.FromName = DefaultFromName
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{
		cfg:    cfg,
		logger: logger.With("component", "mailer"),
		send:   func(m *mailyak.MailYak) error { return m.Send() },
	}
}

// Subject builds the estimate email subject line.
func Subject(projectName string) string {
	name := strings.TrimSpace(projectName)
	if name == "" {
		name = "New Project"
	}
	return "Your Paint Pro Estimate: " + name
}

// Configured reports whether an SMTP host is set.
func (s *Sender) Configured() bool {
	return s.cfg.Host != ""
}

// Send delivers msg. The returned SendResult is meaningful even on error:
// ActualRecipient is where delivery was attempted.
func (s *Sender) Send(ctx context.Context, msg Message) (SendResult, error) {
	recipient, redirected := s.recipient(msg.To)
	result := SendResult{ActualRecipient: recipient, WasRedirected: redirected}

	if !strings.Contains(msg.To, "@") {
		return result, fmt.Errorf("%w: %q", ErrInvalidRecipient, msg.To)
	}
	if !s.Configured() {
		return result, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if err := s.send(s.build(recipient, msg)); err != nil {
		s.logger.Warn("email delivery failed", "recipient", recipient, "error", err)
		return result, fmt.Errorf("send email: %w", err)
	}

	result.Delivered = true
	s.logger.Info("email sent", "recipient", recipient, "redirected", redirected)
	return result, nil
}

func (s *Sender) recipient(requested string) (string, bool) {
	sandbox := strings.TrimSpace(s.cfg.SandboxRecipient)
	if sandbox == "" || strings.EqualFold(sandbox, requested) {
		return requested, false
	}
	return sandbox, true
}

func (s *Sender) build(recipient string, msg Message) *mailyak.MailYak {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	m := mailyak.New(addr, auth)
	m.To(recipient)
	m.From(s.cfg.From)
	m.FromName(s.cfg.FromName)
	m.Subject(msg.Subject)
	m.Plain().Set(msg.Body)
	return m
}
