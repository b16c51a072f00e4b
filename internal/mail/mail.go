// Package mail delivers transactional email (reset codes) over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Sender delivers a plain-text message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender sends mail through an authenticated SMTP relay.
type SMTPSender struct {
	server   string // host:port
	host     string
	user     string
	password string
	from     string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender validates the relay address. from defaults to user.
func NewSMTPSender(server, user, password, from string) (*SMTPSender, error) {
	if server == "" || user == "" || password == "" {
		return nil, errors.New("SMTP server, user and password are required")
	}
	host, _, err := net.SplitHostPort(server)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP server %q (expected host:port): %w", server, err)
	}
	if from == "" {
		from = user
	}
	return &SMTPSender{
		server:   server,
		host:     host,
		user:     user,
		password: password,
		from:     from,
		send:     smtp.SendMail,
	}, nil
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	auth := smtp.PlainAuth("", s.user, s.password, s.host)
	if err := s.send(s.server, auth, s.from, []string{to}, buildMessage(s.from, to, subject, body)); err != nil {
		return fmt.Errorf("send email via %s: %w", s.server, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

// LogSender writes messages to the log instead of sending them. It stands
// in for SMTP in development when no relay is configured.
type LogSender struct {
	log *zap.SugaredLogger
}

func NewLogSender(log *zap.SugaredLogger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.log.Infow("email not sent, SMTP not configured", "to", to, "subject", subject, "body", body)
	return nil
}
