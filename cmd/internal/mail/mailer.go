// Package mail delivers the notification mails produced by background jobs.
package mail

import (
	"context"
	"fmt"
	"mime"
	"net"
	netmail "net/mail"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/labstack/gommon/log"
)

type Message struct {
	To      string // bare address
	ToName  string
	Subject string
	Body    string
}

// recipient renders the To header value. The display name is quoted or
// encoded as needed, so it can never break out of the header.
func (m *Message) recipient() string {
	addr := netmail.Address{Name: m.ToName, Address: m.To}
	return addr.String()
}

// subject encodes the subject as an RFC 2047 word when it holds anything
// besides printable ASCII, line breaks included.
func (m *Message) subject() string {
	return mime.QEncoding.Encode("utf-8", m.Subject)
}

type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (s *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	// the envelope sender must be a bare address
	from := s.cfg.From
	if parsed, err := netmail.ParseAddress(from); err == nil {
		from = parsed.Address
	}

	if err := smtp.SendMail(addr, auth, from, []string{msg.To}, s.cfg.render(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}

func (c SMTPConfig) render(msg *Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + c.From + "\r\n")
	b.WriteString("To: " + msg.recipient() + "\r\n")
	b.WriteString("Subject: " + msg.subject() + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

// LogMailer only logs messages. Used when no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg *Message) error {
	log.Infof("mail to %s: %s", msg.To, msg.Subject)
	return nil
}
