package services

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Mailer dispatches transactional mail. An interface so resolver tests can
// record sends instead of talking SMTP.
type Mailer interface {
	Send(to, subject, html string) error
}

// SMTPMailer sends through a third-party relay with plain auth.
type SMTPMailer struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

func NewSMTPMailer(host, port, user, password, from string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Password: password, From: from}
}

func (m *SMTPMailer) Send(to, subject, html string) error {
	e := email.NewEmail()
	e.From = m.From
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(html)

	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)
	if err := e.Send(addr, smtp.PlainAuth("", m.User, m.Password, m.Host)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
