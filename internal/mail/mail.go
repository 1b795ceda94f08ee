// Package mail delivers transactional notifications. Delivery is always
// best effort: callers log failures and carry on.
package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends over a plain SMTP relay.
type SMTPMailer struct {
	Addr string // host:port
	From string
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")
	if err := smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer stands in when no SMTP relay is configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, _ string) error {
	log.Printf("[mail] to=%s subject=%q (delivery disabled)", to, subject)
	return nil
}

// New picks the real mailer when an SMTP address is configured.
func New(addr, from string) Mailer {
	if addr == "" {
		return LogMailer{}
	}
	return &SMTPMailer{Addr: addr, From: from}
}
