package mail

import (
	"errors"

	"hospital-portal/config"

	"gopkg.in/gomail.v2"
)

var ErrMailDisabled = errors.New("smtp is not configured")

// Mailer sends HTML email over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns a mailer; with an empty SMTP host every Send reports ErrMailDisabled.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	m := &Mailer{from: cfg.From}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	if m.from == "" {
		m.from = cfg.User
	}
	return m
}

func (m *Mailer) Enabled() bool {
	return m.dialer != nil
}

func (m *Mailer) Send(to, subject, body string) error {
	if m.dialer == nil {
		return ErrMailDisabled
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}
