package mailer

import (
	"fmt"

	"ubudasa-ems-backend/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends account notifications over SMTP. It is optional: with no
// SMTP_HOST configured, Enabled() is false and callers skip sending.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func New() *Mailer {
	return &Mailer{
		host:     config.GetEnv("SMTP_HOST", ""),
		port:     config.GetEnvAsInt("SMTP_PORT", 587),
		username: config.GetEnv("SMTP_USER", ""),
		password: config.GetEnv("SMTP_PASS", ""),
		from:     config.GetEnv("SMTP_FROM", "no-reply@ubudasa.local"),
	}
}

func (m *Mailer) Enabled() bool {
	return m.host != ""
}

// SendWelcome mails initial credentials to a freshly registered site manager.
func (m *Mailer) SendWelcome(to, name, phone, password string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your UBUDASA EMS account")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nA site manager account was created for you.\n\nPhone: %s\nPassword: %s\n\nPlease change the password after your first login.\n",
		name, phone, password,
	))

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(msg)
}
