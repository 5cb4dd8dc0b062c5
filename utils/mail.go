package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Abhishekdhal/kiit-quest-backend/config"
)

// Mailer delivers the reset OTP to a user's registered email. It is an
// interface so tests can substitute a recorder for the SMTP client.
type Mailer interface {
	SendOTP(to, otp string, ttlMinutes int) error
}

// SMTPMailer sends over plain SMTP auth (Gmail-style relay).
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendOTP sends an HTML-formatted mail carrying the plain 4-digit code and
// stating its validity window.
func (m *SMTPMailer) SendOTP(to, otp string, ttlMinutes int) error {
	if m.cfg.Host == "" || m.cfg.User == "" || m.cfg.Password == "" {
		return fmt.Errorf("smtp not configured")
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.User
	}

	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: KIIT Quest Password Reset OTP",
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="utf-8"`,
		"",
		BuildOTPBody(otp, ttlMinutes),
	}
	msg := strings.Join(headers, "\r\n")

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}

// BuildOTPBody renders the HTML mail body. Split out so the template can
// be checked without an SMTP server.
func BuildOTPBody(otp string, ttlMinutes int) string {
	return fmt.Sprintf(
		"<p>Hello,</p>"+
			"<p>Your password reset code is:</p>"+
			"<h2>%s</h2>"+
			"<p>This code is valid for %d minutes. If you did not request a "+
			"password reset, you can ignore this email.</p>"+
			"<p>The KIIT Quest Team</p>",
		otp, ttlMinutes)
}
