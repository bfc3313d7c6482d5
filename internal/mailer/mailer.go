package mailer

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"inventory-service/pkg/config"
	"inventory-service/pkg/logger"
)

// Mailer sends the password-reset emails. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendOTPEmail(to, otp, username string) error
	SendPasswordResetConfirmation(to, username string) error
}

// New returns the SMTP mailer, or the log-only mailer when mock mode is on
// or no sender credentials are configured.
func New(cfg *config.SMTPConfig) Mailer {
	if cfg.Mock || cfg.From == "" {
		return &LogMailer{}
	}
	return &SMTPMailer{cfg: cfg}
}

// SMTPMailer delivers mail through a plain-auth SMTP relay
type SMTPMailer struct {
	cfg *config.SMTPConfig
}

func (m *SMTPMailer) SendOTPEmail(to, otp, username string) error {
	subject := "Password Reset Code - Inventory Service"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"Your password reset code is: %s\r\n\r\n"+
			"This code expires in 10 minutes. If you did not request a password reset, ignore this email.\r\n",
		username, otp)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) SendPasswordResetConfirmation(to, username string) error {
	subject := "Password Changed - Inventory Service"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"Your password has been changed. If this was not you, contact an administrator immediately.\r\n",
		username)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)

	from := fmt.Sprintf("%s <%s>", m.cfg.SenderName, m.cfg.From)
	msg := []byte(
		"From: " + from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// LogMailer writes the mail to the log instead of sending it. Development
// mode only.
type LogMailer struct{}

func (m *LogMailer) SendOTPEmail(to, otp, username string) error {
	logger.GetLogger().Info("Mock email: password reset OTP",
		zap.String("to", to),
		zap.String("username", username),
		zap.String("otp", otp))
	return nil
}

func (m *LogMailer) SendPasswordResetConfirmation(to, username string) error {
	logger.GetLogger().Info("Mock email: password reset confirmation",
		zap.String("to", to),
		zap.String("username", username))
	return nil
}
