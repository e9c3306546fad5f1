package email

import (
	"context"
	"fmt"
	"html"

	"github.com/rs/zerolog"
)

// Mailer delivers transactional email to students.
type Mailer interface {
	SendPasswordReset(ctx context.Context, toEmail, toName, resetLink string) error
}

// Message is a rendered email
type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
}

// Config selects and configures a Mailer
type Config struct {
	Provider       string // smtp, sendgrid or log
	SMTP           SMTPConfig
	SendGridAPIKey string
	SendGridHost   string
	FromName       string
	FromEmail      string
}

// NewMailer returns the Mailer for cfg.Provider. SMTP without credentials
// degrades to the log mailer so local setups still surface reset links.
func NewMailer(cfg Config, logger zerolog.Logger) Mailer {
	switch cfg.Provider {
	case "sendgrid":
		return NewSendGridMailer(cfg.SendGridAPIKey, cfg.SendGridHost, cfg.FromName, cfg.FromEmail, logger)
	case "smtp":
		if cfg.SMTP.Username == "" || cfg.SMTP.Password == "" {
			logger.Warn().Msg("SMTP credentials not configured - falling back to log mailer")
			return NewLogMailer(logger)
		}
		cfg.SMTP.FromName = cfg.FromName
		cfg.SMTP.FromEmail = cfg.FromEmail
		return NewSMTPMailer(cfg.SMTP, logger)
	default:
		return NewLogMailer(logger)
	}
}

// PasswordResetMessage renders the reset email
func PasswordResetMessage(toEmail, toName, resetLink string) Message {
	name := html.EscapeString(toName)
	link := html.EscapeString(resetLink)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Reset your password</h2>
				<p>Hello %s,</p>
				<p>We received a request to reset the password for your counselling portal account. Click the button below to choose a new password:</p>
				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #1a56db; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset Password</a>
				</div>
				<p>This link expires in 1 hour and can be used once.</p>
				<p>If you did not request a reset, you can ignore this email.</p>
			</div>
		</body>
		</html>
	`, name, link)

	text := fmt.Sprintf("Hello %s,\n\nReset your counselling portal password using this link (valid for 1 hour):\n%s\n\nIf you did not request a reset, ignore this email.\n", toName, resetLink)

	return Message{
		ToEmail:  toEmail,
		ToName:   toName,
		Subject:  "Reset your password",
		HTMLBody: body,
		TextBody: text,
	}
}

// LogMailer writes emails to the log instead of sending them.
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendPasswordReset logs the reset link
func (m *LogMailer) SendPasswordReset(_ context.Context, toEmail, _ string, resetLink string) error {
	m.logger.Warn().
		Str("toEmail", toEmail).
		Str("resetLink", resetLink).
		Msg("Mail delivery disabled - password reset email not sent")
	return nil
}
