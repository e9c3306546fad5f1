package email

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendGridDefaultHost = "https://api.sendgrid.com"
	sendGridEndpoint    = "/v3/mail/send"
)

// SendGridMailer sends mail through the SendGrid v3 API
type SendGridMailer struct {
	key    string
	host   string
	from   *sgmail.Email
	logger zerolog.Logger
}

// NewSendGridMailer creates a SendGridMailer. An empty host uses the public API.
func NewSendGridMailer(key, host, fromName, fromEmail string, logger zerolog.Logger) *SendGridMailer {
	if host == "" {
		host = sendGridDefaultHost
	}
	return &SendGridMailer{
		key:    key,
		host:   host,
		from:   sgmail.NewEmail(fromName, fromEmail),
		logger: logger,
	}
}

// SendPasswordReset sends the reset link
func (m *SendGridMailer) SendPasswordReset(ctx context.Context, toEmail, toName, resetLink string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.send(PasswordResetMessage(toEmail, toName, resetLink))
}

func (m *SendGridMailer) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(
		sgmail.NewContent("text/plain", msg.TextBody),
		sgmail.NewContent("text/html", msg.HTMLBody),
	)
	return v3
}

func (m *SendGridMailer) send(msg Message) error {
	req := sendgrid.GetRequest(m.key, sendGridEndpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		m.logger.Error().Err(err).Msg("SendGrid request failed")
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		m.logger.Error().Int("status", res.StatusCode).Str("body", res.Body).Msg("SendGrid rejected email")
		return fmt.Errorf("sendgrid rejected email with status %d", res.StatusCode)
	}
	return nil
}
