package email

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailer_SelectsProvider(t *testing.T) {
	lgr := zerolog.Nop()

	tests := []struct {
		name string
		cfg  Config
		want interface{}
	}{
		{"log", Config{Provider: "log"}, &LogMailer{}},
		{"unknown falls back to log", Config{Provider: ""}, &LogMailer{}},
		{"smtp without credentials", Config{Provider: "smtp", SMTP: SMTPConfig{Host: "smtp.example.com"}}, &LogMailer{}},
		{"smtp", Config{Provider: "smtp", SMTP: SMTPConfig{Host: "smtp.example.com", Username: "u", Password: "p"}}, &SMTPMailer{}},
		{"sendgrid", Config{Provider: "sendgrid", SendGridAPIKey: "key"}, &SendGridMailer{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.want, NewMailer(tt.cfg, lgr))
		})
	}
}

func TestPasswordResetMessage_EscapesHTML(t *testing.T) {
	msg := PasswordResetMessage("a@example.com", "<b>Asha</b>", "https://portal.example/reset-password?token=abc&x=1")

	assert.Equal(t, "Reset your password", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "&lt;b&gt;Asha&lt;/b&gt;")
	assert.Contains(t, msg.HTMLBody, "token=abc&amp;x=1")
	assert.Contains(t, msg.TextBody, "https://portal.example/reset-password?token=abc&x=1")
}

func TestLogMailer_LogsLink(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))

	require.NoError(t, m.SendPasswordReset(context.Background(), "a@example.com", "Asha", "https://x/reset-password?token=t1"))
	assert.Contains(t, buf.String(), "token=t1")
	assert.Contains(t, buf.String(), "a@example.com")
}

func TestSMTPMailer_BuildMessage(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{FromName: "Portal", FromEmail: "no-reply@example.com"}, zerolog.Nop())
	raw := string(m.buildMessage(PasswordResetMessage("a@example.com", "Asha", "https://x/r?token=t")))

	assert.True(t, strings.HasPrefix(raw, "From: Portal <no-reply@example.com>\r\n"))
	assert.Contains(t, raw, "To: a@example.com\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8\r\n\r\n")
}

func TestSendGridMailer(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	status := http.StatusAccepted

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(status)
	}))
	defer srv.Close()

	m := NewSendGridMailer("sg-key", srv.URL, "Portal", "no-reply@example.com", zerolog.Nop())
	require.NoError(t, m.SendPasswordReset(context.Background(), "a@example.com", "Asha", "https://x/r?token=t"))

	assert.Equal(t, "Bearer sg-key", gotAuth)
	require.NotNil(t, gotBody)
	from := gotBody["from"].(map[string]interface{})
	assert.Equal(t, "no-reply@example.com", from["email"])

	status = http.StatusUnauthorized
	err := m.SendPasswordReset(context.Background(), "a@example.com", "Asha", "https://x/r?token=t")
	assert.Error(t, err)
}
