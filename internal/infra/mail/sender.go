package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/rcardo11/leadpilot/internal/infra/http/middleware"
)

// NewEmailSender builds the dispatcher for one regional SMTP account.
// US leads go out through the Outlook account, India leads through Gmail;
// the region policy picks which sender a lead gets.
func NewEmailSender(provider, host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Provider: provider,
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// Send dispatches one rendered message. The body is already final HTML;
// no templating happens at this layer.
func (s *EmailSender) Send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(m) }()

	select {
	case <-ctx.Done():
		// A timed-out dispatch counts as a failed dispatch.
		middleware.RecordIntegrationError(s.Provider)
		return fmt.Errorf("smtp send to %s canceled: %w", to, ctx.Err())
	case err := <-done:
		if err != nil {
			middleware.RecordIntegrationError(s.Provider)
			return fmt.Errorf("smtp send via %s failed: %w", s.Provider, err)
		}
	}

	middleware.RecordEmailSent(s.Provider)
	return nil
}
