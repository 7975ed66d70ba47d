package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Sender dispatches verification emails. The auth service depends on this
// interface so tests can swap in a recorder.
type Sender interface {
	SendVerification(ctx context.Context, to, token string) error
}

// ResendSender sends verification emails through the Resend API.
type ResendSender struct {
	client    *resend.Client
	from      string
	verifyURL string // base link the token is appended to
	logger    zerolog.Logger
}

// NewResendSender creates a Resend-backed sender. With an empty API key the
// sender logs and drops messages instead of calling out, which keeps local
// development working without credentials.
func NewResendSender(apiKey, from, verifyURL string, logger zerolog.Logger) *ResendSender {
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}
	return &ResendSender{
		client:    client,
		from:      from,
		verifyURL: strings.TrimRight(verifyURL, "/"),
		logger:    logger.With().Str("component", "email").Logger(),
	}
}

// SendVerification emails the single-use verification link to the address.
func (s *ResendSender) SendVerification(ctx context.Context, to, token string) error {
	if _, err := mail.ParseAddress(to); err != nil {
		return fmt.Errorf("invalid recipient email: %w", err)
	}

	link := fmt.Sprintf("%s/%s", s.verifyURL, token)

	if s.client == nil {
		s.logger.Info().
			Str("to", to).
			Str("link", link).
			Msg("email delivery disabled, skipping verification email")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Verify your Evently account",
		Html: fmt.Sprintf(`<p>Click the link below to verify your email:</p>
<p><a href="%[1]s">Verify Email</a></p>
<p>Or copy and paste this link into your browser:</p>
<p>%[1]s</p>
<p>If you did not create an account, please ignore this email.</p>`, link),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend API error: %w", err)
	}

	s.logger.Info().
		Str("email_id", sent.Id).
		Str("to", to).
		Msg("verification email sent")
	return nil
}
