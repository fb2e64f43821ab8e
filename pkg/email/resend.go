package email

import (
	"context"
	"errors"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/adorzia/adorzia-backend/pkg/config"
	"github.com/adorzia/adorzia-backend/pkg/logger"
)

// Message is a single outbound email.
type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ResendSender delivers email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	logg   *logger.Logger
}

// NewResendSender builds a sender from config. An empty API key is a
// configuration error; callers that want email to be optional should
// check cfg.APIKey before constructing one.
func NewResendSender(cfg config.ResendConfig, logg *logger.Logger) (*ResendSender, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("resend api key is required")
	}
	from := strings.TrimSpace(cfg.DefaultFrom)
	if from == "" {
		return nil, errors.New("resend from address is required")
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		logg:   logg,
	}, nil
}

// Send delivers the message. It blocks until the API call completes.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if s == nil || s.client == nil {
		return errors.New("resend sender not initialized")
	}
	if len(msg.To) == 0 {
		return errors.New("at least one recipient is required")
	}
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}
	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return err
	}
	if s.logg != nil {
		s.logg.Info(ctx, "email sent id="+sent.Id)
	}
	return nil
}
