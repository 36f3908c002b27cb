// internal/notify/mailer.go
//
// Outbound mail for player reminders.
// Implementations:
//   - SESMailer: Amazon SES v2.
//   - LogMailer: writes the message to the log instead of sending it; used
//     when no sender address is configured.

package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// sesAPI is the subset of the SES v2 client used here.
type sesAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESMailer sends mail through Amazon SES v2.
type SESMailer struct {
	client sesAPI
	from   string
}

// NewSESMailer loads the default AWS configuration for region.
func NewSESMailer(ctx context.Context, region, from string) (*SESMailer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	log.Info().Str("from", from).Str("region", region).Msg("email service enabled")
	return &SESMailer{client: sesv2.NewFromConfig(cfg), from: from}, nil
}

func (s *SESMailer) Send(ctx context.Context, m Message) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{m.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(m.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(m.Body),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}
	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", m.To, err)
	}
	ev := log.Debug().Str("to", m.To).Str("subject", m.Subject)
	if out.MessageId != nil {
		ev = ev.Str("message_id", *out.MessageId)
	}
	ev.Msg("email sent")
	return nil
}

// LogMailer logs messages instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, m Message) error {
	log.Info().Str("to", m.To).Str("subject", m.Subject).Msg("skipping email send (mailer disabled)")
	return nil
}
