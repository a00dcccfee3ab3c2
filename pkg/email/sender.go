// Package email sends order status-change notification emails via AWS SES.
// Delivery is best-effort; failures are logged and never surfaced to the
// mutation that triggered them.
package email

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "email").Logger()

// Sender sends a single email.
type Sender interface {
	SendEmail(ctx context.Context, to, subject, plainTextContent, htmlContent string) error
}

// SESV2Sender implements Sender using AWS SES v2.
type SESV2Sender struct {
	client    *sesv2.Client
	fromEmail string
}

// NewSESV2Sender creates a sender for Amazon SES, loading credentials from
// the environment.
func NewSESV2Sender(ctx context.Context, region, fromEmail string) (*SESV2Sender, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return &SESV2Sender{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
	}, nil
}

// SendEmail sends one email through the SES v2 API.
func (s *SESV2Sender) SendEmail(ctx context.Context, to, subject, plainTextContent, htmlContent string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: &s.fromEmail,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    &subject,
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    &plainTextContent,
						Charset: aws.String("UTF-8"),
					},
					Html: &types.Content{
						Data:    &htmlContent,
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		logger.Error().Err(err).Str("to", to).Msg("failed to send email via SES")
		return err
	}
	return nil
}
