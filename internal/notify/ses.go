package notify

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sesTypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"pricewatch/internal/models"
)

// SESMailer sends alerts through Amazon SES. Used by the mailer Lambda.
type SESMailer struct {
	client *ses.Client
	from   string
}

func NewSESMailer(ctx context.Context, from string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &SESMailer{
		client: ses.NewFromConfig(cfg),
		from:   from,
	}, nil
}

// Send delivers a rendered notification.
func (m *SESMailer) Send(ctx context.Context, n models.Notification) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: &m.from,
		Destination: &sesTypes.Destination{
			ToAddresses: []string{n.Email},
		},
		Message: &sesTypes.Message{
			Subject: &sesTypes.Content{
				Data: &n.Subject,
			},
			Body: &sesTypes.Body{
				Text: &sesTypes.Content{
					Data: &n.TextBody,
				},
				Html: &sesTypes.Content{
					Data: &n.HTMLBody,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email with SES: %w", err)
	}
	return nil
}
