package email

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/NightFury2415/CSC648-Personal-Project/internal/config"
)

// SES sends mail through Amazon SES. Region and credentials come from the
// standard AWS environment/shared config chain.
type SES struct {
	client *sesv2.Client
	from   string
}

// NewSES constructs an SES mailer from the ambient AWS configuration.
func NewSES(cfg *config.Config) (*SES, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SES{
		client: sesv2.NewFromConfig(awsCfg),
		from:   cfg.SESFromEmail,
	}, nil
}

func (s *SES) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	body := &types.Body{
		Text: &types.Content{Data: aws.String(textBody)},
	}
	if htmlBody != "" {
		body.Html = &types.Content{Data: aws.String(htmlBody)}
	}

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body:    body,
			},
		},
	})
	if err != nil {
		log.Printf("ses send to %s failed: %v", to, err)
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}
