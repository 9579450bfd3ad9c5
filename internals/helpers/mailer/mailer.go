// helpers/mailer/mailer.go
package mailer

import (
	"context"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"praktikly_backend/internals/configs"
)

// Sender is the email capability the workflow consumes. Delivery failures are
// for the caller to log, never to surface.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type SESSender struct {
	client *ses.Client
	from   string
}

var Default Sender

// Init wires the package-level SES sender. When AWS credentials are missing
// the server still starts; Default stays nil and SendBestEffort becomes a
// logged no-op.
func Init(ctx context.Context) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(configs.AWSRegion))
	if err != nil {
		return err
	}
	Default = &SESSender{
		client: ses.NewFromConfig(cfg),
		from:   configs.MailSenderAddress,
	}
	return nil
}

func (s *SESSender) Send(ctx context.Context, to, subject, html string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Html: &sestypes.Content{Data: aws.String(html)},
			},
		},
	}
	_, err := s.client.SendEmail(ctx, input)
	return err
}

// SendBestEffort logs and swallows any failure. State transitions call this
// after their own writes have been persisted.
func SendBestEffort(ctx context.Context, to, subject, html string) {
	if Default == nil {
		log.Printf("[WARNING] mailer not configured, dropping email to=%s subject=%q", to, subject)
		return
	}
	if err := Default.Send(ctx, to, subject, html); err != nil {
		log.Printf("[ERROR] DEPENDENCY_FAILURE email send to=%s subject=%q: %v", to, subject, err)
	}
}
