package notification

import (
	"context"
	"fmt"

	"invoicing/config"
	"invoicing/domain/notification"
	"invoicing/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// ReferenceTag is the SES message tag holding the resource id. SES event
// publishing includes message tags in delivery events.
const ReferenceTag = "reference"

type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESDriver sends e-mails through AWS SES v2.
type SESDriver struct {
	client           sesAPI
	from             string
	configurationSet string
}

// NewSESDriver loads the AWS configuration. Static credentials are used when
// both keys are set, otherwise the default credential chain applies.
func NewSESDriver(ctx context.Context, cfg config.SESConfig, from string) (*SESDriver, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SESDriver{
		client:           sesv2.NewFromConfig(awsCfg),
		from:             from,
		configurationSet: cfg.ConfigurationSet,
	}, nil
}

func (d *SESDriver) Name() string { return "ses" }

func (d *SESDriver) Send(ctx context.Context, msg notification.Message) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(d.from),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String("UTF-8")},
				},
			},
		},
		EmailTags: []types.MessageTag{
			{Name: aws.String(ReferenceTag), Value: aws.String(msg.Reference)},
		},
	}
	if d.configurationSet != "" {
		input.ConfigurationSetName = aws.String(d.configurationSet)
	}

	out, err := d.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}

	logger.FromContext(ctx).Debug("ses accepted message",
		zap.String("reference", msg.Reference),
		zap.String("message_id", aws.ToString(out.MessageId)))
	return nil
}

var _ notification.Driver = (*SESDriver)(nil)
