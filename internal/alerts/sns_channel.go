package alerts

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSChannel sends SMS through AWS SNS. It carries no voice capability, so
// deployments using it keep Twilio for the primary-contact call or run
// without calls.
type SNSChannel struct {
	client *sns.Client
}

// NewSNSChannel creates an SNS channel using the default AWS credential chain
func NewSNSChannel(ctx context.Context, region string) (*SNSChannel, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SNSChannel{client: sns.NewFromConfig(awsCfg)}, nil
}

// SendSMS publishes one text message directly to a phone number
func (s *SNSChannel) SendSMS(ctx context.Context, to, body string) (string, error) {
	out, err := s.client.Publish(ctx, &sns.PublishInput{
		Message:     aws.String(body),
		PhoneNumber: aws.String(to),
	})
	if err != nil {
		return "", fmt.Errorf("sns publish failed: %w", err)
	}
	if out.MessageId == nil {
		return "", nil
	}
	return *out.MessageId, nil
}
