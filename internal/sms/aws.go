package sms

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/ayacoo/mfa-sms-backend/internal/config"
)

// snsClient is the subset of the SNS API used here, narrowed for test doubles.
type snsClient interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSender delivers SMS via AWS SNS as transactional messages.
type SNSSender struct {
	client   snsClient
	senderID string
}

// NewSNSSender creates an SNS-backed sender for the configured region.
func NewSNSSender(cfg *config.Config) (*SNSSender, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(cfg.Region()),
	)
	if err != nil {
		return nil, &ConfigurationError{Reason: "failed to load AWS config: " + err.Error()}
	}

	return &SNSSender{
		client:   sns.NewFromConfig(awsCfg),
		senderID: cfg.SmsSenderID,
	}, nil
}

func (s *SNSSender) Send(ctx context.Context, phone string, message string, opts Options) error {
	senderID := opts["senderId"]
	if senderID == "" {
		senderID = s.senderID
	}
	if senderID == "" {
		senderID = config.DefaultSenderID
	}

	_, err := s.client.Publish(ctx, &sns.PublishInput{
		Message:     aws.String(message),
		PhoneNumber: aws.String(phone),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(senderID),
			},
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	})
	if err != nil {
		return &DeliveryError{Provider: "aws", Message: "publish failed", Err: err}
	}
	return nil
}
