package sms

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

func TestSNSSend_PublishParameters(t *testing.T) {
	client := &fakeSNSClient{}
	sender := &SNSSender{client: client, senderID: "ACME"}

	err := sender.Send(context.Background(), "+491721234567", "Your security code is: 123456", nil)
	require.NoError(t, err)

	require.NotNil(t, client.input)
	assert.Equal(t, "+491721234567", *client.input.PhoneNumber)
	assert.Equal(t, "Your security code is: 123456", *client.input.Message)
	assert.Equal(t, "ACME", *client.input.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue)
	assert.Equal(t, "Transactional", *client.input.MessageAttributes["AWS.SNS.SMS.SMSType"].StringValue)
}

func TestSNSSend_SenderIDPrecedence(t *testing.T) {
	tests := []struct {
		name           string
		configSenderID string
		opts           Options
		want           string
	}{
		{"options win over config", "ACME", Options{"senderId": "OTHER"}, "OTHER"},
		{"config when no option", "ACME", nil, "ACME"},
		{"default label as last resort", "", nil, "TYPO3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeSNSClient{}
			sender := &SNSSender{client: client, senderID: tt.configSenderID}

			err := sender.Send(context.Background(), "+491721234567", "hello", tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *client.input.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue)
		})
	}
}

func TestSNSSend_PublishFailure(t *testing.T) {
	client := &fakeSNSClient{err: fmt.Errorf("throttled")}
	sender := &SNSSender{client: client}

	err := sender.Send(context.Background(), "+491721234567", "hello", nil)
	require.Error(t, err)

	var deliveryErr *DeliveryError
	require.True(t, errors.As(err, &deliveryErr))
	assert.Equal(t, "aws", deliveryErr.Provider)
	assert.ErrorContains(t, deliveryErr, "throttled")
}
