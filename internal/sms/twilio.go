package sms

import (
	"context"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/ayacoo/mfa-sms-backend/internal/config"
)

// messageCreator is the subset of the Twilio REST API used here, narrowed
// for test doubles.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSender delivers SMS via the Twilio Messages API.
type TwilioSender struct {
	api                 messageCreator
	from                string
	messagingServiceSid string
}

// NewTwilioSender creates a Twilio-backed sender. It fails fast with a
// *ConfigurationError when credentials or a sending identity are missing,
// before any network call is attempted.
func NewTwilioSender(cfg *config.Config) (*TwilioSender, error) {
	if cfg.TwilioAccountSid == "" || cfg.TwilioAuthToken == "" {
		return nil, &ConfigurationError{Reason: "Twilio credentials are not configured"}
	}
	if cfg.TwilioFrom == "" && cfg.TwilioMessagingServiceSid == "" {
		return nil, &ConfigurationError{Reason: "Twilio from number or messaging service SID must be configured"}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSid,
		Password: cfg.TwilioAuthToken,
	})

	return &TwilioSender{
		api:                 client.Api,
		from:                cfg.TwilioFrom,
		messagingServiceSid: cfg.TwilioMessagingServiceSid,
	}, nil
}

func (t *TwilioSender) Send(ctx context.Context, phone string, message string, opts Options) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetBody(message)

	// A messaging service takes precedence over a raw from number.
	if t.messagingServiceSid != "" {
		params.SetMessagingServiceSid(t.messagingServiceSid)
	} else {
		params.SetFrom(t.from)
	}

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		return &DeliveryError{Provider: "twilio", Message: "create message failed", Err: err}
	}
	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		deliveryErr := &DeliveryError{Provider: "twilio", Code: *resp.ErrorCode}
		if resp.ErrorMessage != nil {
			deliveryErr.Message = *resp.ErrorMessage
		}
		return deliveryErr
	}
	return nil
}
