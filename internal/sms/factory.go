package sms

import (
	"strings"

	"github.com/ayacoo/mfa-sms-backend/internal/config"
)

// NewSenderFromConfig selects the delivery backend by the configured
// provider name. "twilio" (case-insensitive) selects Twilio; anything else,
// including an empty value, selects AWS SNS.
func NewSenderFromConfig(cfg *config.Config) (Sender, error) {
	switch strings.ToLower(cfg.SmsProvider) {
	case "twilio":
		return NewTwilioSender(cfg)
	default:
		return NewSNSSender(cfg)
	}
}
