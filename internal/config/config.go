package config

import (
	"os"
	"strconv"
)

const (
	DefaultSmsMessage  = "Your security code is: %s"
	DefaultSenderID    = "TYPO3"
	DefaultAwsRegion   = "eu-central-1"
	DefaultDatePattern = "02-01-06"
	DefaultTimePattern = "15:04"

	// NoAttemptLimit stands in for "unlimited" when maxAttempts is not
	// configured, or is configured as -1.
	NoAttemptLimit = 9999999
)

// Config is the static configuration surface of the MFA SMS provider.
// All keys are optional; zero values fall back to the defaults above.
type Config struct {
	SmsProvider string // "aws" or "twilio", anything else means "aws"
	SmsMessage  string // template with one %s placeholder for the code
	SmsSenderID string

	AwsRegion string

	TwilioAccountSid          string
	TwilioAuthToken           string
	TwilioFrom                string
	TwilioMessagingServiceSid string

	MaxAttempts int

	DatePattern string
	TimePattern string
}

// FromEnv builds a Config from environment variables.
func FromEnv() *Config {
	return &Config{
		SmsProvider:               os.Getenv("SMS_PROVIDER"),
		SmsMessage:                os.Getenv("SMS_MESSAGE"),
		SmsSenderID:               os.Getenv("SMS_SENDER_ID"),
		AwsRegion:                 os.Getenv("AWS_REGION"),
		TwilioAccountSid:          os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:           os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:                os.Getenv("TWILIO_FROM"),
		TwilioMessagingServiceSid: os.Getenv("TWILIO_MESSAGING_SERVICE_SID"),
		MaxAttempts:               parseMaxAttempts(os.Getenv("MAX_ATTEMPTS")),
		DatePattern:               os.Getenv("DATE_PATTERN"),
		TimePattern:               os.Getenv("TIME_PATTERN"),
	}
}

func parseMaxAttempts(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// AttemptLimit returns the configured failed-attempt threshold. Unset or -1
// means no limit.
func (c *Config) AttemptLimit() int {
	if c.MaxAttempts <= 0 {
		return NoAttemptLimit
	}
	return c.MaxAttempts
}

// MessageTemplate returns the SMS body template with a %s placeholder.
func (c *Config) MessageTemplate() string {
	if c.SmsMessage == "" {
		return DefaultSmsMessage
	}
	return c.SmsMessage
}

func (c *Config) SenderID() string {
	if c.SmsSenderID == "" {
		return DefaultSenderID
	}
	return c.SmsSenderID
}

func (c *Config) Region() string {
	if c.AwsRegion == "" {
		return DefaultAwsRegion
	}
	return c.AwsRegion
}

// DateTimeLayout returns the combined layout used for the lastUsed and
// updated timestamps in view payloads.
func (c *Config) DateTimeLayout() string {
	date := c.DatePattern
	if date == "" {
		date = DefaultDatePattern
	}
	clock := c.TimePattern
	if clock == "" {
		clock = DefaultTimePattern
	}
	return date + " " + clock
}
