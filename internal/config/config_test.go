package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttemptLimit(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
		want        int
	}{
		{"unset means no limit", 0, NoAttemptLimit},
		{"minus one means no limit", -1, NoAttemptLimit},
		{"configured value", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{MaxAttempts: tt.maxAttempts}
			assert.Equal(t, tt.want, cfg.AttemptLimit())
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	assert.Equal(t, "Your security code is: %s", cfg.MessageTemplate())
	assert.Equal(t, "TYPO3", cfg.SenderID())
	assert.Equal(t, "eu-central-1", cfg.Region())
	assert.Equal(t, "02-01-06 15:04", cfg.DateTimeLayout())
}

func TestConfiguredValuesWin(t *testing.T) {
	cfg := &Config{
		SmsMessage:  "Code: %s",
		SmsSenderID: "ACME",
		AwsRegion:   "us-east-1",
		DatePattern: "2006-01-02",
		TimePattern: "15:04:05",
	}

	assert.Equal(t, "Code: %s", cfg.MessageTemplate())
	assert.Equal(t, "ACME", cfg.SenderID())
	assert.Equal(t, "us-east-1", cfg.Region())
	assert.Equal(t, "2006-01-02 15:04:05", cfg.DateTimeLayout())
}

func TestParseMaxAttempts(t *testing.T) {
	assert.Equal(t, 0, parseMaxAttempts(""))
	assert.Equal(t, 0, parseMaxAttempts("not a number"))
	assert.Equal(t, -1, parseMaxAttempts("-1"))
	assert.Equal(t, 5, parseMaxAttempts("5"))
}
