package sms

import (
	"context"
	"fmt"
)

// Options carries provider-specific send options, e.g. a sender id.
type Options map[string]string

// Sender delivers a text message to a phone number.
type Sender interface {
	// Send delivers message to the E.164 formatted phone number.
	// Transport and provider API failures are returned as *DeliveryError.
	Send(ctx context.Context, phone string, message string, opts Options) error
}

// ConfigurationError indicates missing or invalid delivery backend
// configuration. It is detected at construction time, before any network
// call, and should be treated as a deployment problem.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "sms configuration: " + e.Reason
}

// DeliveryError wraps a transport or provider API failure during send.
// Code and Message preserve the provider's error details when available.
type DeliveryError struct {
	Provider string
	Code     int
	Message  string
	Err      error
}

func (e *DeliveryError) Error() string {
	msg := fmt.Sprintf("%s delivery failed", e.Provider)
	if e.Code != 0 {
		msg = fmt.Sprintf("%s (code %d)", msg, e.Code)
	}
	if e.Message != "" {
		msg = msg + ": " + e.Message
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
