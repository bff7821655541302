package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ayacoo/mfa-sms-backend/internal/config"
	"github.com/ayacoo/mfa-sms-backend/internal/sms"
	"github.com/ayacoo/mfa-sms-backend/internal/storage"
	"github.com/ayacoo/mfa-sms-backend/internal/utils"
)

// Provider is the MFA provider capability: lifecycle and verification of
// one user's second factor. Every method takes the factor's property
// manager explicitly; implementations hold no per-request state.
type Provider interface {
	IsActive(pm *storage.PropertyManager) bool
	IsLocked(pm *storage.PropertyManager) bool
	Verify(pm *storage.PropertyManager, authCode string) bool
	Update(pm *storage.PropertyManager, phone string) bool
	Activate(pm *storage.PropertyManager, phone string) bool
	Unlock(pm *storage.PropertyManager) bool
	Deactivate(pm *storage.PropertyManager) bool
	EnsureCodeAndSend(ctx context.Context, pm *storage.PropertyManager, resend bool)
}

// SmsProvider verifies a second factor through codes delivered by SMS.
type SmsProvider struct {
	cfg      *config.Config
	sender   sms.Sender
	notifier Notifier

	now      func() time.Time
	generate func() (string, error)
}

var _ Provider = (*SmsProvider)(nil)

// NewSmsProvider creates the SMS MFA provider. A nil notifier falls back
// to logging.
func NewSmsProvider(cfg *config.Config, sender sms.Sender, notifier Notifier) *SmsProvider {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &SmsProvider{
		cfg:      cfg,
		sender:   sender,
		notifier: notifier,
		now:      time.Now,
		generate: utils.GenerateAuthCode,
	}
}

// IsActive reports whether the factor is enabled.
func (p *SmsProvider) IsActive(pm *storage.PropertyManager) bool {
	return pm.Properties().Active
}

// IsLocked reports whether the factor has reached the failed-attempt
// threshold. Lock state is derived, never stored.
func (p *SmsProvider) IsLocked(pm *storage.PropertyManager) bool {
	return pm.HasEntry() && pm.Properties().Attempts >= p.cfg.AttemptLimit()
}

// Verify checks the submitted code against the pending one. A mismatch
// increments the attempt counter; a match consumes the code, resets the
// counter and records the verification time.
func (p *SmsProvider) Verify(pm *storage.PropertyManager, authCode string) bool {
	if !p.IsActive(pm) || p.IsLocked(pm) {
		return false
	}

	factor := pm.Properties()
	if strings.TrimSpace(authCode) != factor.AuthCode {
		factor.Attempts++
		pm.Save(factor)
		return false
	}

	factor.AuthCode = ""
	factor.Attempts = 0
	factor.LastUsed = p.now().Unix()
	return pm.Save(factor)
}

// Update validates and stores a new phone number, enabling the factor.
// The entry is created on first use.
func (p *SmsProvider) Update(pm *storage.PropertyManager, phone string) bool {
	phone = strings.TrimSpace(phone)
	if !p.checkValidPhone(phone) {
		return false
	}

	factor := pm.Properties()
	factor.Phone = phone
	factor.Active = true
	return pm.Save(factor)
}

// Activate registers the factor with the submitted phone number. Activation
// and phone edit share the same logic.
func (p *SmsProvider) Activate(pm *storage.PropertyManager, phone string) bool {
	return p.Update(pm, phone)
}

// Unlock resets the attempt counter. It is a no-op unless the factor is
// active and currently locked.
func (p *SmsProvider) Unlock(pm *storage.PropertyManager) bool {
	if !p.IsActive(pm) || !p.IsLocked(pm) {
		return false
	}
	factor := pm.Properties()
	factor.Attempts = 0
	return pm.Save(factor)
}

// Deactivate disables the factor. Phone number and any pending code are
// left untouched.
func (p *SmsProvider) Deactivate(pm *storage.PropertyManager) bool {
	if !p.IsActive(pm) {
		return false
	}
	factor := pm.Properties()
	factor.Active = false
	return pm.Save(factor)
}

// EnsureCodeAndSend makes sure a pending code exists and delivers it. A
// freshly generated code is always sent; an existing one is re-sent only on
// an explicit resend request, so page reloads do not trigger duplicate
// messages. Delivery failures are downgraded to a user notification and
// leave the stored state unchanged, so a later resend can reuse the code.
func (p *SmsProvider) EnsureCodeAndSend(ctx context.Context, pm *storage.PropertyManager, resend bool) {
	factor := pm.Properties()

	newCode := false
	if factor.AuthCode == "" {
		code, err := p.generate()
		if err != nil {
			log.Printf("❌ Failed to generate auth code: %v", err)
			return
		}
		factor.AuthCode = code
		if !pm.Save(factor) {
			return
		}
		newCode = true
	}

	if !newCode && !resend {
		return
	}

	message := fmt.Sprintf(p.cfg.MessageTemplate(), factor.AuthCode)
	err := p.sender.Send(ctx, factor.Phone, message, sms.Options{
		"senderId": p.cfg.SenderID(),
	})
	if err != nil {
		log.Printf("❌ Failed to send auth code SMS to user %s: %v", pm.UserID(), err)
		p.notifier.Notify("error.sms.send")
	}
}

func (p *SmsProvider) checkValidPhone(phone string) bool {
	messageKey := ""
	if phone == "" {
		messageKey = "error.phone.empty"
	} else if !utils.IsValidPhone(phone) {
		messageKey = "error.phone.notvalid"
	}

	if messageKey != "" {
		p.notifier.Notify(messageKey)
		return false
	}
	return true
}
