package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ayacoo/mfa-sms-backend/internal/config"
	"github.com/ayacoo/mfa-sms-backend/internal/services"
	"github.com/ayacoo/mfa-sms-backend/internal/storage"
)

// MfaHandler dispatches inbound MFA requests to the verification engine
// and renders the view data. Rendering of actual forms is left to the
// consuming frontend.
type MfaHandler struct {
	store    storage.Store
	provider services.Provider
	cfg      *config.Config

	// ProfilePhone returns a fallback phone number from the user's
	// profile when the factor has none stored. Optional.
	ProfilePhone func(userID string) string
}

// NewMfaHandler creates a new MFA handler.
func NewMfaHandler(store storage.Store, provider services.Provider, cfg *config.Config) *MfaHandler {
	return &MfaHandler{
		store:    store,
		provider: provider,
		cfg:      cfg,
	}
}

type phoneRequest struct {
	Phone string `json:"phone" form:"phone"`
}

func (h *MfaHandler) propertyManager(c *fiber.Ctx) (*storage.PropertyManager, error) {
	userID := c.Params("userID")
	if userID == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "User ID is required")
	}
	return storage.NewPropertyManager(h.store, userID), nil
}

// EditView returns the setup/edit form data: the phone to prefill and the
// last-used/updated timestamps.
func (h *MfaHandler) EditView(c *fiber.Ctx) error {
	pm, err := h.propertyManager(c)
	if err != nil {
		return err
	}

	factor := pm.Properties()
	phone := factor.Phone
	if phone == "" && h.ProfilePhone != nil {
		phone = h.ProfilePhone(pm.UserID())
	}

	return c.JSON(fiber.Map{
		"provider": "sms",
		"active":   factor.Active,
		"phone":    phone,
		"lastUsed": h.formatTimestamp(factor.LastUsed),
		"updated":  h.formatTimestamp(factor.UpdatedUnix()),
	})
}

// AuthChallenge makes sure a code is pending and delivered, then returns
// the challenge form data. The query parameter resend=1 requests an
// explicit re-delivery of the pending code.
func (h *MfaHandler) AuthChallenge(c *fiber.Ctx) error {
	pm, err := h.propertyManager(c)
	if err != nil {
		return err
	}

	if !h.provider.IsActive(pm) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "MFA is not active for this user",
		})
	}

	resend := c.Query("resend") == "1"
	h.provider.EnsureCodeAndSend(c.Context(), pm, resend)

	return c.JSON(fiber.Map{
		"isLocked":   h.provider.IsLocked(pm),
		"resendLink": resendLink(c.Queries()),
	})
}

// Verify checks the submitted auth code. The code is read from the query
// parameters first, then from the form body.
func (h *MfaHandler) Verify(c *fiber.Ctx) error {
	pm, err := h.propertyManager(c)
	if err != nil {
		return err
	}

	authCode := c.Query("authCode")
	if authCode == "" {
		authCode = c.FormValue("authCode")
	}

	if !h.provider.Verify(pm, authCode) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"accepted": false,
		})
	}
	return c.JSON(fiber.Map{
		"accepted": true,
	})
}

// Activate registers the factor with the submitted phone number.
func (h *MfaHandler) Activate(c *fiber.Ctx) error {
	return h.submitPhone(c, h.provider.Activate)
}

// UpdatePhone changes the stored phone number.
func (h *MfaHandler) UpdatePhone(c *fiber.Ctx) error {
	return h.submitPhone(c, h.provider.Update)
}

func (h *MfaHandler) submitPhone(c *fiber.Ctx, op func(*storage.PropertyManager, string) bool) error {
	pm, err := h.propertyManager(c)
	if err != nil {
		return err
	}

	var req phoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if !op(pm, req.Phone) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"phone":   pm.Properties().Phone,
	})
}

// Unlock resets the attempt counter of a locked factor.
func (h *MfaHandler) Unlock(c *fiber.Ctx) error {
	return h.adminOp(c, h.provider.Unlock)
}

// Deactivate disables the factor.
func (h *MfaHandler) Deactivate(c *fiber.Ctx) error {
	return h.adminOp(c, h.provider.Deactivate)
}

func (h *MfaHandler) adminOp(c *fiber.Ctx, op func(*storage.PropertyManager) bool) error {
	pm, err := h.propertyManager(c)
	if err != nil {
		return err
	}

	if !op(pm) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *MfaHandler) formatTimestamp(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).Format(h.cfg.DateTimeLayout())
}

// resendLink rebuilds the current query string with resend=1 appended, so
// the challenge form can offer an explicit resend without losing any
// existing parameters.
func resendLink(queryParams map[string]string) string {
	values := url.Values{}
	for key, value := range queryParams {
		values.Set(key, value)
	}
	values.Set("resend", "1")
	return "?" + values.Encode()
}
