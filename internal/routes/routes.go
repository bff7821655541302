package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ayacoo/mfa-sms-backend/internal/handlers"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, mfaHandler *handlers.MfaHandler) {
	api := app.Group("/api")

	mfa := api.Group("/mfa/:userID")
	mfa.Get("/setup", mfaHandler.EditView)
	mfa.Get("/edit", mfaHandler.EditView)
	mfa.Post("/activate", mfaHandler.Activate)
	mfa.Put("/phone", mfaHandler.UpdatePhone)
	mfa.Get("/auth", mfaHandler.AuthChallenge)
	mfa.Post("/verify", mfaHandler.Verify)
	mfa.Post("/unlock", mfaHandler.Unlock)
	mfa.Post("/deactivate", mfaHandler.Deactivate)
}
