package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/ayacoo/mfa-sms-backend/database"
	"github.com/ayacoo/mfa-sms-backend/internal/config"
	"github.com/ayacoo/mfa-sms-backend/internal/handlers"
	"github.com/ayacoo/mfa-sms-backend/internal/models"
	"github.com/ayacoo/mfa-sms-backend/internal/routes"
	"github.com/ayacoo/mfa-sms-backend/internal/services"
	"github.com/ayacoo/mfa-sms-backend/internal/sms"
	"github.com/ayacoo/mfa-sms-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found - using environment variables")
	}

	cfg := config.FromEnv()

	// Initialize storage
	var store storage.Store

	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		log.Println("🔄 Running database migrations...")
		if err := database.DB.AutoMigrate(&models.Factor{}); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}

	// Select the SMS delivery backend once at startup. A misconfigured
	// backend (e.g. missing Twilio credentials) is a deployment error.
	sender, err := sms.NewSenderFromConfig(cfg)
	if err != nil {
		log.Fatal("Failed to initialize SMS sender:", err)
	}
	log.Printf("✅ SMS sender initialized (provider: %s)", providerName(cfg))

	provider := services.NewSmsProvider(cfg, sender, nil)
	mfaHandler := handlers.NewMfaHandler(store, provider, cfg)

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "MFA SMS Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "MFA SMS Backend",
			"version": "1.0.0",
			"status":  "healthy",
			"sms": fiber.Map{
				"provider": providerName(cfg),
			},
			"storage": storageType(),
		})
	})

	// Health check endpoint for monitoring
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		statusCode := 200

		if os.Getenv("USE_MEMORY_STORE") != "true" && database.DB != nil {
			sqlDB, err := database.DB.DB()
			if err != nil || sqlDB.Ping() != nil {
				status = "unhealthy"
				statusCode = 503
			}
		}

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"services": fiber.Map{
				"database": status == "healthy",
				"sms":      providerName(cfg),
			},
		})
	})

	routes.SetupRoutes(app, mfaHandler)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 MFA SMS Backend starting on port %s", port)
	log.Printf("📊 Storage: %s", storageType())
	log.Printf("📱 SMS provider: %s", providerName(cfg))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

func providerName(cfg *config.Config) string {
	if cfg.SmsProvider == "" {
		return "aws"
	}
	return cfg.SmsProvider
}

func storageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}
