package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"bloodlink/internal/adapters/http/middleware"
	"bloodlink/internal/adapters/http/routes"
	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/config"
	"bloodlink/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "bloodlink/docs" // Swagger docs
)

// @title BloodLink API
// @version 1.0
// @description Blood donation management platform API: donors, hospitals, appointments, inventory and blood requests.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@bloodlink.example.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.bloodlink.example.com
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed master data (settings, donation centers)
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Seed default admin account (idempotent)
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed default admin: %v", err)
	}

	// Connect to Redis (optional, summary caching degrades gracefully)
	cache, err := config.ConnectRedis(cfg)
	if err != nil {
		log.Printf("⚠️ Warning: Redis unavailable, caching disabled: %v", err)
		cache = nil
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "BloodLink API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db, cache and cfg for dependency injection)
	wired := routes.Setup(app, db, cache, cfg)

	// Start Cron Service (expiry sweep 00:30, missed sweep 01:00, reminders 08:30)
	cronService := services.NewCronService(wired.InventoryService, wired.AppointmentService)
	cronService.Start()
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
