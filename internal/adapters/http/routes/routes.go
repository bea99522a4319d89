package routes

import (
	"time"

	"bloodlink/internal/adapters/http/handlers"
	"bloodlink/internal/adapters/http/middleware"
	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/adapters/persistence/repositories"
	"bloodlink/internal/config"
	"bloodlink/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App bundles the services the server keeps a handle on after routing
// is wired (the cron jobs run against these).
type App struct {
	InventoryService   *services.InventoryService
	AppointmentService *services.AppointmentService
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cache *redis.Client, cfg *config.Config) *App {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	centerRepo := repositories.NewCenterRepository(db)
	apptRepo := repositories.NewAppointmentRepository(db)
	unitRepo := repositories.NewBloodUnitRepository(db)
	requestRepo := repositories.NewRequestRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	// Initialize services
	notificationService := services.NewNotificationService(notificationRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, profileRepo, cfg)
	userService := services.NewUserService(userRepo)
	centerService := services.NewCenterService(centerRepo)
	apptService := services.NewAppointmentService(
		apptRepo, centerRepo, profileRepo, unitRepo, auditRepo, settingRepo, notificationService)
	inventoryService := services.NewInventoryService(unitRepo, auditRepo, notificationService, cache)
	requestService := services.NewRequestService(
		requestRepo, unitRepo, profileRepo, auditRepo, settingRepo, notificationService)
	chatbotService := services.NewChatbotService()
	dashboardService := services.NewDashboardService(db)
	settingService := services.NewSettingService(settingRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	centerHandler := handlers.NewCenterHandler(centerService)
	apptHandler := handlers.NewAppointmentHandler(apptService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	requestHandler := handlers.NewRequestHandler(requestService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	chatbotHandler := handlers.NewChatbotHandler(chatbotService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	settingHandler := handlers.NewSettingHandler(settingService)
	eventsHandler := handlers.NewEventsHandler(notificationService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	authRoutes.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	authRoutes.Get("/profile", middleware.AuthMiddleware(cfg), authHandler.GetProfile)
	authRoutes.Put("/profile", middleware.AuthMiddleware(cfg), authHandler.UpdateProfile)
	authRoutes.Put("/profile/password", middleware.StrictRateLimiter(), middleware.AuthMiddleware(cfg), authHandler.ChangePassword)

	// User management routes (admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	userRoutes.Get("/", userHandler.List)
	userRoutes.Get("/:id", userHandler.Get)
	userRoutes.Put("/:id/role", userHandler.UpdateRole)
	userRoutes.Put("/:id/status", userHandler.UpdateStatus)
	userRoutes.Delete("/:id", userHandler.Delete)

	// Donation center routes (public list, admin writes)
	centerRoutes := apiV1.Group("/centers")
	centerRoutes.Get("/", middleware.OptionalAuth(cfg), middleware.MasterDataCache(), centerHandler.List)
	centerRoutes.Get("/:id", middleware.MasterDataCache(), centerHandler.Get)
	centerRoutes.Post("/", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), centerHandler.Create)
	centerRoutes.Put("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), centerHandler.Update)
	centerRoutes.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), centerHandler.Delete)

	// Appointment routes
	apptRoutes := apiV1.Group("/appointments")
	apptRoutes.Use(middleware.AuthMiddleware(cfg))
	apptRoutes.Get("/donor", middleware.DonorOnly(), apptHandler.ListMine)
	apptRoutes.Get("/slots", middleware.DonorOnly(), apptHandler.GetSlots)
	apptRoutes.Post("/", middleware.DonorOnly(), apptHandler.Book)
	apptRoutes.Patch("/cancel/:id", middleware.DonorOnly(), apptHandler.Cancel)
	apptRoutes.Get("/", middleware.AdminOnly(), apptHandler.ListAll)
	apptRoutes.Put("/:id/confirm", middleware.AdminOnly(), apptHandler.Confirm)
	apptRoutes.Put("/:id/complete", middleware.AdminOnly(), apptHandler.Complete)
	apptRoutes.Put("/:id/reject", middleware.AdminOnly(), apptHandler.Reject)

	// Inventory routes
	inventoryRoutes := apiV1.Group("/inventory")
	inventoryRoutes.Get("/summary", middleware.CacheControl(30*time.Second), inventoryHandler.Summary)
	inventoryRoutes.Use(middleware.AuthMiddleware(cfg))
	inventoryRoutes.Get("/", inventoryHandler.List)
	inventoryRoutes.Post("/", middleware.AdminOnly(), inventoryHandler.Create)
	inventoryRoutes.Get("/:id", inventoryHandler.Get)
	inventoryRoutes.Put("/:id/status", middleware.AdminOnly(), inventoryHandler.UpdateStatus)
	inventoryRoutes.Get("/:id/history", inventoryHandler.History)

	// Blood request routes
	requestRoutes := apiV1.Group("/requests")
	requestRoutes.Use(middleware.AuthMiddleware(cfg))
	requestRoutes.Post("/", middleware.RoleMiddleware(models.RoleHospital), requestHandler.Create)
	requestRoutes.Get("/all", middleware.HospitalOrAdmin(), requestHandler.ListAll)
	requestRoutes.Post("/match", middleware.AdminOnly(), requestHandler.Match)
	requestRoutes.Get("/:id", middleware.HospitalOrAdmin(), requestHandler.Get)
	requestRoutes.Post("/:id/approve", middleware.AdminOnly(), requestHandler.Approve)
	requestRoutes.Post("/:id/reject", middleware.AdminOnly(), requestHandler.Reject)
	requestRoutes.Post("/:id/fulfill", middleware.AdminOnly(), requestHandler.Fulfill)

	// Notification routes
	notificationRoutes := apiV1.Group("/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware(cfg))
	notificationRoutes.Use(middleware.NoCacheHeaders())
	notificationRoutes.Get("/", notificationHandler.List)
	notificationRoutes.Get("/unread-count", notificationHandler.UnreadCount)
	notificationRoutes.Put("/:id/read", notificationHandler.MarkRead)
	notificationRoutes.Post("/send", middleware.AdminOnly(), notificationHandler.Send)

	// Chatbot routes (public)
	chatbotRoutes := apiV1.Group("/chatbot")
	chatbotRoutes.Post("/", chatbotHandler.Respond)
	chatbotRoutes.Get("/suggestions", middleware.CacheControl(1*time.Hour), chatbotHandler.Suggestions)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Use(middleware.NoCacheHeaders())
	dashboardRoutes.Get("/", dashboardHandler.Auto)
	dashboardRoutes.Get("/admin", middleware.AdminOnly(), dashboardHandler.Admin)
	dashboardRoutes.Get("/donor", middleware.DonorOnly(), dashboardHandler.Donor)
	dashboardRoutes.Get("/hospital", middleware.RoleMiddleware(models.RoleHospital), dashboardHandler.Hospital)

	// System settings routes
	settingRoutes := apiV1.Group("/system-settings")
	settingRoutes.Get("/", settingHandler.List)
	settingRoutes.Put("/", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), settingHandler.Update)

	// SSE event stream
	apiV1.Get("/events/stream", middleware.AuthMiddleware(cfg), eventsHandler.Stream)

	return &App{
		InventoryService:   inventoryService,
		AppointmentService: apptService,
	}
}
