package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/senselive/vms-api/docs" // Swagger docs
	"github.com/senselive/vms-api/internal/config"
	"github.com/senselive/vms-api/internal/database"
	"github.com/senselive/vms-api/internal/handlers"
	"github.com/senselive/vms-api/internal/jobs"
	"github.com/senselive/vms-api/internal/middleware"
	"github.com/senselive/vms-api/internal/models"
	"github.com/senselive/vms-api/internal/repository"
	"github.com/senselive/vms-api/internal/services"
	"github.com/senselive/vms-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title VMS API
// @version 1.0
// @description REST API for the SenseLive Visitor Management System

// @contact.name API Support

// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("Migrations applied")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker for async audit writes
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, cfg, db)

	if cfg.LegacyCheckInOnReject {
		logger.Warn("Legacy behavior enabled: security rejections still stamp a check-in time")
	}

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (public)
	router.GET("/health", h.Health.Index)

	// Authentication (public)
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// Authenticated account routes
	authed := router.Group("/auth")
	authed.Use(middleware.Auth(cfg.JWTSecret))
	{
		authed.GET("/user", h.Auth.Me)
		authed.PUT("/users/:user_id", h.Auth.UpdateUser)
		authed.POST("/change-password", h.Auth.ChangePassword)
	}

	// Admin-only routes
	admin := router.Group("/admin")
	admin.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", h.Admin.Users)
		admin.GET("/departments", h.Admin.Departments)
		admin.GET("/analytics", h.Admin.Analytics)
		admin.GET("/visit-logs", h.Admin.VisitLogs)
		admin.GET("/visit-logs/export", h.Admin.ExportVisitLogs)
		admin.GET("/audits", h.Admin.Audits)
	}

	// Manager routes (admins may act as managers)
	manager := router.Group("/manager")
	manager.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireRole(models.RoleManager, models.RoleAdmin))
	{
		manager.POST("/log", h.Manager.CreateLog)
		manager.GET("/logs", h.Manager.Logs)
		manager.GET("/visitors", h.Manager.Visitors)
		manager.GET("/requests", h.Manager.Requests)
		manager.GET("/analytics", h.Manager.Analytics)
		manager.PUT("/approve/:visit_id", h.Manager.Approve)
		manager.PUT("/check-out/:visit_id", h.Manager.ExitApproval)
	}

	// Security gate routes (admins may act as security)
	security := router.Group("/security")
	security.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireRole(models.RoleSecurity, models.RoleAdmin))
	{
		security.PUT("/security-approve/:visit_id", h.Security.SecurityApprove)
		security.GET("/security-analytics", h.Security.Analytics)
		security.GET("/requests", h.Security.Requests)
		security.PUT("/checkout/:visit_log_id", h.Security.Checkout)
		security.GET("/processed-logs", h.Security.ProcessedLogs)
		security.GET("/visitor-pass/:visit_id", h.Security.VisitorPass)
	}

	return router
}
