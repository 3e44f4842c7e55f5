package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pesabot/pesabot-backend/config"
	"github.com/pesabot/pesabot-backend/internal/app/controller"
	"github.com/pesabot/pesabot-backend/internal/app/repository"
	"github.com/pesabot/pesabot-backend/internal/app/service"
	"github.com/pesabot/pesabot-backend/internal/db"
	"github.com/pesabot/pesabot-backend/internal/middleware"
	"github.com/pesabot/pesabot-backend/internal/router"
	"github.com/pesabot/pesabot-backend/internal/scheduler"
	"github.com/pesabot/pesabot-backend/pkg/logger"
	"github.com/pesabot/pesabot-backend/pkg/mailer/brevo"
	"github.com/pesabot/pesabot-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting PesaBot Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed the bootstrap admin (optional)
	if err := db.SeedInitialAdmin(); err != nil {
		logger.Warn("Failed to seed initial admin", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Redis (optional, backs the reset rate limiter)
	var resetLimiter service.ResetRateLimiter
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		resetLimiter = redis.NewRateLimiter(
			"password_reset",
			cfg.Admin.ResetRateLimit,
			cfg.Admin.ResetRateWindow,
		)
	}

	// Initialize mail client
	mailClient, err := brevo.NewClient(brevo.Config{
		APIKey:      cfg.Email.BrevoAPIKey,
		BaseURL:     cfg.Email.BrevoURL,
		SenderEmail: cfg.Email.SenderEmail,
		SenderName:  cfg.Email.SenderName,
	})
	if err != nil {
		logger.Fatal("Failed to initialize mail client", err)
	}

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(db.GetDB())
	otpRepo := repository.NewOTPRepository(db.GetDB())
	tableRepo := repository.NewTableRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(adminRepo, cfg.Admin.TokenExpiry)
	passwordResetService := service.NewPasswordResetService(
		otpRepo,
		adminRepo,
		mailClient,
		resetLimiter,
		cfg.Admin.OTPExpiry,
	)
	staffService := service.NewStaffService(adminRepo)
	tableService := service.NewTableService(tableRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService, passwordResetService)
	staffController := controller.NewStaffController(staffService)
	tableController := controller.NewTableController(tableService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Setup router
	r := router.NewRouter(
		authController,
		staffController,
		tableController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start the nightly cleanup of expired OTPs and login tokens
	cleanup := scheduler.NewCleanupScheduler(otpRepo, adminRepo)
	if err := cleanup.Start(); err != nil {
		logger.Fatal("Failed to start cleanup scheduler", err)
	}
	defer cleanup.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
