package app

import (
	"context"
	"errors"
	"fmt"

	"medcase_backend/database"
	"medcase_backend/internal/auth"
	"medcase_backend/internal/config"
	"medcase_backend/internal/email"
	"medcase_backend/internal/handlers"
	"medcase_backend/internal/logger"
	"medcase_backend/internal/middleware"
	"medcase_backend/internal/models"
	"medcase_backend/internal/repositories"
	"medcase_backend/internal/routes"
	"medcase_backend/internal/services"
	"medcase_backend/internal/storage"
	"medcase_backend/internal/validator"
	"medcase_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("failed to seed first admin user", "error", err)
	}

	router, repos := SetupRouter(cfg, gormDB)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	workers.NewTokenWorker(repos.RefreshTokens).Start(workerCtx)
	workers.NewNotificationWorker(repos.Notifications).Start(workerCtx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services, handlers and middleware
// into a ready gin engine. Returned repositories are shared with the
// background workers.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, services.Repositories) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	logger.Info("storage initialized", "type", cfg.Storage.Type)

	repos := services.Repositories{
		Users:         repositories.NewUserRepository(gormDB),
		RefreshTokens: repositories.NewRefreshTokenRepository(gormDB),
		Cases:         repositories.NewCaseRepository(gormDB),
		Comments:      repositories.NewCommentRepository(gormDB),
		Interactions:  repositories.NewInteractionRepository(gormDB),
		Verifications: repositories.NewVerificationRepository(gormDB),
		Notifications: repositories.NewNotificationRepository(gormDB),
		Reports:       repositories.NewReportRepository(gormDB),
		Analytics:     repositories.NewAnalyticsRepository(gormDB),
		Uploads:       repositories.NewUploadRepository(gormDB),
	}

	serviceContainer := services.NewServiceContainer(repos, newEmailProvider(cfg), storageInstance)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	router := newGinRouter(cfg, gormDB)
	routes.RegisterRoutes(router, appHandlers)

	// S3/R2 serve uploads from their own URLs; local storage needs a route.
	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		router.Static("/api/v1/files", cfg.Storage.BasePath)
	}

	return router, repos
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPUsername == "" {
		logger.Warn("SMTP credentials not configured, outgoing email disabled")
		return email.NewNoopProvider()
	}

	renderer := email.NewTemplateManager()
	if cfg.Email.TemplatesDir != "" {
		if err := renderer.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
			logger.Warn("failed to load email templates, using built-ins", "error", err)
		}
	}

	return email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
	}, renderer)
}

func newGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the bootstrap admin account when the
// configured address is missing. No-op when credentials are not set.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var existing models.User
	result := db.Where("email = ?", adminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("admin user already exists, skipping creation", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:           adminEmail,
		PasswordHash:    hash,
		Role:            models.UserRoleAdmin,
		Status:          models.UserStatusActive,
		Name:            "Administrator",
		IsEmailVerified: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("created first admin user", "email", adminEmail)
	return nil
}
