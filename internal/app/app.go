package app

import (
	"errors"
	"fmt"

	"servihub_backend/database"
	"servihub_backend/internal/auth"
	"servihub_backend/internal/config"
	"servihub_backend/internal/email"
	"servihub_backend/internal/handlers"
	"servihub_backend/internal/logger"
	"servihub_backend/internal/models"
	"servihub_backend/internal/repositories"
	"servihub_backend/internal/routes"
	"servihub_backend/internal/services"
	"servihub_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run собирает и запускает приложение: конфиг, логгер, БД, миграции,
// первый админ, роуты.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	logger.Info("Starting servihub backend", "env", cfg.Server.Env, "port", cfg.Server.Port)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	userRepo := repositories.NewUserRepository(db)
	banRepo := repositories.NewBanRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	if err := seedFirstAdmin(userRepo, cfg); err != nil {
		return fmt.Errorf("seed first admin: %w", err)
	}

	var emailProvider email.Provider = email.NoopProvider{}
	if cfg.Email.Enabled {
		emailProvider = email.NewSMTPProvider(cfg)
	}
	defer emailProvider.Close()

	base := handlers.NewBaseHandler(validator.New())
	authService := services.NewAuthService(userRepo)
	adminService := services.NewAdminService(userRepo, banRepo, profileRepo, verificationRepo, statsRepo, emailProvider)

	appHandlers := &handlers.AppHandlers{
		AuthHandler:  handlers.NewAuthHandler(base, authService),
		AdminHandler: handlers.NewAdminHandler(base, adminService),
	}

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := routes.SetupRouter(appHandlers)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("HTTP server listening", "addr", addr)
	return r.Run(addr)
}

// seedFirstAdmin создает первого администратора, если его еще нет.
// Без учетки в конфиге просто пропускаем.
func seedFirstAdmin(userRepo repositories.UserRepository, cfg *config.Config) error {
	if cfg.Admin.FirstEmail == "" || cfg.Admin.FirstPassword == "" {
		return nil
	}

	_, err := userRepo.FindByEmail(cfg.Admin.FirstEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Admin.FirstPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.Admin.FirstEmail,
		Name:         "Administrator",
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}

	logger.Info("First admin account created", "email", cfg.Admin.FirstEmail)
	return nil
}
