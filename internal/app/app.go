package app

import (
	"context"
	"database/sql"
	"fmt"

	"dormdesk_backend/database"
	"dormdesk_backend/internal/cache"
	"dormdesk_backend/internal/config"
	"dormdesk_backend/internal/email"
	"dormdesk_backend/internal/handlers"
	"dormdesk_backend/internal/logger"
	"dormdesk_backend/internal/middleware"
	"dormdesk_backend/internal/repositories"
	"dormdesk_backend/internal/routes"
	"dormdesk_backend/internal/services"
	"dormdesk_backend/internal/validator"
	"dormdesk_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Run поднимает приложение целиком: конфиг, БД, роутер, фоновые воркеры
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	router := SetupRouter(cfg, gormDB, sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает gin.Engine со всеми зависимостями.
// Выделен отдельно, чтобы интеграционные тесты могли поднять роутер
// поверх тестовой БД без запуска сервера.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) *gin.Engine {
	if cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Redis опционален: без него аналитика просто не кешируется
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		logger.Info("Redis configured", "addr", cfg.Redis.Addr)
	}
	appCache := cache.New(redisClient)

	var emailSender email.Sender
	if cfg.Email.Enabled {
		emailSender = email.NewSMTPSender(cfg)
		logger.Info("Email mirror enabled", "host", cfg.Email.SMTPHost)
	}

	// Репозитории
	userRepo := repositories.NewUserRepository(gormDB)
	complaintRepo := repositories.NewComplaintRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	workerLogRepo := repositories.NewWorkerLogRepository(gormDB)
	analyticsRepo := repositories.NewAnalyticsRepository(sqlDB)

	// Сервисы
	notificationService := services.NewNotificationService(notificationRepo, userRepo, emailSender)
	authService := services.NewAuthService(userRepo, cfg)
	complaintService := services.NewComplaintService(complaintRepo, userRepo, workerLogRepo, notificationService)
	userService := services.NewUserService(userRepo)
	analyticsService := services.NewAnalyticsService(analyticsRepo, appCache)

	// Хэндлеры
	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &routes.Handlers{
		Auth:         handlers.NewAuthHandler(base, authService),
		Resident:     handlers.NewResidentHandler(base, complaintService),
		Admin:        handlers.NewAdminHandler(base, complaintService, userService, analyticsService),
		Worker:       handlers.NewWorkerHandler(base, complaintService),
		Notification: handlers.NewNotificationHandler(base, notificationService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())

	routes.Setup(router, appHandlers, userRepo)
	return router
}

func startWorkers(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) {
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	notificationWorker := workers.NewNotificationWorker(notificationRepo, cfg.Notifications.RetentionDays)
	notificationWorker.Start(ctx)
	logger.Info("Background workers started")
}
