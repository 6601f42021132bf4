package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gigup_backend/internal/access"
	"gigup_backend/internal/config"
	"gigup_backend/internal/database"
	"gigup_backend/internal/delivery"
	"gigup_backend/internal/handlers"
	"gigup_backend/internal/logger"
	"gigup_backend/internal/metrics"
	"gigup_backend/internal/middleware"
	"gigup_backend/internal/ratelimit"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/routes"
	"gigup_backend/internal/services"
	"gigup_backend/internal/session"
	"gigup_backend/internal/validator"
	"gigup_backend/internal/workers"
	"gigup_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App - собранное приложение: хранилища, сервисы и HTTP-роутер
type App struct {
	cfg       *config.Config
	db        *gorm.DB
	rdb       *redis.Client
	router    *gin.Engine
	services  *services.ServiceContainer
	deliverer delivery.Deliverer
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	if _, err := database.SeedAdmin(db, cfg.FirstAdminEmail, cfg.FirstAdminPassword); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	rdb, err := ConnectRedis(cfg)
	if err != nil {
		logger.Fatal("Redis unavailable", "error", err, "addr", cfg.Redis.Addr)
	}
	defer rdb.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	application, err := New(cfg, db, rdb)
	if err != nil {
		logger.Fatal("Failed to build application", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleanup := workers.NewCleanupWorker(db, application.services.VerificationService, cfg.Workers.CleanupSchedule, cfg.Workers.CleanupAfter)
	if err := cleanup.Start(ctx); err != nil {
		logger.Fatal("Failed to start cleanup worker", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           application.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "addr", address)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server run failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// ConnectRedis открывает клиент redis и проверяет соединение
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// New собирает приложение поверх открытых хранилищ. Миграции не выполняет
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	apperrors.Debug = !cfg.IsProduction()
	metrics.MustRegister()

	deliverer, err := delivery.New(cfg, rdb)
	if err != nil {
		return nil, err
	}
	logger.Info("Code delivery initialized", "mode", cfg.Delivery.Mode)

	sessions := session.NewManager(rdb, cfg.Session.Secret, cfg.Session.TTL)
	gate := access.NewGate(repositories.NewUserRepository(), sessions)

	serviceContainer := initializeServices(cfg, deliverer, sessions, gate)
	appHandlers := initializeHandlers(cfg, serviceContainer, gate)

	ginRouter := initializeGinRouter(cfg, db, sessions)
	routes.RegisterRoutes(ginRouter, appHandlers, rateLimit(cfg, rdb))

	return &App{
		cfg:       cfg,
		db:        db,
		rdb:       rdb,
		router:    ginRouter,
		services:  serviceContainer,
		deliverer: deliverer,
	}, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Services() *services.ServiceContainer {
	return a.services
}

func (a *App) Deliverer() delivery.Deliverer {
	return a.deliverer
}

func initializeServices(cfg *config.Config, deliverer delivery.Deliverer, sessions *session.Manager, gate *access.Gate) *services.ServiceContainer {
	// --- Репозитории ---
	userRepo := repositories.NewUserRepository()
	codeRepo := repositories.NewVerificationRepository()
	gigRepo := repositories.NewGigRepository()
	applicationRepo := repositories.NewApplicationRepository()
	contractRepo := repositories.NewContractRepository()
	reviewRepo := repositories.NewReviewRepository()
	statsRepo := repositories.NewStatsRepository()

	// --- Сервисы ---
	verificationService := services.NewVerificationService(codeRepo, userRepo, deliverer, cfg.Verification.CodeExpiry, cfg.Verification.ResetExpiry)
	authService := services.NewAuthService(userRepo, verificationService, sessions, gate)
	userService := services.NewUserService(userRepo, verificationService)
	matchingService := services.NewMatchingService(userRepo, gigRepo, cfg.Matching.MaxDistanceKm, cfg.Matching.RecommendationLimit)
	gigService := services.NewGigService(gigRepo, applicationRepo, contractRepo)
	applicationService := services.NewApplicationService(applicationRepo, gigRepo)
	contractService := services.NewContractService(contractRepo, gigRepo, userRepo)
	reviewService := services.NewReviewService(reviewRepo, gigRepo, userRepo)
	adminService := services.NewAdminService(userRepo, statsRepo)

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		VerificationService: verificationService,
		MatchingService:     matchingService,
		GigService:          gigService,
		ApplicationService:  applicationService,
		ContractService:     contractService,
		ReviewService:       reviewService,
		AdminService:        adminService,
	}
}

func initializeHandlers(cfg *config.Config, services *services.ServiceContainer, gate *access.Gate) *handlers.AppHandlers {
	customValidator := validator.New()
	// ShouldBind валидирует тем же движком и тегами
	binding.Validator = customValidator

	baseHandler := handlers.NewBaseHandler(customValidator, gate, handlers.CookieConfigFrom(cfg))

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:        handlers.NewUserHandler(baseHandler, services.UserService, services.AuthService),
		GigHandler:         handlers.NewGigHandler(baseHandler, services.GigService),
		MatchingHandler:    handlers.NewMatchingHandler(baseHandler, services.MatchingService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, services.ApplicationService),
		ContractHandler:    handlers.NewContractHandler(baseHandler, services.ContractService),
		ReviewHandler:      handlers.NewReviewHandler(baseHandler, services.ReviewService),
		AdminHandler:       handlers.NewAdminHandler(baseHandler, services.AdminService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, sessions *session.Manager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	router.Use(middleware.SessionMiddleware(sessions, cfg.Session.CookieName))
	return router
}

func rateLimit(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	if !cfg.RateLimit.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimitMiddleware(ratelimit.New(rdb, cfg.RateLimit.Rate, cfg.RateLimit.Burst))
}
