package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"analytics-gate.backend/internal/config"
	"analytics-gate.backend/internal/infrastructure/repositories"
	"analytics-gate.backend/internal/interfaces/http/handlers"
	"analytics-gate.backend/internal/interfaces/http/middleware"
	"analytics-gate.backend/internal/usecases"
	"analytics-gate.backend/pkg/googleauth"
	"analytics-gate.backend/pkg/logger"
	"analytics-gate.backend/pkg/metrics"
	"analytics-gate.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis (OAuth state storage)
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	apiKeyRepo := repositories.NewApiKeyRepository(db)
	eventRepo := repositories.NewAnalyticsEventRepository(db)

	// Initialize usecases
	tenantUsecase := usecases.NewTenantUsecase(userRepo, appRepo, apiKeyRepo, cfg.APIKey.TTL)
	keyAuthUsecase := usecases.NewKeyAuthUsecase(apiKeyRepo)
	analyticsUsecase := usecases.NewAnalyticsUsecase(eventRepo)

	// Google identity plumbing
	verifier := googleauth.NewVerifier(cfg.Google.ClientID)
	oauthClient := googleauth.NewOAuthClient(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.CallbackURL)
	stateStore := redis.NewStateStore(cfg.Google.StateTTL)

	// Metrics
	m := metrics.New("analytics_gate")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(tenantUsecase)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUsecase, m)
	loginHandler := handlers.NewGoogleLoginHandler(oauthClient, stateStore)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(m.Middleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r, sqlDB)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	registerAPIRoutes(r, routeDeps{
		authHandler:          authHandler,
		analyticsHandler:     analyticsHandler,
		loginHandler:         loginHandler,
		googleAuthMiddleware: middleware.GoogleAuthMiddleware(verifier),
		apiKeyMiddleware:     middleware.APIKeyAuthMiddleware(keyAuthUsecase),
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Start server
	log.Printf("🚀 Analytics Gate starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
