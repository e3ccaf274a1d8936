package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/flypacademy/podcast-academy/docs"
	"github.com/flypacademy/podcast-academy/internal/auth/middleware"
	"github.com/flypacademy/podcast-academy/internal/auth/service"
	"github.com/flypacademy/podcast-academy/internal/config"
	"github.com/flypacademy/podcast-academy/internal/handlers"
	"github.com/flypacademy/podcast-academy/internal/logger"
	loggerMiddleware "github.com/flypacademy/podcast-academy/internal/logger/middleware"
	"github.com/flypacademy/podcast-academy/internal/middlewares"
	"github.com/flypacademy/podcast-academy/internal/models"
	"github.com/flypacademy/podcast-academy/internal/repositories"
	"github.com/flypacademy/podcast-academy/internal/scheduler"
	"github.com/flypacademy/podcast-academy/internal/services"
	"github.com/flypacademy/podcast-academy/internal/storage"
)

// @title Flyp Academy API
// @version 1.0
// @description API for podcast-based GCSE revision courses

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Flyp Academy API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := service.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	userTokenRepo := repositories.NewUserTokenRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	podcastRepo := repositories.NewPodcastRepository(db)
	progressRepo := repositories.NewProgressRepository(db)
	xpEventRepo := repositories.NewXPEventRepository(db)
	experienceRepo := repositories.NewExperienceRepository(db)
	streakRepo := repositories.NewStreakRepository(db)
	playerStateRepo := repositories.NewPlayerStateRepository(db)
	quizRepo := repositories.NewQuizRepository(db)
	metadataRepo := repositories.NewMetadataRepository(db)

	// Initialize media storage
	mediaStorage := storage.NewLocalStorage(cfg.MediaBasePath)

	// Initialize services
	authService := services.NewAuthService(userRepo, userTokenRepo, tokenGenerator, logger.Logger)
	courseService := services.NewCourseService(courseRepo, podcastRepo, logger.Logger)
	playbackService := services.NewPlaybackService(podcastRepo, progressRepo, xpEventRepo, experienceRepo, streakRepo, playerStateRepo, logger.Logger)
	profileService := services.NewProfileService(userRepo, experienceRepo, streakRepo, progressRepo, xpEventRepo, logger.Logger)
	leaderboardService := services.NewLeaderboardService(experienceRepo, logger.Logger)
	quizService := services.NewQuizService(quizRepo, podcastRepo, xpEventRepo, experienceRepo, logger.Logger)
	adminService := services.NewAdminService(courseRepo, podcastRepo, quizRepo, logger.Logger)
	maintenanceService := services.NewMaintenanceService(experienceRepo, userTokenRepo, cfg.JWT.RefreshTokenExpiry, logger.Logger)
	mediaService := services.NewMediaService(metadataRepo, mediaStorage, logger.Logger)

	// OIDC login is optional; a nil service disables the endpoints
	var oidcService handlers.OIDCService
	oidcSvc, err := services.NewOIDCService(context.Background(), cfg.OIDC, userRepo, userTokenRepo, tokenGenerator, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize OIDC provider", zap.Error(err))
	}
	if oidcSvc != nil {
		oidcService = oidcSvc
	} else {
		logger.Logger.Warn("OIDC login disabled, no provider configured")
	}

	// Start the in-process maintenance scheduler
	if cfg.Scheduler.Enabled {
		maintenanceScheduler, err := scheduler.NewScheduler(
			maintenanceService,
			cfg.Scheduler.WeeklyResetSpec,
			cfg.Scheduler.TokenCleanupSpec,
			logger.Logger,
		)
		if err != nil {
			logger.Logger.Fatal("Failed to create maintenance scheduler", zap.Error(err))
		}
		maintenanceScheduler.Start()
		defer maintenanceScheduler.Stop()
	} else {
		logger.Logger.Info("Maintenance scheduler disabled, relying on the API-key endpoints")
	}

	// Initialize auth middleware
	authMiddleware := middleware.AuthMiddleware(tokenGenerator)
	adminMiddleware := middleware.RoleMiddleware(tokenGenerator, int(models.RoleAdmin))
	apiKeyMiddleware := middleware.APIKeyMiddleware(cfg.APIKey)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, oidcService, logger.Logger)
	courseHandler := handlers.NewCourseHandler(courseService, logger.Logger)
	playbackHandler := handlers.NewPlaybackHandler(playbackService, logger.Logger)
	profileHandler := handlers.NewProfileHandler(profileService, logger.Logger)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService, logger.Logger)
	quizHandler := handlers.NewQuizHandler(quizService, logger.Logger)
	adminHandler := handlers.NewAdminHandler(adminService, logger.Logger)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService, logger.Logger)
	mediaHandler := handlers.NewMediaHandler(mediaService, logger.Logger, cfg.MediaBaseURL, authMiddleware)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(110 * 1024 * 1024)) // leaves room for audio uploads

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes are public
		authHandler.RegisterRoutes(r)
		// Media routes apply auth per-route
		mediaHandler.RegisterRoutes(r, adminMiddleware)
		// Listener routes require authentication
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			courseHandler.RegisterRoutes(r)
			playbackHandler.RegisterRoutes(r)
			profileHandler.RegisterRoutes(r)
			leaderboardHandler.RegisterRoutes(r)
			quizHandler.RegisterRoutes(r)
		})
		// Catalogue management requires the admin role
		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			adminHandler.RegisterRoutes(r)
		})
		// Maintenance routes allow manual triggering with the API key
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			maintenanceHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "academy_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
