package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "casetrack-backend/internal/api/http"
	"casetrack-backend/internal/config"
	"casetrack-backend/internal/jobs"
	"casetrack-backend/internal/logger"
	"casetrack-backend/internal/repository/postgres"
	"casetrack-backend/internal/security"
	"casetrack-backend/internal/service"
	"casetrack-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CaseTrack backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryDays)

	// Initialize Document Storage
	blobStore, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}
	logger.Info("Document storage initialized", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
		time.Duration(cfg.Email.TimeoutSeconds)*time.Second,
	)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	accessSvc := service.NewAccessRequestService(store.AccessRequestRepository, store.UserRepository, emailSvc)
	caseSvc := service.NewCaseService(store.CaseRepository, store.DocumentRepository, store.ReminderRepository, blobStore)
	reminderSvc := service.NewReminderService(store.ReminderRepository, store.CaseRepository)
	jobRunner := jobs.NewJobRunner(store.ReminderRepository, emailSvc, cfg)

	// Initialize HTTP layer
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager, store.UserRepository)
	cookieMaxAge := time.Duration(cfg.JWT.ExpiryDays) * 24 * time.Hour
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:           httpapi.NewAuthHandler(authSvc, cookieMaxAge),
		AccessRequests: httpapi.NewAccessRequestHandler(accessSvc),
		Cases:          httpapi.NewCaseHandler(caseSvc),
		Reminders:      httpapi.NewReminderHandler(reminderSvc),
		Cron:           httpapi.NewCronHandler(jobRunner),
		Middleware:     authMiddleware,
		CronSecret:     cfg.Cron.Secret,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
