package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/dm-webhook/internal/config"
	"github.com/vladimiradmaev/dm-webhook/internal/database"
	"github.com/vladimiradmaev/dm-webhook/internal/logger"
	"github.com/vladimiradmaev/dm-webhook/internal/repository"
	"github.com/vladimiradmaev/dm-webhook/internal/services"
	"github.com/vladimiradmaev/dm-webhook/internal/session"
	"github.com/vladimiradmaev/dm-webhook/internal/webhook"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	logger.Info("Starting DM fulfillment webhook...")

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Info("Database connection established and migrations completed")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sessions session.Manager
	if cfg.Redis.Host != "" {
		redisSessions, err := session.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisSessions.Close()
		sessions = redisSessions
		logger.Info("Using Redis session manager")
	} else {
		sessions = session.NewMemoryManager()
		logger.Info("Using in-memory session manager")
	}

	var generator services.TextGenerator
	switch cfg.Model.Provider {
	case "gemini":
		gemini, err := services.NewGeminiGenerator(ctx, cfg.Model.GeminiAPIKey)
		if err != nil {
			logger.Fatalf("Failed to create Gemini generator: %v", err)
		}
		defer gemini.Close()
		generator = gemini
	default:
		if cfg.Model.EndpointURL != "" {
			generator = services.NewEndpointGenerator(cfg.Model.EndpointURL, cfg.Model.Timeout)
		} else {
			logger.Warn("MODEL_ENDPOINT_URL not set, stress replies fall back to canned text")
		}
	}

	store := repository.NewRecordRepository(db)
	profiles := services.NewProfileService(store, sessions, cfg.Server.StoreTimeout)
	events := services.NewEventService(store, generator, cfg.Server.StoreTimeout)
	dispatcher := services.NewDispatcher(profiles, events)
	logger.Info("Services initialized successfully")

	server := webhook.NewServer(cfg.Server.Port, webhook.NewHandler(dispatcher))
	if err := server.Start(ctx); err != nil {
		logger.Fatalf("Server stopped with error: %v", err)
	}
	logger.Info("Shutdown complete")
}
