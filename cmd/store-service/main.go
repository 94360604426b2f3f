package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"nofa-store-service/internal/adapters/db"
	"nofa-store-service/internal/adapters/httpapi"
	"nofa-store-service/internal/adapters/mailer"
	"nofa-store-service/internal/app"
	"nofa-store-service/internal/config"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	initLogging(cfg)

	log.Info().Msg("Starting NOFA Vintage store service...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	dbConn, err := db.NewConnection(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbConn.Close()

	if err := dbConn.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}

	log.Info().Msg("Database connection established")

	// Create repositories
	repoFactory := db.NewRepositoryFactory(dbConn)
	itemRepo := repoFactory.GetItemRepository()
	bidRepo := repoFactory.GetBidRepository()
	imageRepo := repoFactory.GetImageRepository()

	log.Info().Msg("Database repositories initialized")

	// Create the SMTP notifier (no-op when SMTP settings are incomplete)
	notifier := mailer.NewSMTPNotifier(mailer.SMTPNotifierParams{
		SMTP:       cfg.SMTP,
		AdminEmail: cfg.Admin.Email,
		Logger:     log.Logger,
	})

	// Create business services
	itemService := app.NewItemService(app.ItemServiceParams{
		ItemRepo:  itemRepo,
		BidRepo:   bidRepo,
		ImageRepo: imageRepo,
		Logger:    log.Logger,
	})
	bidService := app.NewBidService(app.BidServiceParams{
		BidRepo:  bidRepo,
		ItemRepo: itemRepo,
		Notifier: notifier,
		Logger:   log.Logger,
	})
	gate := app.NewAdminGate(cfg.Admin.Password, log.Logger)

	log.Info().Msg("Business services initialized")

	server := httpapi.NewServer(httpapi.ServerParams{
		Config:      cfg,
		ItemService: itemService,
		BidService:  bidService,
		Notifier:    notifier,
		Gate:        gate,
		Logger:      log.Logger,
	})

	// Start HTTP server
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start HTTP server")
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case <-ctx.Done():
		log.Info().Msg("Context cancelled")
	}

	// Graceful shutdown
	log.Info().Msg("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping HTTP server")
	}

	// Drain queued bid notifications
	notifier.Stop()
	log.Info().Msg("Notifier stopped")

	log.Info().Msg("Graceful shutdown completed")
}

func initLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		// JSON format (default)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Console format for development
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global logger
	zerolog.DefaultContextLogger = &log.Logger
}
