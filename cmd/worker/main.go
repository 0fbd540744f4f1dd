package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/shashank9666/qwipo-backend/internal/config"
	"github.com/shashank9666/qwipo-backend/internal/database"
	"github.com/shashank9666/qwipo-backend/internal/logging"
	"github.com/shashank9666/qwipo-backend/internal/models"
	"github.com/shashank9666/qwipo-backend/internal/queue"
	"github.com/shashank9666/qwipo-backend/internal/repository"
	"github.com/shashank9666/qwipo-backend/internal/service"
)

func main() {
	// Load .env file (ignore error in production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.SetupFormat(cfg.Log.Level, cfg.Log.File, logging.FormatFor(cfg.IsDevelopment()))

	if !cfg.EventsEnabled() {
		log.Fatal().Msg("RABBITMQ_URL is required to run the worker")
	}

	ctx := context.Background()

	db, err := database.Open(ctx, database.Options{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.GetDatabaseDSN(),
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if _, err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	conn, err := queue.NewConnection(cfg.RabbitMQ.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
	}
	defer conn.Close()

	eventSvc := service.NewEventService(repository.NewEventRepository(db))

	consumer, err := queue.NewConsumer(conn, cfg.RabbitMQ.Queue, createEventHandler(eventSvc))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create consumer")
	}

	if err := consumer.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start consumer")
	}
	log.Info().Str("queue", cfg.RabbitMQ.Queue).Msg("Worker started")

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")

	if err := consumer.Stop(); err != nil {
		log.Error().Err(err).Msg("Error stopping consumer")
	}

	log.Info().Msg("Worker stopped")
}

// createEventHandler stores each consumed event. Invalid events are dropped,
// store failures are retried through redelivery.
func createEventHandler(eventSvc *service.EventService) queue.EventHandler {
	return func(ctx context.Context, event *models.CustomerEvent) error {
		err := eventSvc.RecordEvent(ctx, event)

		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return fmt.Errorf("%w: %v", queue.ErrPermanent, err)
		}
		return err
	}
}
