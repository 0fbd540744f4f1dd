package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shashank9666/qwipo-backend/internal/config"
	"github.com/shashank9666/qwipo-backend/internal/database"
	"github.com/shashank9666/qwipo-backend/internal/handler"
	"github.com/shashank9666/qwipo-backend/internal/logging"
	"github.com/shashank9666/qwipo-backend/internal/middleware"
	"github.com/shashank9666/qwipo-backend/internal/queue"
	"github.com/shashank9666/qwipo-backend/internal/repository"
	"github.com/shashank9666/qwipo-backend/internal/service"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

// CLI flags
var (
	port      string
	dbPath    string
	driver    string
	verbosity int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "api",
		Short: "Customer directory HTTP API",
		Long:  `Serves the customer and address REST API backed by SQLite or PostgreSQL.`,
		RunE:  run,
	}

	rootCmd.Flags().StringVarP(&port, "port", "p", "", "HTTP server port (or set PORT env var)")
	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (or set DB_PATH env var)")
	rootCmd.Flags().StringVar(&driver, "driver", "", "Database driver: sqlite or postgres (or set DB_DRIVER env var)")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("api %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Load .env file (ignore error in production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cfg); err != nil {
		return err
	}

	logging.SetupFormat(logging.Verbosity(verbosity, cfg.Log.Level), cfg.Log.File, logging.FormatFor(cfg.IsDevelopment()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	var publisher service.EventPublisher = queue.NopPublisher{}
	var queueStatus service.ConnectionChecker
	if cfg.EventsEnabled() {
		conn, err := queue.NewConnection(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
		}
		defer conn.Close()

		p, err := queue.NewPublisher(conn, cfg.RabbitMQ.Queue)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create event publisher")
		}
		publisher = p
		queueStatus = conn
		log.Info().Str("queue", cfg.RabbitMQ.Queue).Msg("Publishing customer events")
	} else {
		log.Info().Msg("RABBITMQ_URL not set, customer events are not published")
	}

	customerSvc := service.NewCustomerService(repository.NewCustomerRepository(db), publisher)
	addressSvc := service.NewAddressService(repository.NewAddressRepository(db), publisher)
	eventSvc := service.NewEventService(repository.NewEventRepository(db))
	healthSvc := service.NewHealthService(db, queueStatus, version)

	router := handler.NewRouter(handler.Handlers{
		Customers: handler.NewCustomerHandler(customerSvc, eventSvc),
		Addresses: handler.NewAddressHandler(addressSvc),
		Health:    handler.NewHealthHandler(healthSvc),
	}, middleware.DefaultCORSConfig(cfg.Server.CORSOrigin))

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("version", version).
			Str("port", cfg.Server.Port).
			Str("driver", cfg.Database.Driver).
			Str("env", cfg.Env).
			Msg("API server starting")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("API server stopped")
	return nil
}

// applyFlags overrides environment configuration with explicitly set flags
func applyFlags(cfg *config.Config) error {
	if port != "" {
		cfg.Server.Port = port
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if driver != "" {
		cfg.Database.Driver = driver
	}
	return cfg.Validate()
}
