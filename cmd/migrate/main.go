package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shashank9666/qwipo-backend/internal/config"
	"github.com/shashank9666/qwipo-backend/internal/database"
	"github.com/shashank9666/qwipo-backend/internal/logging"
)

// ANSI color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

var (
	dbPath    string
	driver    string
	verbosity int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the customer directory schema",
		Long:          `Applies pending schema migrations. Runs "up" when no subcommand is given.`,
		RunE:          runUp,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (or set DB_PATH env var)")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Database driver: sqlite or postgres (or set DB_DRIVER env var)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE:  runUp,
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied migrations and the current tables",
			RunE:  runStatus,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

func openStore(ctx context.Context) (*database.DB, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if driver != "" {
		cfg.Database.Driver = driver
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Setup(logging.Verbosity(verbosity, "warn"), "")

	printInfo(fmt.Sprintf("Connecting to %s database...", cfg.Database.Driver))
	return database.Open(ctx, database.Options{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.GetDatabaseDSN(),
		MaxConns: 1,
	})
}

func runUp(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	changes, err := database.Migrate(ctx, db)
	if err != nil {
		return err
	}

	if len(changes) == 0 {
		printSuccess("Schema is up to date")
		return nil
	}

	for _, c := range changes {
		printSuccess(fmt.Sprintf("%03d %-26s %s", c.Version, c.Name, c.Action))
	}
	printSuccess(fmt.Sprintf("Applied %d migration(s)", len(changes)))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	statuses, err := database.Status(ctx, db)
	if err != nil {
		return err
	}

	fmt.Println("\nMigrations:")
	pending := 0
	for _, s := range statuses {
		if s.Applied {
			fmt.Printf("  %s✓%s %03d %-26s %s\n", colorGreen, colorReset, s.Version, s.Name, s.AppliedAt)
		} else {
			pending++
			fmt.Printf("  %s•%s %03d %-26s pending\n", colorYellow, colorReset, s.Version, s.Name)
		}
	}

	tables, err := database.DescribeTables(ctx, db)
	if err != nil {
		return err
	}

	fmt.Println("\nTables:")
	for _, t := range tables {
		if !t.Exists {
			fmt.Printf("  %s%-16s missing%s\n", colorRed, t.Name, colorReset)
			continue
		}
		fmt.Printf("  %-16s %s\n", t.Name, strings.Join(t.Columns, ", "))
	}
	fmt.Println()

	if pending > 0 {
		printWarning(fmt.Sprintf("%d migration(s) pending, run 'migrate up'", pending))
	}
	return nil
}

func printSuccess(msg string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, msg, colorReset)
}

func printError(msg string) {
	fmt.Fprintf(os.Stderr, "%s✗ %s%s\n", colorRed, msg, colorReset)
}

func printInfo(msg string) {
	fmt.Printf("%s%s%s\n", colorCyan, msg, colorReset)
}

func printWarning(msg string) {
	fmt.Printf("%s⚠ %s%s\n", colorYellow, msg, colorReset)
}
