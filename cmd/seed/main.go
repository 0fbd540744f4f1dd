package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shashank9666/qwipo-backend/internal/config"
	"github.com/shashank9666/qwipo-backend/internal/database"
	"github.com/shashank9666/qwipo-backend/internal/logging"
	"github.com/shashank9666/qwipo-backend/internal/seed"
)

// ANSI color codes for terminal output
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
)

var (
	dbPath    string
	clearData bool
	verbosity int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "seed",
		Short:         "Load sample customers and addresses",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (or set DB_PATH env var)")
	rootCmd.Flags().BoolVar(&clearData, "clear", false, "Delete existing customers and addresses before inserting")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	if err := rootCmd.Execute(); err != nil {
		printError(fmt.Sprintf("Seeding failed: %v", err))
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Load .env file (ignore error if not present)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	logging.Setup(logging.Verbosity(verbosity, "info"), "")

	ctx := context.Background()

	printInfo("Connecting to database...")
	db, err := database.Open(ctx, database.Options{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.GetDatabaseDSN(),
		MaxConns: 1,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := database.Migrate(ctx, db); err != nil {
		return err
	}

	result, err := seed.Run(ctx, db, seed.Options{Clear: clearData})
	if err != nil {
		return err
	}

	fmt.Println("\n=== SEED DATA SUMMARY ===")
	fmt.Printf("Total Customers: %d\n", len(result.Summary))
	for _, s := range result.Summary {
		fmt.Printf("%s %s (%s) - %d address(es)\n", s.FirstName, s.LastName, s.PhoneNumber, s.AddressCount)
	}
	fmt.Printf("Total Addresses: %d\n", result.TotalAddresses())
	fmt.Println("=========================")

	printSuccess(fmt.Sprintf("Inserted %d customer(s) and %d address(es), skipped %d existing customer(s)",
		result.CustomersInserted, result.AddressesInserted, result.CustomersSkipped))
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
