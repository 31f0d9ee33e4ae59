package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"reviewapi/internal/config"
	"reviewapi/internal/database"
	"reviewapi/internal/database/migration"
	"reviewapi/internal/logging"
	"reviewapi/internal/repository/sqlstore"
	"reviewapi/internal/seed"
	"reviewapi/internal/service"
)

var (
	cfg      *config.AppConfig
	logger   *logging.Logger
	db       *sql.DB
	migrator *migration.Migrator
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration tool for the review API",
	Long: `Database migration tool for the review API.
Applies the embedded schema migrations for the configured DB_DRIVER (postgres or sqlite)
and loads YAML fixtures.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupDatabase,
	PersistentPostRunE: closeDatabase,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE:  runUp,
}

var downCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback migrations",
	Long:  `Rollback the specified number of migrations (default: 1).`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDown,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show current migration version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load customers, restaurants and reviews from a YAML fixture",
	Long: `Load customers, restaurants and reviews from a YAML fixture.
Pending migrations are applied first. Reviews reference customers and restaurants by key.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func setupDatabase(cmd *cobra.Command, _ []string) error {
	cfg = config.Load()
	logger = logging.Default(cfg.Location())

	var err error
	db, err = database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator, err = migration.New(cmd.Context(), db, cfg.Database.Driver, cfg.Database.Host, logger)
	if err != nil {
		_ = db.Close()
		return err
	}
	return nil
}

func closeDatabase(_ *cobra.Command, _ []string) error {
	if migrator != nil {
		_ = migrator.Close()
	}
	if db != nil {
		return db.Close()
	}
	return nil
}

func runUp(cmd *cobra.Command, _ []string) error {
	return migrator.Up(cmd.Context())
}

func runDown(cmd *cobra.Command, args []string) error {
	steps := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid steps %q: %w", args[0], err)
		}
		steps = n
	}
	return migrator.Down(cmd.Context(), steps)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	version, dirty, ok, err := migrator.Version()
	if err != nil {
		return err
	}
	if !ok {
		cmd.Println("no migrations applied")
		return nil
	}
	cmd.Printf("version %d (dirty: %t)\n", version, dirty)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	fixture, err := seed.LoadFile(args[0])
	if err != nil {
		return err
	}
	if err := migrator.Up(cmd.Context()); err != nil {
		return err
	}

	dialect := sqlstore.DialectFor(cfg.Database.Driver)
	customers := sqlstore.NewCustomerStore(db, dialect)
	restaurants := sqlstore.NewRestaurantStore(db, dialect)
	reviews := sqlstore.NewReviewStore(db, dialect)

	seeder := seed.New(
		service.NewCustomerService(customers, restaurants, reviews),
		service.NewRestaurantService(restaurants, customers, reviews),
		service.NewReviewService(reviews, customers, restaurants),
		logger,
	)
	res, err := seeder.Apply(cmd.Context(), fixture)
	if err != nil {
		return err
	}
	cmd.Printf("seeded %d customers, %d restaurants, %d reviews\n", len(res.Customers), len(res.Restaurants), len(res.Reviews))
	return nil
}
