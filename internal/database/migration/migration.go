package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"reviewapi/internal/config"
	"reviewapi/internal/logging"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations for one dialect.
type Migrator struct {
	m      *migrate.Migrate
	conn   *sql.Conn
	log    *logging.Logger
	driver string
	dbHost string
}

// New prepares a Migrator over db. driver is config.DriverPostgres or config.DriverSQLite;
// dbHost is only used for log fields.
func New(ctx context.Context, db *sql.DB, driver string, dbHost string, log *logging.Logger) (*Migrator, error) {
	if driver == "" {
		driver = config.DriverPostgres
	}

	src, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}

	var (
		dbDriver database.Driver
		conn     *sql.Conn
	)
	switch driver {
	case config.DriverPostgres:
		// A dedicated connection keeps Close from shutting down the shared pool.
		conn, err = db.Conn(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquire migration connection: %w", err)
		}
		dbDriver, err = postgres.WithConnection(ctx, conn, &postgres.Config{})
	case config.DriverSQLite:
		dbDriver, err = sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return nil, fmt.Errorf("unsupported migration driver %q", driver)
	}
	if err != nil {
		if conn != nil {
			_ = conn.Close()
		}
		return nil, fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		if conn != nil {
			_ = conn.Close()
		}
		return nil, fmt.Errorf("create migration instance: %w", err)
	}

	mg := &Migrator{m: m, conn: conn, log: log, driver: driver, dbHost: dbHost}
	m.Log = stepLogger{mg}
	return mg, nil
}

// Up applies all pending migrations. An up-to-date schema is not an error.
func (mg *Migrator) Up(ctx context.Context) error {
	start := time.Now()
	mg.event("db_migration_start", "in_progress", nil)

	stop := mg.stopOnCancel(ctx)
	defer stop()

	err := mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.event("db_migration_skip", "success", logging.Fields{
			"msg":         "schema already up to date, skipping migration",
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}
	if err != nil {
		mg.event("db_migration_failed", "error", logging.Fields{
			"error_message": err.Error(),
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("migrate up: %w", err)
	}

	mg.event("db_migration_success", "success", logging.Fields{
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// Down rolls back steps migrations.
func (mg *Migrator) Down(ctx context.Context, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	start := time.Now()

	stop := mg.stopOnCancel(ctx)
	defer stop()

	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		mg.event("db_migration_failed", "error", logging.Fields{
			"error_message": err.Error(),
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("migrate down %d: %w", steps, err)
	}

	mg.event("db_migration_rollback", "success", logging.Fields{
		"steps":       steps,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// Version reports the applied schema version. ok is false when nothing has been applied.
func (mg *Migrator) Version() (version uint, dirty bool, ok bool, err error) {
	version, dirty, err = mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("migration version: %w", err)
	}
	return version, dirty, true, nil
}

// Close releases the dedicated connection, if any. The *sql.DB passed to New stays open.
func (mg *Migrator) Close() error {
	if mg.conn != nil {
		return mg.conn.Close()
	}
	return nil
}

// stopOnCancel forwards ctx cancellation to golang-migrate's GracefulStop.
func (mg *Migrator) stopOnCancel(ctx context.Context) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			select {
			case mg.m.GracefulStop <- true:
			default:
			}
		case <-done:
		}
	}()
	return func() { close(done) }
}

func (mg *Migrator) event(name, status string, extra logging.Fields) {
	f := logging.Fields{
		"component": "database",
		"event":     name,
		"status":    status,
		"db_driver": mg.driver,
	}
	if mg.dbHost != "" {
		f["db_host"] = mg.dbHost
	}
	for k, v := range extra {
		f[k] = v
	}
	mg.log.Log(f)
}

// stepLogger adapts golang-migrate's progress output to JSON log lines.
type stepLogger struct {
	mg *Migrator
}

func (l stepLogger) Printf(format string, v ...any) {
	l.mg.event("db_migration_step", "success", logging.Fields{
		"msg": strings.TrimSpace(fmt.Sprintf(format, v...)),
	})
}

func (l stepLogger) Verbose() bool {
	return false
}
