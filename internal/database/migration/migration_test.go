package migration

import (
	"bytes"
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewapi/internal/config"
	"reviewapi/internal/database"
	"reviewapi/internal/logging"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.NewSQLite(config.DatabaseConfig{
		SQLitePath: filepath.Join(t.TempDir(), "migrate.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	require.NoError(t, err)
	return n == 1
}

func TestMigrator_SQLiteUpDown(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	var buf bytes.Buffer
	mg, err := New(ctx, db, config.DriverSQLite, "", logging.New(&buf, nil))
	require.NoError(t, err)
	defer mg.Close()

	_, _, ok, err := mg.Version()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mg.Up(ctx))

	for _, table := range []string{"customers", "restaurants", "reviews"} {
		assert.True(t, tableExists(t, db, table), table)
	}

	version, dirty, ok, err := mg.Version()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, dirty)
	assert.Equal(t, uint(3), version)
	assert.Contains(t, buf.String(), `"event":"db_migration_success"`)

	// Second run is a no-op.
	buf.Reset()
	require.NoError(t, mg.Up(ctx))
	assert.Contains(t, buf.String(), `"event":"db_migration_skip"`)

	require.NoError(t, mg.Down(ctx, 1))
	assert.False(t, tableExists(t, db, "reviews"))
	assert.True(t, tableExists(t, db, "customers"))

	version, _, _, err = mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
}

func TestMigrator_SQLiteConstraintNames(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	mg, err := New(ctx, db, config.DriverSQLite, "", nil)
	require.NoError(t, err)
	require.NoError(t, mg.Up(ctx))

	var ddl string
	require.NoError(t, db.QueryRow(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'reviews'`).Scan(&ddl))
	assert.Contains(t, ddl, "fk_reviews_customer_id_customers")
	assert.Contains(t, ddl, "fk_reviews_restaurant_id_restaurants")
}

func TestMigrator_DownRejectsNonPositiveSteps(t *testing.T) {
	ctx := context.Background()
	mg, err := New(ctx, openSQLite(t), config.DriverSQLite, "", nil)
	require.NoError(t, err)

	assert.Error(t, mg.Down(ctx, 0))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(context.Background(), openSQLite(t), "mysql", "", nil)
	assert.Error(t, err)
}

func TestMigrationFiles_Paired(t *testing.T) {
	for _, dialect := range []string{config.DriverPostgres, config.DriverSQLite} {
		entries, err := fs.ReadDir(migrationsFS, "migrations/"+dialect)
		require.NoError(t, err)

		ups, downs := 0, 0
		for _, e := range entries {
			switch {
			case strings.HasSuffix(e.Name(), ".up.sql"):
				ups++
			case strings.HasSuffix(e.Name(), ".down.sql"):
				downs++
			}
		}
		assert.Equal(t, 3, ups, dialect)
		assert.Equal(t, ups, downs, dialect)
	}
}

func TestMigrationFiles_PostgresForeignKeys(t *testing.T) {
	b, err := fs.ReadFile(migrationsFS, "migrations/postgres/000003_create_reviews.up.sql")
	require.NoError(t, err)

	ddl := string(b)
	assert.Contains(t, ddl, "CONSTRAINT fk_reviews_customer_id_customers")
	assert.Contains(t, ddl, "REFERENCES customers (id) ON DELETE RESTRICT")
	assert.Contains(t, ddl, "CONSTRAINT fk_reviews_restaurant_id_restaurants")
	assert.Contains(t, ddl, "REFERENCES restaurants (id) ON DELETE RESTRICT")
}
