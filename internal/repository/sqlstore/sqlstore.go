// Package sqlstore implements the repository interfaces on database/sql.
// The same statements serve PostgreSQL and SQLite; placeholders are written
// PostgreSQL-style ($1, $2, ...) and rebound for SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"reviewapi/internal/config"
	"reviewapi/internal/repository"
)

// Dialect selects placeholder syntax.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// DialectFor maps a configured driver name to its Dialect.
func DialectFor(driver string) Dialect {
	if driver == config.DriverSQLite {
		return SQLite
	}
	return Postgres
}

// SQLSTATE codes raised by PostgreSQL for constraint failures.
const (
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// rebind rewrites $N placeholders to ? for SQLite. Statements must reference
// each placeholder once, in ascending order.
func (d Dialect) rebind(q string) string {
	if d != SQLite {
		return q
	}
	var b strings.Builder
	b.Grow(len(q))
	for i := 0; i < len(q); i++ {
		if q[i] == '$' && i+1 < len(q) && isDigit(q[i+1]) {
			b.WriteByte('?')
			for i+1 < len(q) && isDigit(q[i+1]) {
				i++
			}
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// translateError tags driver constraint errors with the repository sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", repository.ErrForeignKeyViolation, err)
		case pgNotNullViolation:
			return fmt.Errorf("%w: %w", repository.ErrNotNullViolation, err)
		}
		return err
	}

	// modernc enables extended result codes, so the low byte carries the primary
	// code. RESTRICT deletes report SQLITE_CONSTRAINT_TRIGGER with a FOREIGN KEY
	// message rather than SQLITE_CONSTRAINT_FOREIGNKEY.
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) && sqErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := sqErr.Error()
		switch {
		case sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, strings.Contains(msg, "FOREIGN KEY"):
			return fmt.Errorf("%w: %w", repository.ErrForeignKeyViolation, err)
		case sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_NOTNULL, strings.Contains(msg, "NOT NULL"):
			return fmt.Errorf("%w: %w", repository.ErrNotNullViolation, err)
		}
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

// queryAll runs q and scans every row with scan. It never returns a nil slice.
func queryAll[T any](ctx context.Context, db *sql.DB, q string, scan func(scanner) (T, error), args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// page counts the table and fetches one LIMIT/OFFSET page.
func page[T any](ctx context.Context, db *sql.DB, countQ, listQ string, pq repository.PageQuery, scan func(scanner) (T, error)) (*repository.PageResult[T], error) {
	var total int
	if err := db.QueryRowContext(ctx, countQ).Scan(&total); err != nil {
		return nil, err
	}

	items, err := queryAll(ctx, db, listQ, scan, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[T]{
		Items: items,
		Total: total,
	}, nil
}
