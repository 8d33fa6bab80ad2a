package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// sqlitePragmas make every commit durable (synchronous FULL under WAL) and
// take the write lock at BEGIN so concurrent writers queue instead of failing.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)&_txlock=immediate"

// SQLiteDSN appends the default pragmas unless the DSN already sets its own.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

// Open connects to the configured backend and migrates it. driver is
// "sqlite" or "postgres".
func Open(ctx context.Context, driver, dsn string) (*sql.DB, RepositoryManager, error) {
	var (
		db  *sql.DB
		m   RepositoryManager
		err error
	)

	switch driver {
	case "sqlite":
		db, err = sql.Open("sqlite", SQLiteDSN(dsn))
		m = NewSQLiteRepositoryManager()
	case "postgres":
		db, err = sql.Open("pgx", dsn)
		m = NewPostgresRepositoryManager()
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", driver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db migration error: %w", err)
	}

	return db, m, nil
}
