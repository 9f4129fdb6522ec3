// Package database records generation runs and their attempts in SQLite or PostgreSQL.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database wraps the ledger connection and its dialect.
type Database struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open opens or creates the SQLite ledger at the given path.
func Open(path string) (*Database, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig opens the ledger described by cfg and applies the schema.
func OpenWithConfig(cfg Config) (*Database, error) {
	var (
		dialect Dialect
		dsn     string
	)
	switch DialectType(cfg.Driver) {
	case DialectSQLite, "":
		dialect = NewDialect(DialectSQLite)
		dir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.SQLitePath
	case DialectPostgres:
		dialect = NewDialect(DialectPostgres)
		dsn = cfg.Postgres.DSN()
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if DialectType(cfg.Driver) == DialectPostgres {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run %q: %w", stmt, err)
		}
	}

	d := &Database{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// migrate creates the ledger schema if it doesn't exist.
func (d *Database) migrate() error {
	ts := d.dialect.TimestampType()
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			template TEXT NOT NULL,
			width INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			height INTEGER NOT NULL,
			seed BIGINT NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL DEFAULT 'running',
			tileset_digest TEXT NOT NULL DEFAULT '',
			output_path TEXT NOT NULL DEFAULT '',
			output_digest TEXT NOT NULL DEFAULT '',
			output_bytes BIGINT NOT NULL DEFAULT 0,
			started_at ` + ts + ` NOT NULL,
			finished_at ` + ts + `
		)`,

		`CREATE TABLE IF NOT EXISTS attempts (
			id ` + d.dialect.AutoIncrementKey() + `,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			number INTEGER NOT NULL,
			seed BIGINT NOT NULL,
			steps INTEGER NOT NULL,
			state TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			UNIQUE(run_id, number)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_template ON runs(template)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_run_id ON attempts(run_id)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// DB returns the underlying sql.DB for advanced operations.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Dialect returns the dialect the ledger was opened with.
func (d *Database) Dialect() Dialect {
	return d.dialect
}
