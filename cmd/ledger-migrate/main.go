// ledger-migrate copies the run ledger from SQLite to PostgreSQL.
//
// Usage:
//
//	go run ./cmd/ledger-migrate \
//	    -sqlite data/tilegen.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user tilegen \
//	    -pg-password tilegen \
//	    -pg-database tilegen
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lawnchairsociety/tilegen/internal/database"
	"github.com/lawnchairsociety/tilegen/internal/logger"
)

func main() {
	sqlitePath := flag.String("sqlite", "data/tilegen.db", "Path to SQLite ledger")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "tilegen", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "tilegen", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "tilegen", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be copied without making changes")
	flag.Parse()

	logger.Initialize(logger.DefaultConfig())

	pg := database.DefaultPostgresConfig()
	pg.Host = *pgHost
	pg.Port = *pgPort
	pg.User = *pgUser
	pg.Password = *pgPassword
	pg.Database = *pgDatabase
	pg.SSLMode = *pgSSLMode

	if err := run(*sqlitePath, pg, *dryRun); err != nil {
		logger.Error("Ledger copy failed", "error", err)
		os.Exit(1)
	}
}

func run(sqlitePath string, pg database.PostgresConfig, dryRun bool) error {
	src, err := database.Open(sqlitePath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite ledger %s: %w", sqlitePath, err)
	}
	defer src.Close()

	logger.Info("Opening PostgreSQL ledger", "host", pg.Host, "port", pg.Port, "database", pg.Database)
	dst, err := database.OpenWithConfig(database.Config{Driver: string(database.DialectPostgres), Postgres: pg})
	if err != nil {
		return err
	}
	defer dst.Close()

	if dryRun {
		logger.Info("Dry run, no changes will be made")
	}

	stats, err := database.CopyLedger(src, dst, dryRun)
	if err != nil {
		return fmt.Errorf("copied %d runs before failing: %w", stats.Runs, err)
	}
	logger.Always("Ledger copied", "runs", stats.Runs, "attempts", stats.Attempts, "skipped", stats.Skipped, "dry_run", dryRun)
	return nil
}
