package database

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// Dialect Tests
// =============================================================================

func TestNewDialect(t *testing.T) {
	tests := []struct {
		in   DialectType
		want string
	}{
		{DialectSQLite, "sqlite"},
		{DialectPostgres, "postgres"},
		{"unknown", "sqlite"},
	}
	for _, tt := range tests {
		if got := NewDialect(tt.in).DriverName(); got != tt.want {
			t.Errorf("NewDialect(%q).DriverName() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDialect_InterfaceCompliance(t *testing.T) {
	var _ Dialect = (*SQLiteDialect)(nil)
	var _ Dialect = (*PostgresDialect)(nil)
}

// =============================================================================
// SQLite Dialect Tests
// =============================================================================

func TestSQLiteDialect(t *testing.T) {
	d := &SQLiteDialect{}
	for _, pos := range []int{1, 2, 10} {
		if got := d.Placeholder(pos); got != "?" {
			t.Errorf("Placeholder(%d) = %q, want %q", pos, got, "?")
		}
	}
	if !d.SupportsLastInsertID() {
		t.Error("SupportsLastInsertID() = false, want true")
	}
	if got := d.ReturningClause("id"); got != "" {
		t.Errorf("ReturningClause() = %q, want empty string", got)
	}
	if got := d.AutoIncrementKey(); got != "INTEGER PRIMARY KEY AUTOINCREMENT" {
		t.Errorf("AutoIncrementKey() = %q", got)
	}
	if got := d.TimestampType(); got != "TIMESTAMP" {
		t.Errorf("TimestampType() = %q, want TIMESTAMP", got)
	}

	expected := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	stmts := d.InitStatements()
	if len(stmts) != len(expected) {
		t.Fatalf("InitStatements() returned %d statements, want %d", len(stmts), len(expected))
	}
	for i, want := range expected {
		if stmts[i] != want {
			t.Errorf("InitStatements()[%d] = %q, want %q", i, stmts[i], want)
		}
	}
}

func TestSQLiteDialect_IsDuplicateKeyError(t *testing.T) {
	d := &SQLiteDialect{}
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("some random error"), false},
		{errors.New("UNIQUE constraint failed: attempts.run_id, attempts.number"), true},
		{errors.New("FOREIGN KEY constraint failed"), false},
	}
	for _, tt := range tests {
		if got := d.IsDuplicateKeyError(tt.err); got != tt.want {
			t.Errorf("IsDuplicateKeyError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

// =============================================================================
// PostgreSQL Dialect Tests
// =============================================================================

func TestPostgresDialect(t *testing.T) {
	d := &PostgresDialect{}
	tests := []struct {
		position int
		want     string
	}{
		{1, "$1"},
		{2, "$2"},
		{10, "$10"},
		{100, "$100"},
	}
	for _, tt := range tests {
		if got := d.Placeholder(tt.position); got != tt.want {
			t.Errorf("Placeholder(%d) = %q, want %q", tt.position, got, tt.want)
		}
	}
	if d.SupportsLastInsertID() {
		t.Error("SupportsLastInsertID() = true, want false")
	}
	if got := d.ReturningClause("id"); got != " RETURNING id" {
		t.Errorf("ReturningClause(id) = %q, want %q", got, " RETURNING id")
	}
	if got := d.AutoIncrementKey(); got != "BIGSERIAL PRIMARY KEY" {
		t.Errorf("AutoIncrementKey() = %q", got)
	}
	if got := d.TimestampType(); got != "TIMESTAMPTZ" {
		t.Errorf("TimestampType() = %q, want TIMESTAMPTZ", got)
	}
	if stmts := d.InitStatements(); len(stmts) != 0 {
		t.Errorf("InitStatements() = %v, want none", stmts)
	}
}

func TestPostgresDialect_IsDuplicateKeyError(t *testing.T) {
	d := &PostgresDialect{}
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("some random error"), false},
		{errors.New("duplicate key value violates unique constraint"), true},
		{errors.New("ERROR: duplicate key value (SQLSTATE 23505)"), true},
		{errors.New("pq: unique constraint violation on attempts_run_id_number_key"), true},
		{errors.New("foreign key constraint"), false},
	}
	for _, tt := range tests {
		if got := d.IsDuplicateKeyError(tt.err); got != tt.want {
			t.Errorf("IsDuplicateKeyError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

// =============================================================================
// QueryBuilder Tests
// =============================================================================

func TestQueryBuilder_Build_SQLite(t *testing.T) {
	qb := NewQueryBuilder(&SQLiteDialect{})
	tests := []string{
		"SELECT * FROM runs",
		"SELECT * FROM runs WHERE id = ?",
		"INSERT INTO attempts (run_id, number) VALUES (?, ?)",
	}
	for _, q := range tests {
		if got := qb.Build(q); got != q {
			t.Errorf("Build(%q) = %q, want unchanged", q, got)
		}
	}
}

func TestQueryBuilder_Build_Postgres(t *testing.T) {
	qb := NewQueryBuilder(&PostgresDialect{})
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"SELECT * FROM runs ORDER BY started_at", "SELECT * FROM runs ORDER BY started_at"},
		{"SELECT * FROM runs WHERE id = ?", "SELECT * FROM runs WHERE id = $1"},
		{"SELECT * FROM runs WHERE template = ? AND outcome = ?", "SELECT * FROM runs WHERE template = $1 AND outcome = $2"},
		{"UPDATE runs SET outcome = ? WHERE id = ?", "UPDATE runs SET outcome = $1 WHERE id = $2"},
		{"SELECT * FROM runs WHERE outcome = 'why?' AND id = ?", "SELECT * FROM runs WHERE outcome = 'why?' AND id = $1"},
	}
	for _, tt := range tests {
		if got := qb.Build(tt.input); got != tt.want {
			t.Errorf("Build(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestQueryBuilder_Build_ManyPlaceholders(t *testing.T) {
	qb := NewQueryBuilder(&PostgresDialect{})
	input := "INSERT INTO t VALUES (" + strings.Repeat("?, ", 14) + "?)"
	want := "INSERT INTO t VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)"
	if got := qb.Build(input); got != want {
		t.Errorf("Build with 15 placeholders failed:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestQueryBuilder_BuildWithReturning(t *testing.T) {
	query := "INSERT INTO attempts (run_id) VALUES (?)"
	if got := NewQueryBuilder(&SQLiteDialect{}).BuildWithReturning(query, "id"); got != query {
		t.Errorf("SQLite BuildWithReturning() = %q, want %q", got, query)
	}
	want := "INSERT INTO attempts (run_id) VALUES ($1) RETURNING id"
	if got := NewQueryBuilder(&PostgresDialect{}).BuildWithReturning(query, "id"); got != want {
		t.Errorf("Postgres BuildWithReturning() = %q, want %q", got, want)
	}
}

// =============================================================================
// Config Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	path := "/path/to/ledger.db"
	cfg := DefaultConfig(path)

	if cfg.Driver != "sqlite" {
		t.Errorf("Driver = %q, want %q", cfg.Driver, "sqlite")
	}
	if cfg.SQLitePath != path {
		t.Errorf("SQLitePath = %q, want %q", cfg.SQLitePath, path)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %d, want 5432", cfg.Postgres.Port)
	}
}

func TestDefaultPostgresConfig(t *testing.T) {
	cfg := DefaultPostgresConfig()

	if cfg.Host != "localhost" {
		t.Errorf("Host = %q, want %q", cfg.Host, "localhost")
	}
	if cfg.SSLMode != "disable" {
		t.Errorf("SSLMode = %q, want %q", cfg.SSLMode, "disable")
	}
	if cfg.MaxOpenConns != 25 || cfg.MaxIdleConns != 5 {
		t.Errorf("pool = %d/%d, want 25/5", cfg.MaxOpenConns, cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("ConnMaxLifetime = %v, want %v", cfg.ConnMaxLifetime, 5*time.Minute)
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	tests := []struct {
		cfg  PostgresConfig
		want string
	}{
		{
			PostgresConfig{Host: "db.example.com", Port: 5433, User: "tilegen", Password: "secret", Database: "runs", SSLMode: "require"},
			"host=db.example.com port=5433 dbname=runs sslmode=require user=tilegen password=secret",
		},
		{
			PostgresConfig{Host: "localhost", Port: 5432, Database: "runs"},
			"host=localhost port=5432 dbname=runs sslmode=disable",
		},
	}
	for _, tt := range tests {
		if got := tt.cfg.DSN(); got != tt.want {
			t.Errorf("DSN() = %q, want %q", got, tt.want)
		}
	}
}
