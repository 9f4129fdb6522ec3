package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when a run lookup fails.
var ErrRunNotFound = errors.New("run not found")

// ErrAttemptExists is returned when an attempt number is recorded twice for one run.
var ErrAttemptExists = errors.New("attempt already recorded")

// OutcomeRunning marks a run that has not finished.
const OutcomeRunning = "running"

// Run is one invocation of the generator.
type Run struct {
	ID            string
	Template      string
	Width         int
	Depth         int
	Height        int
	Seed          int64
	Attempts      int
	Steps         int
	Outcome       string
	TileSetDigest string
	OutputPath    string
	OutputDigest  string
	OutputBytes   int64
	StartedAt     time.Time
	FinishedAt    *time.Time
}

// AttemptRecord is one solver attempt inside a run.
type AttemptRecord struct {
	ID     int64
	RunID  string
	Number int
	Seed   int64
	Steps  int
	State  string
	Error  string
}

// NewRun returns an unsaved run with a fresh id.
func NewRun(template string, width, depth, height int, seed int64) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Template:  template,
		Width:     width,
		Depth:     depth,
		Height:    height,
		Seed:      seed,
		Outcome:   OutcomeRunning,
		StartedAt: time.Now().UTC(),
	}
}

// Finish stamps the run with its outcome.
func (r *Run) Finish(outcome string) {
	now := time.Now().UTC()
	r.Outcome = outcome
	r.FinishedAt = &now
}

// SaveRun inserts the run or updates it in place.
func (d *Database) SaveRun(r *Run) error {
	if r.ID == "" {
		return errors.New("run id cannot be empty")
	}
	var finished sql.NullTime
	if r.FinishedAt != nil {
		finished = sql.NullTime{Time: *r.FinishedAt, Valid: true}
	}
	_, err := d.db.Exec(d.qb.Build(`
		INSERT INTO runs (id, template, width, depth, height, seed, attempts, steps, outcome,
			tileset_digest, output_path, output_digest, output_bytes, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			attempts = excluded.attempts,
			steps = excluded.steps,
			outcome = excluded.outcome,
			tileset_digest = excluded.tileset_digest,
			output_path = excluded.output_path,
			output_digest = excluded.output_digest,
			output_bytes = excluded.output_bytes,
			finished_at = excluded.finished_at`),
		r.ID, r.Template, r.Width, r.Depth, r.Height, r.Seed, r.Attempts, r.Steps, r.Outcome,
		r.TileSetDigest, r.OutputPath, r.OutputDigest, r.OutputBytes, r.StartedAt, finished)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// RecordAttempt stores one attempt and returns its row id.
func (d *Database) RecordAttempt(a *AttemptRecord) (int64, error) {
	query := d.qb.BuildWithReturning(
		"INSERT INTO attempts (run_id, number, seed, steps, state, error) VALUES (?, ?, ?, ?, ?, ?)",
		"id")
	args := []any{a.RunID, a.Number, a.Seed, a.Steps, a.State, a.Error}

	var id int64
	if d.dialect.SupportsLastInsertID() {
		result, err := d.db.Exec(query, args...)
		if err != nil {
			return 0, d.attemptError(err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to get attempt ID: %w", err)
		}
	} else if err := d.db.QueryRow(query, args...).Scan(&id); err != nil {
		return 0, d.attemptError(err)
	}

	a.ID = id
	return id, nil
}

func (d *Database) attemptError(err error) error {
	if d.dialect.IsDuplicateKeyError(err) {
		return ErrAttemptExists
	}
	return fmt.Errorf("failed to record attempt: %w", err)
}

const runColumns = `id, template, width, depth, height, seed, attempts, steps, outcome,
	tileset_digest, output_path, output_digest, output_bytes, started_at, finished_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		r        Run
		finished sql.NullTime
	)
	err := row.Scan(&r.ID, &r.Template, &r.Width, &r.Depth, &r.Height, &r.Seed, &r.Attempts,
		&r.Steps, &r.Outcome, &r.TileSetDigest, &r.OutputPath, &r.OutputDigest, &r.OutputBytes,
		&r.StartedAt, &finished)
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		t := finished.Time
		r.FinishedAt = &t
	}
	return &r, nil
}

// GetRun loads a run by id.
func (d *Database) GetRun(id string) (*Run, error) {
	row := d.db.QueryRow(d.qb.Build("SELECT "+runColumns+" FROM runs WHERE id = ?"), id)
	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}

// ListRuns returns the newest runs first. A limit <= 0 returns every run.
func (d *Database) ListRuns(limit int) ([]*Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, id"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return d.queryRuns(query, args...)
}

// RunsForTemplate returns every run of the named template, newest first.
func (d *Database) RunsForTemplate(template string) ([]*Run, error) {
	return d.queryRuns("SELECT "+runColumns+" FROM runs WHERE template = ? ORDER BY started_at DESC, id", template)
}

func (d *Database) queryRuns(query string, args ...any) ([]*Run, error) {
	rows, err := d.db.Query(d.qb.Build(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LatestRun returns the newest run of template that ended with outcome.
func (d *Database) LatestRun(template, outcome string) (*Run, error) {
	row := d.db.QueryRow(d.qb.Build(
		"SELECT "+runColumns+" FROM runs WHERE template = ? AND outcome = ? ORDER BY started_at DESC LIMIT 1"),
		template, outcome)
	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}

// Attempts returns the attempts of a run in order.
func (d *Database) Attempts(runID string) ([]AttemptRecord, error) {
	rows, err := d.db.Query(d.qb.Build(
		"SELECT id, run_id, number, seed, steps, state, error FROM attempts WHERE run_id = ? ORDER BY number"),
		runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var a AttemptRecord
		if err := rows.Scan(&a.ID, &a.RunID, &a.Number, &a.Seed, &a.Steps, &a.State, &a.Error); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and its attempts.
func (d *Database) DeleteRun(id string) error {
	result, err := d.db.Exec(d.qb.Build("DELETE FROM runs WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}
