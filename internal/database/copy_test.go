package database

import (
	"testing"
)

func seedLedger(t *testing.T, db *Database, template string, attempts int) *Run {
	t.Helper()
	run := NewRun(template, 4, 4, 2, 9)
	run.Attempts = attempts
	run.Finish("solved")
	if err := db.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}
	for n := 1; n <= attempts; n++ {
		state := "contradiction"
		if n == attempts {
			state = "solved"
		}
		rec := AttemptRecord{RunID: run.ID, Number: n, Seed: 9 + int64(n-1)*1000, State: state}
		if _, err := db.RecordAttempt(&rec); err != nil {
			t.Fatalf("RecordAttempt() error: %v", err)
		}
	}
	return run
}

func TestCopyLedger(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestDB(t)

	first := seedLedger(t, src, "road", 3)
	seedLedger(t, src, "meadow", 1)

	stats, err := CopyLedger(src, dst, false)
	if err != nil {
		t.Fatalf("CopyLedger() error: %v", err)
	}
	if stats.Runs != 2 || stats.Attempts != 4 || stats.Skipped != 0 {
		t.Errorf("stats = %+v, want 2 runs 4 attempts", stats)
	}

	got, err := dst.GetRun(first.ID)
	if err != nil {
		t.Fatalf("GetRun() in destination: %v", err)
	}
	if got.Template != "road" || got.Outcome != "solved" || got.Attempts != 3 {
		t.Errorf("copied run = %+v", got)
	}
	attempts, err := dst.Attempts(first.ID)
	if err != nil {
		t.Fatalf("Attempts() error: %v", err)
	}
	if len(attempts) != 3 || attempts[2].Seed != 2009 {
		t.Errorf("copied attempts = %+v", attempts)
	}

	// A second pass finds everything already there.
	stats, err = CopyLedger(src, dst, false)
	if err != nil {
		t.Fatalf("second CopyLedger() error: %v", err)
	}
	if stats.Runs != 0 || stats.Skipped != 2 {
		t.Errorf("second pass stats = %+v", stats)
	}
}

func TestCopyLedgerDryRun(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestDB(t)
	seedLedger(t, src, "road", 2)

	stats, err := CopyLedger(src, dst, true)
	if err != nil {
		t.Fatalf("CopyLedger() error: %v", err)
	}
	if stats.Runs != 1 || stats.Attempts != 2 {
		t.Errorf("dry run stats = %+v", stats)
	}
	runs, err := dst.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns() error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("dry run wrote %d runs", len(runs))
	}
}
