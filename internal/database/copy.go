package database

import (
	"errors"
	"fmt"
)

// CopyStats counts what CopyLedger moved.
type CopyStats struct {
	Runs     int
	Skipped  int
	Attempts int
}

// CopyLedger copies every run and its attempts from src to dst. Runs already
// present in dst are skipped, so a copy can be resumed. With dryRun set nothing
// is written and the stats report what would be copied.
func CopyLedger(src, dst *Database, dryRun bool) (CopyStats, error) {
	var stats CopyStats

	runs, err := src.ListRuns(0)
	if err != nil {
		return stats, err
	}

	for _, r := range runs {
		if _, err := dst.GetRun(r.ID); err == nil {
			stats.Skipped++
			continue
		} else if !errors.Is(err, ErrRunNotFound) {
			return stats, err
		}

		attempts, err := src.Attempts(r.ID)
		if err != nil {
			return stats, err
		}
		if dryRun {
			stats.Runs++
			stats.Attempts += len(attempts)
			continue
		}

		if err := dst.SaveRun(r); err != nil {
			return stats, fmt.Errorf("run %s: %w", r.ID, err)
		}
		for i := range attempts {
			a := attempts[i]
			if _, err := dst.RecordAttempt(&a); err != nil {
				return stats, fmt.Errorf("run %s attempt %d: %w", r.ID, a.Number, err)
			}
			stats.Attempts++
		}
		stats.Runs++
	}
	return stats, nil
}
