package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Recorder persists one run. It satisfies the runner's Recorder interface.
type Recorder struct {
	db     *DB
	filter string
	runID  int64
}

// NewRecorder creates a Recorder that will attribute its run to filterSpec
// (the raw filter string, recorded for later inspection).
func NewRecorder(db *DB, filterSpec string) *Recorder {
	return &Recorder{db: db, filter: filterSpec}
}

// BeginRun inserts the run row and remembers its id for the result rows.
func (r *Recorder) BeginRun() error {
	result, err := r.db.db.Exec(
		`INSERT INTO runs (guid, filter, started_at) VALUES (?, ?, ?)`,
		uuid.NewString(), r.filter, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	r.runID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}
	return nil
}

// RecordTest inserts one result row for an executed (admitted) test.
func (r *Recorder) RecordTest(id, suite string, passed bool, elapsed time.Duration, message string) error {
	_, err := r.db.db.Exec(
		`INSERT INTO results (run_id, identifier, suite, passed, elapsed_ms, message)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.runID, id, suite, passed, float64(elapsed)/float64(time.Millisecond), message,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// EndRun stamps the run row with its finish time and tallies.
func (r *Recorder) EndRun(run, passed, ignored int) error {
	_, err := r.db.db.Exec(
		`UPDATE runs SET finished_at = ?, tests_run = ?, tests_passed = ?, tests_ignored = ?
		 WHERE id = ?`,
		time.Now().Unix(), run, passed, ignored, r.runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RunSummary is one row of `xm history` output.
type RunSummary struct {
	GUID      string
	Filter    string
	StartedAt time.Time
	Run       int
	Passed    int
	Ignored   int
}

// RecentRuns returns up to limit most recent runs, newest first.
func (d *DB) RecentRuns(limit int) ([]RunSummary, error) {
	rows, err := d.db.Query(
		`SELECT guid, filter, started_at, tests_run, tests_passed, tests_ignored
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		var startedAt int64
		if err := rows.Scan(&s.GUID, &s.Filter, &startedAt, &s.Run, &s.Passed, &s.Ignored); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		s.StartedAt = time.Unix(startedAt, 0)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// FailuresFor returns the identifiers and messages of the failed tests of
// the run with the given GUID, in execution order.
func (d *DB) FailuresFor(guid string) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT r.identifier || ': ' || r.message
		 FROM results r JOIN runs ON runs.id = r.run_id
		 WHERE runs.guid = ? AND r.passed = 0 ORDER BY r.id`, guid)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	var failures []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		failures = append(failures, f)
	}
	return failures, rows.Err()
}
