package store

import (
	"database/sql"
	"fmt"
	"time"

	"stockfeed/internal/upload"
)

// RunRecord is one pipeline run as stored in the log.
type RunRecord struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Status      string     `json:"status"`
	MergedRows  int        `json:"merged_rows"`
	TuleroRows  int        `json:"tulero_rows"`
	Tyre24Rows  int        `json:"tyre24_rows"`
	ErrorMsg    string     `json:"error_message,omitempty"`
}

// UploadRecord is one upload attempt belonging to a run.
type UploadRecord struct {
	ID         int64     `json:"id"`
	RunID      string    `json:"run_id"`
	Target     string    `json:"target"`
	Filename   string    `json:"filename"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// RunSummary carries the row counts of a finished run.
type RunSummary struct {
	MergedRows int
	TuleroRows int
	Tyre24Rows int
}

// CreateRun inserts a new run in 'running' state.
func (s *Store) CreateRun(id string, startedAt time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, started_at, status)
		VALUES (?, ?, 'running')
	`, id, startedAt)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// FinishRun marks a run as done and records its row counts.
func (s *Store) FinishRun(id string, sum RunSummary) error {
	_, err := s.db.Exec(`
		UPDATE runs SET
			status = 'done',
			merged_rows = ?,
			tulero_rows = ?,
			tyre24_rows = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, sum.MergedRows, sum.TuleroRows, sum.Tyre24Rows, id)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// FailRun marks a run as failed with its error message.
func (s *Store) FailRun(id, msg string) error {
	_, err := s.db.Exec(`
		UPDATE runs SET
			status = 'error',
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, msg, id)
	if err != nil {
		return fmt.Errorf("fail run: %w", err)
	}
	return nil
}

// RecordUpload stores one upload attempt for a run.
func (s *Store) RecordUpload(runID, target string, res upload.Result) error {
	_, err := s.db.Exec(`
		INSERT INTO uploads (run_id, target, filename, error, duration_ms)
		VALUES (?, ?, ?, ?, ?)
	`, runID, target, res.File, res.Error, res.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("record upload: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, started_at, completed_at, status,
		       merged_rows, tulero_rows, tyre24_rows, error_message
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRun returns one run and its upload attempts.
func (s *Store) GetRun(id string) (*RunRecord, []UploadRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, started_at, completed_at, status,
		       merged_rows, tulero_rows, tyre24_rows, error_message
		FROM runs
		WHERE id = ?
	`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get run: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, run_id, target, filename, error, duration_ms, created_at
		FROM uploads
		WHERE run_id = ?
		ORDER BY id
	`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get run uploads: %w", err)
	}
	defer rows.Close()

	var ups []UploadRecord
	for rows.Next() {
		var u UploadRecord
		if err := rows.Scan(&u.ID, &u.RunID, &u.Target, &u.Filename, &u.Error, &u.DurationMS, &u.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("scan upload: %w", err)
		}
		ups = append(ups, u)
	}
	return &r, ups, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var (
		r         RunRecord
		completed sql.NullTime
	)
	err := row.Scan(&r.ID, &r.StartedAt, &completed, &r.Status,
		&r.MergedRows, &r.TuleroRows, &r.Tyre24Rows, &r.ErrorMsg)
	if err != nil {
		return r, err
	}
	if completed.Valid {
		t := completed.Time
		r.CompletedAt = &t
	}
	return r, nil
}
