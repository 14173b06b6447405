package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRunNotFound is returned when a run ID does not exist in the
// journal.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is the listing view of a run: everything except the
// sequence and trace payloads.
type RunSummary struct {
	ID           string
	CreatedAt    time.Time
	SequenceHash string
	VectorSize   int
	CycleCount   int
}

// ReadRun retrieves a full run record by ID.
// Returns ErrRunNotFound if no such run exists.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	var (
		run       Run
		createdAt string
		sequence  string
		blob      []byte
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, sequence_hash, vector_size, cycle_count, sequence, trace
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &createdAt, &run.SequenceHash, &run.VectorSize, &run.CycleCount, &sequence, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}

	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: parse created_at: %w", id, err)
	}

	run.Sequence = []byte(sequence)
	run.Values, err = unmarshalTrace(blob)
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}

	return run, nil
}

// ListRuns returns summaries of all recorded runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, sequence_hash, vector_size, cycle_count
		FROM runs ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var (
			summary   RunSummary
			createdAt string
		)
		if err := rows.Scan(&summary.ID, &createdAt, &summary.SequenceHash, &summary.VectorSize, &summary.CycleCount); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		summary.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("list runs: parse created_at: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return summaries, nil
}
