package store

import (
	"context"
	"fmt"
	"time"
)

// WriteRun inserts a run record into the journal.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are
// silently ignored. Other constraint violations still return errors.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	blob, err := marshalTrace(run.Values)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_at, sequence_hash, vector_size, cycle_count, sequence, trace)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		createdAt.Format(time.RFC3339Nano),
		run.SequenceHash,
		run.VectorSize,
		run.CycleCount,
		string(run.Sequence),
		blob,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	return nil
}
