package store

import (
	"time"

	"github.com/google/uuid"
)

// Run is one recorded expansion.
type Run struct {
	// ID is a UUIDv7, so lexicographic order is creation order.
	ID string

	// CreatedAt is the wall-clock time the run was recorded. It is
	// informational only; ordering uses the UUIDv7 ID.
	CreatedAt time.Time

	// SequenceHash is the content-addressed identity of the event
	// sequence (ir.SequenceHash).
	SequenceHash string

	// VectorSize is the advisory vector width the run was generated
	// with.
	VectorSize int

	// CycleCount is the number of emitted cycles.
	CycleCount int

	// Sequence is the canonical JSON of the event sequence, exactly as
	// hashed. Re-compilable into events for verification.
	Sequence []byte

	// Values holds the emitted trace, one value per cycle.
	Values []uint64
}

// NewRunID generates a fresh UUIDv7 run identifier.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}
