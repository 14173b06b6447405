package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "vecgen.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(id string) Run {
	return Run{
		ID:           id,
		CreatedAt:    time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		SequenceHash: "deadbeef",
		VectorSize:   32,
		CycleCount:   3,
		Sequence:     []byte(`{"sequence":[{"event":"initial","value":0}],"vector_size":32}`),
		Values:       []uint64{0, 1, 3},
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecgen.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	// Re-opening applies the schema again without error.
	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestWriteReadRun_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := testRun(NewRunID())
	require.NoError(t, s.WriteRun(ctx, want))

	got, err := s.ReadRun(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, want.SequenceHash, got.SequenceHash)
	assert.Equal(t, want.VectorSize, got.VectorSize)
	assert.Equal(t, want.CycleCount, got.CycleCount)
	assert.Equal(t, want.Sequence, got.Sequence)
	assert.Equal(t, want.Values, got.Values)
}

func TestWriteRun_DuplicateIDIgnored(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := testRun(NewRunID())
	require.NoError(t, s.WriteRun(ctx, run))

	// Second insert with the same ID is a no-op, not an error.
	altered := run
	altered.CycleCount = 99
	require.NoError(t, s.WriteRun(ctx, altered))

	got, err := s.ReadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CycleCount)
}

func TestWriteRun_DefaultsCreatedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := testRun(NewRunID())
	run.CreatedAt = time.Time{}
	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, s.WriteRun(ctx, run))

	got, err := s.ReadRun(ctx, run.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.After(before))
}

func TestReadRun_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.ReadRun(context.Background(), "no-such-run")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// UUIDv7 IDs are time-ordered, so insertion order is ID order.
	var ids []string
	for i := 0; i < 3; i++ {
		run := testRun(NewRunID())
		run.CycleCount = i
		require.NoError(t, s.WriteRun(ctx, run))
		ids = append(ids, run.ID)
		time.Sleep(2 * time.Millisecond)
	}

	summaries, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, ids[2], summaries[0].ID)
	assert.Equal(t, ids[1], summaries[1].ID)
	assert.Equal(t, ids[0], summaries[2].ID)
	assert.Equal(t, 2, summaries[0].CycleCount)
}

func TestListRuns_Empty(t *testing.T) {
	s := openTestStore(t)

	summaries, err := s.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestNewRunID_Ordered(t *testing.T) {
	a := NewRunID()
	time.Sleep(2 * time.Millisecond)
	b := NewRunID()
	assert.Less(t, a, b)
}

func TestMarshalTrace_RoundTrip(t *testing.T) {
	values := []uint64{0, 5, ^uint64(0)}
	blob, err := marshalTrace(values)
	require.NoError(t, err)

	got, err := unmarshalTrace(blob)
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestUnmarshalTrace_RejectsNonList(t *testing.T) {
	_, err := unmarshalTrace([]byte{'i', 0, 0, 0, 0, 0, 0, 0, 0})
	assert.ErrorContains(t, err, "expected a list")
}
