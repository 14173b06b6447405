package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdlkit/vecgen/internal/testutil"
)

// =============================================================================
// End-to-End Expansion Tests
// =============================================================================

func TestExpand_InitialOnly(t *testing.T) {
	trace, err := Expand(testutil.Seq(testutil.Initial(0x2a)), 32)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0x2a}, trace.Values)
	assert.Equal(t, uint64(1), trace.Cycles())
	assert.Equal(t, 32, trace.VectorSize)
}

func TestExpand_SetRelative(t *testing.T) {
	// Cycle 0: initial; cycle 1: held copy; cycle 2: mutated.
	trace, err := Expand(testutil.Seq(
		testutil.Initial(0),
		testutil.SetRel(1, 2),
	), 32)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 0, 1}, trace.Values)
}

func TestExpand_ClearAbsoluteZeroHold(t *testing.T) {
	// The clock is 1 after the initial cycle, so an absolute target of
	// 1 is the zero-hold boundary: mutate on the very next cycle.
	trace, err := Expand(testutil.Seq(
		testutil.Initial(5),
		testutil.ClearAbs(1, 1),
	), 32)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 4}, trace.Values)
}

func TestExpand_SetAbsoluteHolds(t *testing.T) {
	trace, err := Expand(testutil.Seq(
		testutil.Initial(0),
		testutil.SetAbs(2, 3),
	), 32)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 0, 0, 2}, trace.Values)
}

func TestExpand_AbsoluteTargetInPast(t *testing.T) {
	// The second toggle lands with the clock at 2; an absolute target
	// of 0 is in the past and must be rejected at that event's index.
	trace, err := Expand(testutil.Seq(
		testutil.Initial(0),
		testutil.ToggleAbs(1, 1),
		testutil.ToggleAbs(1, 0),
	), 32)
	require.Error(t, err)
	assert.Nil(t, trace, "no partial trace on error")
	assert.True(t, IsTimeOrderError(err))

	var ee *ExpandError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ErrCodeTimeOrder, ee.Code)
	assert.Equal(t, 2, ee.EventIndex)
}

func TestExpand_MixedModes(t *testing.T) {
	trace, err := Expand(testutil.Seq(
		testutil.Initial(0x0f),
		testutil.ClearRel(0x03, 1),
		testutil.SetAbs(0xf0, 4),
		testutil.ToggleRel(0xff, 3),
	), 16)
	require.NoError(t, err)
	// cycle 0: 0f, cycle 1: 0c, cycles 2-3: held 0c, cycle 4: fc,
	// cycles 5-6: held fc, cycle 7: 03.
	assert.Equal(t, []uint64{0x0f, 0x0c, 0x0c, 0x0c, 0xfc, 0xfc, 0xfc, 0x03}, trace.Values)
}

// =============================================================================
// Ordering Invariants
// =============================================================================

func TestExpand_FirstEventMustBeInitial(t *testing.T) {
	trace, err := Expand(testutil.Seq(testutil.SetRel(1, 1)), 32)
	require.Error(t, err)
	assert.Nil(t, trace)
	assert.True(t, IsSequenceOrderError(err))

	var ee *ExpandError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 0, ee.EventIndex)
}

func TestExpand_DuplicateInitialRejected(t *testing.T) {
	trace, err := Expand(testutil.Seq(
		testutil.Initial(1),
		testutil.SetRel(2, 1),
		testutil.Initial(3),
	), 32)
	require.Error(t, err)
	assert.Nil(t, trace)
	assert.True(t, IsSequenceOrderError(err))

	var ee *ExpandError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 2, ee.EventIndex, "error reports the duplicate's index")
}

// =============================================================================
// Hold-Count Invariants
// =============================================================================

func TestExpand_RelativeHoldCounts(t *testing.T) {
	// A delta of d holds the pre-mutation state for exactly d-1 cycles.
	for _, delta := range []uint64{1, 2, 3, 10} {
		trace, err := Expand(testutil.Seq(
			testutil.Initial(0),
			testutil.SetRel(1, delta),
		), 32)
		require.NoError(t, err)
		require.Len(t, trace.Values, int(delta)+1)
		for i := 0; i < int(delta); i++ {
			assert.Equal(t, uint64(0), trace.Values[i], "delta %d cycle %d", delta, i)
		}
		assert.Equal(t, uint64(1), trace.Values[delta])
	}
}

func TestExpand_AbsoluteBoundary(t *testing.T) {
	// t == clock succeeds with zero held cycles; t == clock-1 fails.
	trace, err := Expand(testutil.Seq(
		testutil.Initial(7),
		testutil.SetAbs(8, 1),
	), 32)
	require.NoError(t, err)
	assert.Equal(t, []uint64{7, 0xf}, trace.Values)

	_, err = Expand(testutil.Seq(
		testutil.Initial(7),
		testutil.SetAbs(8, 0),
	), 32)
	require.Error(t, err)
	assert.True(t, IsTimeOrderError(err))
}

func TestExpand_AbsoluteHoldCounts(t *testing.T) {
	// With the clock at c, a target of t appends exactly t-c held
	// copies before the mutated value.
	for _, target := range []uint64{1, 2, 5, 20} {
		trace, err := Expand(testutil.Seq(
			testutil.Initial(3),
			testutil.ToggleAbs(1, target),
		), 32)
		require.NoError(t, err)
		require.Len(t, trace.Values, int(target)+1)
		for i := 1; i < int(target); i++ {
			assert.Equal(t, uint64(3), trace.Values[i])
		}
		assert.Equal(t, uint64(2), trace.Values[target])
	}
}

func TestExpand_OutputLengthEqualsElapsedCycles(t *testing.T) {
	trace, err := Expand(testutil.Seq(
		testutil.Initial(9),
		testutil.SetRel(4, 5),
		testutil.ClearAbs(1, 10),
		testutil.ToggleRel(2, 1),
	), 32)
	require.NoError(t, err)
	// initial(1) + rel 5 (5) + abs 10 holds to cycle 10 then mutates
	// (5) + rel 1 (1) = 12 cycles.
	assert.Equal(t, uint64(12), trace.Cycles())
	assert.Equal(t, uint64(9), trace.Values[0], "first value is the initial value")
}

// =============================================================================
// Bitwise Mutation Properties
// =============================================================================

func TestExpand_BitwiseOperators(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	masks := []uint64{0, ^uint64(0)}
	states := []uint64{0, ^uint64(0)}
	for i := 0; i < 50; i++ {
		masks = append(masks, rng.Uint64())
		states = append(states, rng.Uint64())
	}

	for _, state := range states {
		for _, mask := range masks {
			set, err := Expand(testutil.Seq(testutil.Initial(state), testutil.SetRel(mask, 1)), 64)
			require.NoError(t, err)
			assert.Equal(t, state|mask, set.Values[1])

			cleared, err := Expand(testutil.Seq(testutil.Initial(state), testutil.ClearRel(mask, 1)), 64)
			require.NoError(t, err)
			assert.Equal(t, state&^mask, cleared.Values[1])

			toggle, err := Expand(testutil.Seq(testutil.Initial(state), testutil.ToggleRel(mask, 1)), 64)
			require.NoError(t, err)
			assert.Equal(t, state^mask, toggle.Values[1])
		}
	}
}

func TestExpand_NoMaskingToVectorSize(t *testing.T) {
	// The vector size is advisory metadata: values are never truncated
	// to it during expansion.
	trace, err := Expand(testutil.Seq(
		testutil.Initial(0xffff),
		testutil.SetRel(0xf0000, 1),
	), 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xfffff), trace.Values[1])
	assert.Equal(t, 8, trace.VectorSize)
}

func TestExpand_Deterministic(t *testing.T) {
	events := testutil.Seq(
		testutil.Initial(1),
		testutil.ToggleRel(0xff, 4),
		testutil.SetAbs(0x100, 9),
	)

	first, err := Expand(events, 32)
	require.NoError(t, err)
	second, err := Expand(events, 32)
	require.NoError(t, err)
	assert.Equal(t, first.Values, second.Values)
}

func TestExpand_EmptySequence(t *testing.T) {
	// The validator guarantees a non-empty sequence; an empty one
	// degrades to an empty trace rather than a panic.
	trace, err := Expand(nil, 32)
	require.NoError(t, err)
	assert.Empty(t, trace.Values)
}

func TestExpand_ErrorMessageCarriesIndex(t *testing.T) {
	_, err := Expand(testutil.Seq(
		testutil.Initial(0),
		testutil.SetAbs(1, 5),
		testutil.SetAbs(1, 2),
	), 32)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in event 2")
	assert.Contains(t, err.Error(), "absolute time is in the past")
}

// Guards against conflating the two error kinds.
func TestExpandErrors_Distinct(t *testing.T) {
	_, seqErr := Expand(testutil.Seq(testutil.ToggleRel(1, 1)), 32)
	_, timeErr := Expand(testutil.Seq(testutil.Initial(0), testutil.SetAbs(1, 0)), 32)

	assert.True(t, IsSequenceOrderError(seqErr))
	assert.False(t, IsTimeOrderError(seqErr))
	assert.True(t, IsTimeOrderError(timeErr))
	assert.False(t, IsSequenceOrderError(timeErr))
}
