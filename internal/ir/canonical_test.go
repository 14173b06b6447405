package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSequence() []Event {
	return []Event{
		Initial{Value: 5},
		Set{Mask: 1, Time: Relative{Delta: 2}},
		Clear{Mask: 3, Time: Absolute{Cycle: 7}},
		Toggle{Mask: 0xff, Time: Relative{Delta: 1}},
	}
}

func TestMarshalCanonical_Shape(t *testing.T) {
	data, err := MarshalCanonical(sampleSequence(), 32)
	require.NoError(t, err)

	// Canonical output is still plain JSON.
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, float64(32), doc["vector_size"])

	seq, ok := doc["sequence"].([]any)
	require.True(t, ok)
	require.Len(t, seq, 4)

	first := seq[0].(map[string]any)
	assert.Equal(t, "initial", first["event"])
	assert.Equal(t, float64(5), first["value"])

	second := seq[1].(map[string]any)
	assert.Equal(t, "set", second["event"])
	tm := second["time"].(map[string]any)
	assert.Equal(t, "rel", tm["mode"])
	assert.Equal(t, float64(2), tm["delta"])
}

func TestMarshalCanonical_KeysSorted(t *testing.T) {
	data, err := MarshalCanonical([]Event{Initial{Value: 1}}, 32)
	require.NoError(t, err)

	// Top level: "sequence" before "vector_size"; event objects:
	// "event" before "value".
	assert.Equal(t, `{"sequence":[{"event":"initial","value":1}],"vector_size":32}`, string(data))
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	first, err := MarshalCanonical(sampleSequence(), 32)
	require.NoError(t, err)
	second, err := MarshalCanonical(sampleSequence(), 32)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSequenceHash_StableAndDiscriminating(t *testing.T) {
	h1, err := SequenceHash(sampleSequence(), 32)
	require.NoError(t, err)
	h2, err := SequenceHash(sampleSequence(), 32)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64, "hex-encoded SHA-256")

	// Any change to the sequence or the advisory width changes the hash.
	widened, err := SequenceHash(sampleSequence(), 64)
	require.NoError(t, err)
	assert.NotEqual(t, h1, widened)

	mutated := sampleSequence()
	mutated[1] = Set{Mask: 2, Time: Relative{Delta: 2}}
	changed, err := SequenceHash(mutated, 32)
	require.NoError(t, err)
	assert.NotEqual(t, h1, changed)
}

func TestEventKind_ClosedSet(t *testing.T) {
	assert.Equal(t, KindInitial, Initial{}.Kind())
	assert.Equal(t, KindSet, Set{}.Kind())
	assert.Equal(t, KindClear, Clear{}.Kind())
	assert.Equal(t, KindToggle, Toggle{}.Kind())
	assert.Len(t, EventKinds, 4)
}
