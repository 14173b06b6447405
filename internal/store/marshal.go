package store

import (
	"fmt"

	"github.com/hdlkit/vecgen/internal/pack"
)

// marshalTrace serializes trace values as a packed homogeneous list of
// integers.
func marshalTrace(values []uint64) ([]byte, error) {
	blob, err := pack.Pack(values)
	if err != nil {
		return nil, fmt.Errorf("marshal trace: %w", err)
	}
	return blob, nil
}

// unmarshalTrace reads a packed trace blob back into values.
func unmarshalTrace(blob []byte) ([]uint64, error) {
	v, err := pack.Unpack(blob)
	if err != nil {
		return nil, fmt.Errorf("unmarshal trace: %w", err)
	}

	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("unmarshal trace: expected a list, got %T", v)
	}

	values := make([]uint64, len(items))
	for i, item := range items {
		u, ok := item.(uint64)
		if !ok {
			return nil, fmt.Errorf("unmarshal trace: item %d: expected an integer, got %T", i, item)
		}
		values[i] = u
	}
	return values, nil
}
