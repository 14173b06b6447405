package engine

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Trace is the artifact of a successful expansion: one register value
// per elapsed cycle, in emission order, plus the advisory vector width
// the values should be formatted against.
type Trace struct {
	// Values holds one register value per cycle.
	Values []uint64

	// VectorSize is the nominal bit width of the vector. It is a
	// formatting hint only; Values are never masked to it.
	VectorSize int
}

// Cycles returns the number of elapsed cycles, which always equals the
// number of emitted values.
func (t *Trace) Cycles() uint64 {
	return uint64(len(t.Values))
}

// WriteHex serializes the trace as lowercase hexadecimal, one value per
// line, no 0x prefix. This is the wire format consumed by simulator
// testbenches.
func (t *Trace) WriteHex(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, v := range t.Values {
		bw.WriteString(strconv.FormatUint(v, 16))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}

// ParseHex reads a trace back from its hex line serialization. Blank
// lines are ignored so a trailing newline round-trips cleanly.
func ParseHex(r io.Reader, vectorSize int) (*Trace, error) {
	var values []uint64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseUint(text, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("parse trace: line %d: %q is not a hex value", line, text)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parse trace: %w", err)
	}
	return &Trace{Values: values, VectorSize: vectorSize}, nil
}

// Equal reports whether two traces emitted identical values. The
// advisory vector size does not participate: two runs of the same
// sequence are the same trace regardless of formatting hints.
func (t *Trace) Equal(other *Trace) bool {
	if len(t.Values) != len(other.Values) {
		return false
	}
	for i, v := range t.Values {
		if other.Values[i] != v {
			return false
		}
	}
	return true
}
