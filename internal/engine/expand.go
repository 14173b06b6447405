package engine

import (
	"github.com/hdlkit/vecgen/internal/ir"
)

// Expand interprets an ordered event sequence and expands it into the
// full per-cycle trace.
//
// The first event must be Initial and no other event may be; absolute
// time targets must not be before the running clock. Violating either
// invariant returns an ExpandError and no trace - output is
// all-or-nothing.
//
// vectorSize is advisory metadata carried on the trace for formatting;
// it never masks or truncates register values during expansion.
func Expand(events []ir.Event, vectorSize int) (*Trace, error) {
	var (
		state uint64
		clock = NewClock()
		out   []uint64
	)

	emit := func(v uint64) {
		out = append(out, v)
		clock.Advance()
	}

	for idx, ev := range events {
		if idx == 0 && ev.Kind() != ir.KindInitial {
			return nil, NewSequenceOrderError(idx, "first event must be of initial type")
		}

		switch e := ev.(type) {
		case ir.Initial:
			if idx > 0 {
				return nil, NewSequenceOrderError(idx, "initial event must be first in sequence")
			}
			state = e.Value
			emit(state)

		case ir.Set:
			if err := hold(emit, clock, state, idx, e.Time); err != nil {
				return nil, err
			}
			state |= e.Mask
			emit(state)

		case ir.Clear:
			if err := hold(emit, clock, state, idx, e.Time); err != nil {
				return nil, err
			}
			state &^= e.Mask
			emit(state)

		case ir.Toggle:
			if err := hold(emit, clock, state, idx, e.Time); err != nil {
				return nil, err
			}
			state ^= e.Mask
			emit(state)
		}
	}

	return &Trace{Values: out, VectorSize: vectorSize}, nil
}

// hold emits copies of the pre-mutation state until the mutation's time
// arrives. A relative delta of d holds for d-1 cycles; an absolute
// target of t holds for t-clock cycles, where t equal to the clock is a
// valid zero-hold and t before the clock is a TimeOrderError.
func hold(emit func(uint64), clock *Clock, state uint64, idx int, t ir.Time) error {
	var count uint64
	switch ts := t.(type) {
	case ir.Relative:
		// Delta is validated to be >= 1; guard the subtraction anyway
		// so a zero delta degrades to a zero-hold instead of wrapping.
		if ts.Delta > 0 {
			count = ts.Delta - 1
		}
	case ir.Absolute:
		if ts.Cycle < clock.Current() {
			return NewTimeOrderError(idx, ts.Cycle, clock.Current())
		}
		count = ts.Cycle - clock.Current()
	}

	for range count {
		emit(state)
	}
	return nil
}
