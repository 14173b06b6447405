// Package engine implements the event-to-vector expansion engine.
//
// The engine consumes an ordered, already-validated event sequence and
// produces the full per-cycle stimulus trace: one register value per
// discrete time unit, suitable for feeding a hardware simulator.
//
// ARCHITECTURE:
//
// Single Pass, Pure Fold:
// Expansion is a single in-order pass over the event list, threading
// three pieces of running state through each event:
//   - the 64-bit state register
//   - the cycle clock (monotonically non-decreasing, one tick per
//     emitted value, held cycles included)
//   - the append-only output of emitted values
//
// There are no suspension points, no I/O, and no shared mutable state.
// Given the same inputs the engine always produces the same trace, so
// callers may run independent expansions in parallel with no
// coordination.
//
// Time resolution:
// Mutation events address time in one of two competing modes, resolved
// against the running clock. Relative times hold the current state for
// delta-1 cycles; absolute times hold until the clock reaches the
// target, and reject targets already in the past.
//
// Error model:
// The two invariant violations (Initial ordering, absolute time in the
// past) are terminal. Expansion stops at the first violation and
// returns no trace - there is no recovery and no partial output.
//
// The engine does not validate event semantics beyond those two
// invariants; it trusts the compiler to hand it well-formed events.
// Bit widths are likewise not enforced here: the advisory vector size
// is formatting metadata, and register values are never masked to it.
package engine
