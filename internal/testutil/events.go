// Package testutil provides shared helpers for building event
// sequences in tests.
package testutil

import "github.com/hdlkit/vecgen/internal/ir"

// Seq builds an event sequence from variadic events, keeping test
// tables compact.
func Seq(events ...ir.Event) []ir.Event {
	return events
}

// Initial builds an initial event.
func Initial(value uint64) ir.Event {
	return ir.Initial{Value: value}
}

// SetRel builds a set event with a relative time.
func SetRel(mask, delta uint64) ir.Event {
	return ir.Set{Mask: mask, Time: ir.Relative{Delta: delta}}
}

// SetAbs builds a set event with an absolute time.
func SetAbs(mask, cycle uint64) ir.Event {
	return ir.Set{Mask: mask, Time: ir.Absolute{Cycle: cycle}}
}

// ClearRel builds a clear event with a relative time.
func ClearRel(mask, delta uint64) ir.Event {
	return ir.Clear{Mask: mask, Time: ir.Relative{Delta: delta}}
}

// ClearAbs builds a clear event with an absolute time.
func ClearAbs(mask, cycle uint64) ir.Event {
	return ir.Clear{Mask: mask, Time: ir.Absolute{Cycle: cycle}}
}

// ToggleRel builds a toggle event with a relative time.
func ToggleRel(mask, delta uint64) ir.Event {
	return ir.Toggle{Mask: mask, Time: ir.Relative{Delta: delta}}
}

// ToggleAbs builds a toggle event with an absolute time.
func ToggleAbs(mask, cycle uint64) ir.Event {
	return ir.Toggle{Mask: mask, Time: ir.Absolute{Cycle: cycle}}
}
