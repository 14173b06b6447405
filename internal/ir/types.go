package ir

// EventKind identifies one of the four event variants.
type EventKind string

const (
	KindInitial EventKind = "initial"
	KindSet     EventKind = "set"
	KindClear   EventKind = "clear"
	KindToggle  EventKind = "toggle"
)

// EventKinds lists all valid kinds in serialization order.
var EventKinds = []EventKind{KindInitial, KindSet, KindClear, KindToggle}

// Event is a sealed interface representing one entry in a stimulus
// sequence. Only Initial, Set, Clear, and Toggle implement it.
type Event interface {
	event() // Sealed - only the four variants implement it

	// Kind returns the event's variant tag.
	Kind() EventKind
}

// Initial sets the register to a starting value. It must be the first
// event of a sequence, and no other event may be Initial.
type Initial struct {
	Value uint64
}

func (Initial) event() {}

// Kind returns KindInitial.
func (Initial) Kind() EventKind { return KindInitial }

// Set ORs a mask into the register after its time elapses.
type Set struct {
	Mask uint64
	Time Time
}

func (Set) event() {}

// Kind returns KindSet.
func (Set) Kind() EventKind { return KindSet }

// Clear ANDs the complement of a mask into the register after its time
// elapses. The complement is taken over the 64-bit working width.
type Clear struct {
	Mask uint64
	Time Time
}

func (Clear) event() {}

// Kind returns KindClear.
func (Clear) Kind() EventKind { return KindClear }

// Toggle XORs a mask into the register after its time elapses.
type Toggle struct {
	Mask uint64
	Time Time
}

func (Toggle) event() {}

// Kind returns KindToggle.
func (Toggle) Kind() EventKind { return KindToggle }

// Time is a sealed interface representing when a mutation event takes
// effect. Only Relative and Absolute implement it.
type Time interface {
	timeSpec()
}

// Relative schedules a mutation Delta cycles after the previously
// emitted cycle. Delta must be >= 1; a delta of 1 means the mutation
// takes effect on the very next cycle.
type Relative struct {
	Delta uint64
}

func (Relative) timeSpec() {}

// Absolute schedules a mutation at an absolute cycle index. The target
// must not be before the running clock; a target equal to the clock is
// a valid zero-hold.
type Absolute struct {
	Cycle uint64
}

func (Absolute) timeSpec() {}

// String returns the kind tag, e.g. "set".
func (k EventKind) String() string { return string(k) }
