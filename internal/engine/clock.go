package engine

// Clock is the monotonic cycle counter threaded through an expansion.
//
// Every emitted value advances the clock by exactly one, held cycles
// included, so at any point the clock equals the number of values
// emitted so far. Absolute time targets are resolved against it.
//
// Each expansion owns its clock exclusively for its duration; there is
// no sharing between runs.
type Clock struct {
	cycle uint64
}

// NewClock creates a clock starting at cycle 0.
func NewClock() *Clock {
	return &Clock{}
}

// Advance moves the clock forward one cycle.
func (c *Clock) Advance() {
	c.cycle++
}

// Current returns the current cycle index.
func (c *Clock) Current() uint64 {
	return c.cycle
}
