package harness

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hdlkit/vecgen/internal/engine"
)

// AssertionError is returned when a scenario's outcome does not match
// its expectation. It includes the full trace for debugging context.
type AssertionError struct {
	Scenario string
	Expected string
	Actual   string
	Trace    *engine.Trace
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "scenario %s failed\n", e.Scenario)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if e.Trace != nil {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for i, v := range e.Trace.Values {
			fmt.Fprintf(&buf, "  [%d] %s\n", i, strconv.FormatUint(v, 16))
		}
	}
	return buf.String()
}

// Check validates a scenario result against the scenario's
// expectations: either an exact trace or a terminal error code.
func (s *Scenario) Check(result *Result) error {
	if s.WantError != "" {
		return s.checkError(result)
	}
	return s.checkTrace(result)
}

func (s *Scenario) checkError(result *Result) error {
	if result.Err == nil {
		return &AssertionError{
			Scenario: s.Name,
			Expected: fmt.Sprintf("expansion error %s", s.WantError),
			Actual:   fmt.Sprintf("success with %d cycle(s)", len(result.Trace.Values)),
			Trace:    result.Trace,
		}
	}

	var ee *engine.ExpandError
	if !errors.As(result.Err, &ee) || string(ee.Code) != s.WantError {
		return &AssertionError{
			Scenario: s.Name,
			Expected: fmt.Sprintf("expansion error %s", s.WantError),
			Actual:   result.Err.Error(),
		}
	}
	return nil
}

func (s *Scenario) checkTrace(result *Result) error {
	if result.Err != nil {
		return &AssertionError{
			Scenario: s.Name,
			Expected: fmt.Sprintf("trace %v", s.Want),
			Actual:   result.Err.Error(),
		}
	}

	got := make([]string, len(result.Trace.Values))
	for i, v := range result.Trace.Values {
		got[i] = strconv.FormatUint(v, 16)
	}

	if len(got) != len(s.Want) {
		return &AssertionError{
			Scenario: s.Name,
			Expected: fmt.Sprintf("%d cycle(s): %v", len(s.Want), s.Want),
			Actual:   fmt.Sprintf("%d cycle(s): %v", len(got), got),
			Trace:    result.Trace,
		}
	}
	for i := range got {
		if got[i] != s.Want[i] {
			return &AssertionError{
				Scenario: s.Name,
				Expected: fmt.Sprintf("cycle %d = %s", i, s.Want[i]),
				Actual:   fmt.Sprintf("cycle %d = %s", i, got[i]),
				Trace:    result.Trace,
			}
		}
	}
	return nil
}
