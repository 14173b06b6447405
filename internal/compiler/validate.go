package compiler

import "fmt"

// Validation error codes (E100-E199)
const (
	// Config-level errors (E100-E109)
	ErrConfigNoSequence = "E101" // sequence is required and non-empty
	ErrConfigVectorSize = "E102" // vector_size must be a positive integer
	ErrConfigSchema     = "E103" // config does not satisfy the schema

	// Event-level errors (E110-E119)
	ErrUnknownEventKind = "E110" // event kind not in the closed set
	ErrMissingValue     = "E111" // initial event without a value
	ErrMissingMask      = "E112" // mutation event without a mask
	ErrMissingTime      = "E113" // mutation event without a time
	ErrInvalidValue     = "E114" // value/mask not a non-negative integer

	// Time-level errors (E120-E129)
	ErrUnknownTimeMode = "E120" // time mode not "rel" or "abs"
	ErrInvalidDelta    = "E121" // relative delta not >= 1
	ErrInvalidAbsTime  = "E122" // absolute time not >= 0
)

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors aggregates every error found in one compilation
// pass. It is non-nil only when at least one error was collected.
type ValidationErrors []ValidationError

// Error implements the error interface, summarizing the first error
// and the total count.
func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", e[0].Error(), len(e)-1)
}
