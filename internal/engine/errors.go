package engine

import (
	"errors"
	"fmt"
)

// ExpandError represents a terminal error detected during expansion.
//
// Expansion errors include:
//   - Sequence order: the Initial event is missing, misplaced, or
//     duplicated
//   - Time order: an absolute time target is before the running clock
//
// Both are unrecoverable for the current run. Expansion stops at the
// offending event, no further events are processed, and no trace is
// produced. ExpandError carries the offending event index for
// diagnostics.
type ExpandError struct {
	// Code identifies the error category.
	Code ExpandErrorCode

	// Message is a human-readable description.
	Message string

	// EventIndex is the index of the offending event in the sequence.
	EventIndex int
}

// ExpandErrorCode categorizes expansion errors.
type ExpandErrorCode string

const (
	// ErrCodeSequenceOrder indicates a misplaced or missing Initial event.
	ErrCodeSequenceOrder ExpandErrorCode = "SEQUENCE_ORDER"

	// ErrCodeTimeOrder indicates an absolute time target in the past.
	ErrCodeTimeOrder ExpandErrorCode = "TIME_ORDER"
)

// Error implements the error interface.
func (e *ExpandError) Error() string {
	return fmt.Sprintf("%s: in event %d: %s", e.Code, e.EventIndex, e.Message)
}

// IsSequenceOrderError returns true if the error is a sequence ordering
// violation. Uses errors.As to handle wrapped errors.
func IsSequenceOrderError(err error) bool {
	var ee *ExpandError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeSequenceOrder
	}
	return false
}

// IsTimeOrderError returns true if the error is an absolute-time
// ordering violation. Uses errors.As to handle wrapped errors.
func IsTimeOrderError(err error) bool {
	var ee *ExpandError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeTimeOrder
	}
	return false
}

// NewSequenceOrderError creates an ExpandError for a misplaced Initial.
func NewSequenceOrderError(eventIndex int, message string) *ExpandError {
	return &ExpandError{
		Code:       ErrCodeSequenceOrder,
		Message:    message,
		EventIndex: eventIndex,
	}
}

// NewTimeOrderError creates an ExpandError for an absolute time target
// in the past.
func NewTimeOrderError(eventIndex int, target, current uint64) *ExpandError {
	return &ExpandError{
		Code:       ErrCodeTimeOrder,
		Message:    fmt.Sprintf("absolute time is in the past (requested %d, current %d)", target, current),
		EventIndex: eventIndex,
	}
}
