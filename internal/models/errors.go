package models

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the input text contains nothing
// usable after whitespace collapsing.
var ErrEmptyInput = errors.New("empty input: no usable text after normalization")

// ErrNoCandidates is returned when the generation capability produced
// nothing usable from the entire unit pool.
var ErrNoCandidates = errors.New("no candidates: generation produced nothing usable from any unit")

// InsufficientItemsError is returned when the accepted item count
// remains below the configured minimum after all retries. It is the
// only failure the pipeline surfaces once generation has started
// producing output.
type InsufficientItemsError struct {
	Accepted int
	Minimum  int
}

func (e *InsufficientItemsError) Error() string {
	return fmt.Sprintf("insufficient items: %d accepted, minimum is %d", e.Accepted, e.Minimum)
}

// CapabilityTimeoutError marks an external scoring/generation/
// similarity call that exceeded its timeout. Recovered locally via
// retry or skip; it surfaces to the caller only through the fatal
// errors above.
type CapabilityTimeoutError struct {
	Capability string
	Err        error
}

func (e *CapabilityTimeoutError) Error() string {
	return fmt.Sprintf("capability %s timed out: %v", e.Capability, e.Err)
}

func (e *CapabilityTimeoutError) Unwrap() error { return e.Err }

// CapabilityFailureError marks an external call that returned
// malformed or unusable output. Treated as a generation gap at the
// unit level, never fatal on its own.
type CapabilityFailureError struct {
	Capability string
	Err        error
}

func (e *CapabilityFailureError) Error() string {
	return fmt.Sprintf("capability %s failed: %v", e.Capability, e.Err)
}

func (e *CapabilityFailureError) Unwrap() error { return e.Err }
