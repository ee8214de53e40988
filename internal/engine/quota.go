package engine

import (
	"errors"
	"fmt"
)

// DefaultMaxPasses is the pass limit used when WithMaxPasses is not given.
const DefaultMaxPasses = 100

// PassQuota counts merge passes and enforces a maximum.
//
// It catches merges whose state keeps changing without ever repeating,
// such as hooks that keep producing new values. Repeating states are caught
// earlier by the CycleDetector.
type PassQuota struct {
	maxPasses int
	current   int
}

// NewPassQuota creates a quota with the given limit.
func NewPassQuota(maxPasses int) *PassQuota {
	return &PassQuota{maxPasses: maxPasses}
}

// Check increments the pass counter and validates it against the limit.
//
// Returns PassesExceededError once the quota is exceeded.
func (q *PassQuota) Check() error {
	q.current++
	if q.current > q.maxPasses {
		return &PassesExceededError{Passes: q.current, Limit: q.maxPasses}
	}
	return nil
}

// Current returns the number of passes counted so far.
func (q *PassQuota) Current() int { return q.current }

// MaxPasses returns the limit.
func (q *PassQuota) MaxPasses() int { return q.maxPasses }

// PassesExceededError is returned when a merge runs out of passes.
type PassesExceededError struct {
	Passes int
	Limit  int
}

// Error implements the error interface.
func (e *PassesExceededError) Error() string {
	return fmt.Sprintf("merge exceeded max passes: %d passes > %d limit", e.Passes, e.Limit)
}

// IsPassesExceededError returns true if the error is a PassesExceededError.
func IsPassesExceededError(err error) bool {
	var pe *PassesExceededError
	return errors.As(err, &pe)
}
