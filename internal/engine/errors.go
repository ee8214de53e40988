package engine

import (
	"errors"
	"fmt"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
)

// MergeError represents a failed merge.
//
// Merge errors include:
//   - Unsupported field: a required field is absent
//   - Range violation: a value is outside its rule's range in strict mode
//   - Conflict: two sources disagree on a field, date, time, offset or overflow
//   - Loop detected: the merge did not settle within the pass limit
//   - Invalid argument: nil input
//
// A merge that fails never returns a partial result.
type MergeError struct {
	// Code identifies the error category.
	Code MergeErrorCode

	// Message is a human-readable description.
	Message string

	// Rule names the field at fault, when there is one.
	Rule *chrono.Rule

	// Input is the original field map, formatted for diagnostics.
	Input string

	// Err is the underlying cause, if any.
	Err error
}

// MergeErrorCode categorizes merge errors.
type MergeErrorCode string

const (
	// ErrCodeUnsupportedField indicates a required field is absent.
	ErrCodeUnsupportedField MergeErrorCode = "UNSUPPORTED_FIELD"

	// ErrCodeRangeViolation indicates a value outside its valid range.
	ErrCodeRangeViolation MergeErrorCode = "RANGE_VIOLATION"

	// ErrCodeConflict indicates two sources produced different values.
	ErrCodeConflict MergeErrorCode = "MERGE_CONFLICT"

	// ErrCodeLoopDetected indicates the merge did not reach a fixpoint.
	ErrCodeLoopDetected MergeErrorCode = "LOOP_DETECTED"

	// ErrCodeZoneResolution indicates the zone could not supply one offset.
	ErrCodeZoneResolution MergeErrorCode = "ZONE_RESOLUTION"

	// ErrCodeInvalidArgument indicates a nil or malformed argument.
	ErrCodeInvalidArgument MergeErrorCode = "INVALID_ARGUMENT"
)

// Error implements the error interface.
func (e *MergeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Input != "" {
		msg += " (input " + e.Input + ")"
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *MergeError) Unwrap() error { return e.Err }

// ErrorCode returns the code of a MergeError in err's chain, or "".
func ErrorCode(err error) MergeErrorCode {
	var me *MergeError
	if errors.As(err, &me) {
		return me.Code
	}
	return ""
}

// IsConflictError returns true if the error is a merge conflict.
// Uses errors.As to handle wrapped errors.
func IsConflictError(err error) bool { return ErrorCode(err) == ErrCodeConflict }

// IsRangeError returns true if the error is a range violation.
func IsRangeError(err error) bool { return ErrorCode(err) == ErrCodeRangeViolation }

// IsUnsupportedFieldError returns true if a required field was missing.
func IsUnsupportedFieldError(err error) bool { return ErrorCode(err) == ErrCodeUnsupportedField }

// IsLoopError returns true if the merge failed to converge. Matches both
// MergeError with ErrCodeLoopDetected and a bare PassesExceededError.
func IsLoopError(err error) bool {
	if ErrorCode(err) == ErrCodeLoopDetected {
		return true
	}
	var pe *PassesExceededError
	return errors.As(err, &pe)
}

// newConflictError describes two disagreeing values for a rule.
func newConflictError(rule *chrono.Rule, existing, incoming any) *MergeError {
	return &MergeError{
		Code:    ErrCodeConflict,
		Message: fmt.Sprintf("%s has conflicting values %v and %v", rule.Name(), existing, incoming),
		Rule:    rule,
	}
}

// newRangeError wraps a range failure for rule.
func newRangeError(rule *chrono.Rule, err error) *MergeError {
	return &MergeError{
		Code:    ErrCodeRangeViolation,
		Message: err.Error(),
		Rule:    rule,
		Err:     err,
	}
}

// newUnsupportedFieldError reports a required field that is absent.
func newUnsupportedFieldError(rule *chrono.Rule) *MergeError {
	return &MergeError{
		Code:    ErrCodeUnsupportedField,
		Message: fmt.Sprintf("field %s is not present", rule.Name()),
		Rule:    rule,
	}
}
