package chrono

import (
	"errors"
	"fmt"
	"strings"
)

// Rule describes one calendar field: its identity, unit, range and bounds.
// Rules are immutable and compared by pointer.
type Rule struct {
	chronology  string
	name        string
	unit        PeriodUnit
	rng         PeriodUnit
	min         int64
	max         int64
	smallestMax int64
	base        *Rule
}

// RuleOption configures optional attributes in NewRule.
type RuleOption func(*Rule)

// WithSmallestMaximum sets the smallest maximum, for fields such as
// DayOfMonth whose upper bound varies (28 to 31).
func WithSmallestMaximum(v int64) RuleOption {
	return func(r *Rule) { r.smallestMax = v }
}

// WithBase records the rule this one is a presentation of, for example
// ClockHourOfDay is based on HourOfDay.
func WithBase(base *Rule) RuleOption {
	return func(r *Rule) { r.base = base }
}

// NewRule creates a rule. The range must be longer than the unit unless it is
// Forever, and min must not exceed max.
func NewRule(chronology, name string, unit, rng PeriodUnit, min, max int64, opts ...RuleOption) (*Rule, error) {
	if strings.TrimSpace(chronology) == "" {
		return nil, errors.New("rule chronology must not be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("rule name must not be empty")
	}
	if min > max {
		return nil, fmt.Errorf("rule %s.%s: minimum %d exceeds maximum %d", chronology, name, min, max)
	}
	if rng <= unit {
		return nil, fmt.Errorf("rule %s.%s: range %s must be longer than unit %s", chronology, name, rng, unit)
	}
	r := &Rule{
		chronology:  chronology,
		name:        name,
		unit:        unit,
		rng:         rng,
		min:         min,
		max:         max,
		smallestMax: max,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.smallestMax < min || r.smallestMax > max {
		return nil, fmt.Errorf("rule %s.%s: smallest maximum %d outside %d - %d", chronology, name, r.smallestMax, min, max)
	}
	return r, nil
}

// ID returns the unique identifier, chronology and name joined by a dot.
func (r *Rule) ID() string { return r.chronology + "." + r.name }

// Name returns the field name, for example DayOfMonth.
func (r *Rule) Name() string { return r.name }

// Chronology returns the owning chronology name.
func (r *Rule) Chronology() string { return r.chronology }

// Unit returns the period unit the field counts in.
func (r *Rule) Unit() PeriodUnit { return r.unit }

// Range returns the period the field cycles within, or Forever.
func (r *Rule) Range() PeriodUnit { return r.rng }

// Min returns the minimum valid value.
func (r *Rule) Min() int64 { return r.min }

// Max returns the largest valid value across all contexts.
func (r *Rule) Max() int64 { return r.max }

// SmallestMax returns the smallest maximum across all contexts.
func (r *Rule) SmallestMax() int64 { return r.smallestMax }

// Base returns the rule this one presents, or nil.
func (r *Rule) Base() *Rule { return r.base }

// IsDateRule reports whether the field counts days or longer units.
func (r *Rule) IsDateRule() bool { return r.unit >= Days }

// IsTimeRule reports whether the field counts units shorter than a day.
func (r *Rule) IsTimeRule() bool { return r.unit < Days }

// IsValid reports whether v lies within [Min, Max].
func (r *Rule) IsValid(v int64) bool { return v >= r.min && v <= r.max }

// CheckValue returns a *RangeError when v lies outside [Min, Max].
func (r *Rule) CheckValue(v int64) error {
	if !r.IsValid(v) {
		return &RangeError{Rule: r, Value: v, Min: r.min, Max: r.max}
	}
	return nil
}

// String returns the rule ID.
func (r *Rule) String() string { return r.ID() }

// Compare orders rules by unit, then range, then ID. The merge engine visits
// fields in this order so that smaller units are processed first.
func Compare(a, b *Rule) int {
	switch {
	case a.unit != b.unit:
		return cmpInt(int(a.unit), int(b.unit))
	case a.rng != b.rng:
		return cmpInt(int(a.rng), int(b.rng))
	}
	return strings.Compare(a.ID(), b.ID())
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	return 1
}

// RangeError reports a value outside the valid range of a rule.
type RangeError struct {
	Rule  *Rule
	Value int64
	Min   int64
	Max   int64
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("value %d for %s is outside the valid range %d - %d", e.Value, e.Rule.Name(), e.Min, e.Max)
}
