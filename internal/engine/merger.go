package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
	"github.com/ThreeTen/threetenbp-sub007/internal/registry"
	"github.com/ThreeTen/threetenbp-sub007/internal/temporal"
)

// Hook merges the field it is registered for into the merger state.
//
// Hooks read values with Value, write with the Store methods and call
// MarkProcessed for every field they consumed. A hook that finds its inputs
// incomplete returns nil without changes; a later pass may supply them.
type Hook func(m *Merger) error

// Merger is the working state of one merge.
//
// It is created by Engine.Merge, handed to hooks, and discarded when the
// merge finishes. It is not safe for concurrent use.
//
// INVARIANTS:
//   - the original input is never modified
//   - the date, time and offset slots are written at most once; a second,
//     different value is a conflict
//   - overflow only ever holds one non-zero amount
type Merger struct {
	ctx       MergeContext
	registry  *registry.Registry
	logger    *slog.Logger
	original  *FieldMap
	fields    *FieldMap
	processed map[*chrono.Rule]bool
	date      *temporal.Date
	time      *temporal.Time
	offset    *temporal.Offset
	overflow  temporal.Period
}

func newMerger(e *Engine, input *FieldMap, ctx MergeContext) *Merger {
	return &Merger{
		ctx:       ctx,
		registry:  e.registry,
		logger:    e.logger,
		original:  input.Clone(),
		fields:    input.Clone(),
		processed: map[*chrono.Rule]bool{},
	}
}

// Context returns the merge context.
func (m *Merger) Context() MergeContext { return m.ctx }

// Strict reports whether out-of-range values are rejected.
func (m *Merger) Strict() bool { return m.ctx.Strict }

// Registry returns the calculator registry in use.
func (m *Merger) Registry() *registry.Registry { return m.registry }

// Lookup returns the raw value of rule without validation.
func (m *Merger) Lookup(rule *chrono.Rule) (int64, bool) { return m.fields.Get(rule) }

// Has reports whether rule is present in the working map.
func (m *Merger) Has(rule *chrono.Rule) bool { return m.fields.Has(rule) }

// IsProcessed reports whether rule has been consumed by a hook.
func (m *Merger) IsProcessed(rule *chrono.Rule) bool { return m.processed[rule] }

// Value returns the value of rule. An absent rule is an unsupported-field
// error; in strict mode a value outside the rule's range is a range error.
func (m *Merger) Value(rule *chrono.Rule) (int64, error) {
	v, ok := m.fields.Get(rule)
	if !ok {
		return 0, newUnsupportedFieldError(rule)
	}
	if m.ctx.Strict {
		if err := rule.CheckValue(v); err != nil {
			return 0, newRangeError(rule, err)
		}
	}
	return v, nil
}

// StoreField adds a derived field. Storing the value already present is a
// no-op; storing a different value is a conflict.
func (m *Merger) StoreField(rule *chrono.Rule, value int64) error {
	if existing, ok := m.fields.Get(rule); ok {
		if existing != value {
			return newConflictError(rule, existing, value)
		}
		return nil
	}
	m.fields.Set(rule, value)
	m.logger.Debug("merged field", "rule", rule.ID(), "value", value)
	return nil
}

// Replace overwrites a field value. It is meant for hooks that normalise a
// field in place; ordinary merging should use StoreField.
func (m *Merger) Replace(rule *chrono.Rule, value int64) {
	m.fields.Set(rule, value)
}

// MarkProcessed records that rules have been consumed. Processed fields are
// skipped by later passes and dropped before the consistency check.
func (m *Merger) MarkProcessed(rules ...*chrono.Rule) {
	for _, r := range rules {
		m.processed[r] = true
	}
}

// Date returns the merged date, if any.
func (m *Merger) Date() (temporal.Date, bool) {
	if m.date == nil {
		return temporal.Date{}, false
	}
	return *m.date, true
}

// Time returns the merged time, if any.
func (m *Merger) Time() (temporal.Time, bool) {
	if m.time == nil {
		return temporal.Time{}, false
	}
	return *m.time, true
}

// StoreDate records the date produced from cause.
func (m *Merger) StoreDate(cause *chrono.Rule, d temporal.Date) error {
	if m.date != nil {
		if *m.date != d {
			return m.slotConflict(cause, "date", m.date.String(), d.String())
		}
		return nil
	}
	m.date = &d
	m.logger.Debug("merged date", "cause", cause.ID(), "date", d.String())
	return nil
}

// StoreTime records the time produced from cause, with the whole days that
// overflowed when a lenient value was wrapped into the day.
func (m *Merger) StoreTime(cause *chrono.Rule, t temporal.Time, overflowDays int64) error {
	if m.time != nil && *m.time != t {
		return m.slotConflict(cause, "time", m.time.String(), t.String())
	}
	if overflowDays != 0 {
		if !m.overflow.IsZero() && m.overflow.Days != overflowDays {
			return &MergeError{
				Code: ErrCodeConflict,
				Message: fmt.Sprintf("overflow has conflicting values %s and %s",
					m.overflow, temporal.PeriodOfDays(overflowDays)),
				Rule: cause,
			}
		}
		m.overflow = temporal.PeriodOfDays(overflowDays)
	}
	if m.time == nil {
		m.time = &t
		m.logger.Debug("merged time", "cause", cause.ID(), "time", t.String(), "overflow_days", overflowDays)
	}
	return nil
}

// StoreOffset records the offset produced from cause.
func (m *Merger) StoreOffset(cause *chrono.Rule, o temporal.Offset) error {
	if m.offset != nil {
		if *m.offset != o {
			return m.slotConflict(cause, "offset", m.offset.String(), o.String())
		}
		return nil
	}
	m.offset = &o
	return nil
}

// slotConflict reports a second, different date, time or offset. When the
// cause can be derived from what is already merged the message names the
// field and both of its values, which is what a caller can act on.
func (m *Merger) slotConflict(cause *chrono.Rule, slot, existing, incoming string) error {
	if raw, ok := m.fields.Get(cause); ok {
		if derived, ok := chrono.DeriveFrom(cause, m.date, m.time, m.offset); ok && derived != raw {
			return newConflictError(cause, derived, raw)
		}
	}
	return &MergeError{
		Code:    ErrCodeConflict,
		Message: fmt.Sprintf("%s from %s conflicts: %s and %s", slot, cause.Name(), existing, incoming),
		Rule:    cause,
	}
}

// dateError converts a calendar construction failure into a merge error,
// naming the field that was out of range.
func (m *Merger) dateError(cause *chrono.Rule, err error) error {
	var ive *temporal.InvalidValueError
	if errors.As(err, &ive) {
		if r, ok := chrono.Lookup(ive.Field); ok {
			return newRangeError(r, err)
		}
	}
	return newRangeError(cause, err)
}

// effectiveDate returns the merged date with overflow days applied.
func (m *Merger) effectiveDate() (*temporal.Date, error) {
	if m.date == nil {
		return nil, nil
	}
	d, err := m.date.PlusDays(m.overflow.Days)
	if err != nil {
		return nil, m.dateError(chrono.EpochDay, err)
	}
	return &d, nil
}

// removeProcessed drops every consumed field from the working map.
func (m *Merger) removeProcessed() {
	for r := range m.processed {
		m.fields.Delete(r)
	}
}

// fingerprint describes the whole state. Two states with the same
// fingerprint are equal for change detection.
func (m *Merger) fingerprint() string {
	var b strings.Builder
	for _, f := range m.fields.Fields() {
		fmt.Fprintf(&b, "%s=%d", f.Rule.ID(), f.Value)
		if m.processed[f.Rule] {
			b.WriteByte('*')
		}
		b.WriteByte(';')
	}
	if m.date != nil {
		b.WriteString("|d=" + m.date.String())
	}
	if m.time != nil {
		b.WriteString("|t=" + m.time.String())
	}
	if m.offset != nil {
		b.WriteString("|o=" + m.offset.String())
	}
	if !m.overflow.IsZero() {
		b.WriteString("|p=" + m.overflow.String())
	}
	return b.String()
}

// fail completes err with the original input and logs it.
func (m *Merger) fail(err error) error {
	var me *MergeError
	if errors.As(err, &me) && me.Input == "" {
		me.Input = m.original.String()
	}
	m.logger.Warn("merge failed", "error", err)
	return err
}

func (m *Merger) result(passes int) *Result {
	processed := make([]*chrono.Rule, 0, len(m.processed))
	for r := range m.processed {
		processed = append(processed, r)
	}
	slices.SortFunc(processed, chrono.Compare)
	return &Result{
		date:      m.date,
		time:      m.time,
		offset:    m.offset,
		overflow:  m.overflow,
		fields:    m.fields.Clone(),
		processed: processed,
		passes:    passes,
		registry:  m.registry,
	}
}
