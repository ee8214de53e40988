package engine

import (
	"slices"
	"strings"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
	"github.com/ThreeTen/threetenbp-sub007/internal/registry"
	"github.com/ThreeTen/threetenbp-sub007/internal/temporal"
)

// Result is the read-only outcome of a successful merge.
type Result struct {
	date      *temporal.Date
	time      *temporal.Time
	offset    *temporal.Offset
	overflow  temporal.Period
	fields    *FieldMap
	processed []*chrono.Rule
	passes    int
	registry  *registry.Registry
}

// Date returns the merged date.
func (r *Result) Date() (temporal.Date, bool) {
	if r.date == nil {
		return temporal.Date{}, false
	}
	return *r.date, true
}

// Time returns the merged time.
func (r *Result) Time() (temporal.Time, bool) {
	if r.time == nil {
		return temporal.Time{}, false
	}
	return *r.time, true
}

// Offset returns the merged offset.
func (r *Result) Offset() (temporal.Offset, bool) {
	if r.offset == nil {
		return temporal.Offset{}, false
	}
	return *r.offset, true
}

// Overflow returns the days carried out of a lenient time. It is not applied
// to Date; DateTime applies it.
func (r *Result) Overflow() temporal.Period { return r.overflow }

// DateTime returns the merged date and time with overflow applied.
func (r *Result) DateTime() (temporal.DateTime, bool) {
	if r.date == nil || r.time == nil {
		return temporal.DateTime{}, false
	}
	dt, err := temporal.DateTimeOf(*r.date, *r.time).PlusDays(r.overflow.Days)
	if err != nil {
		return temporal.DateTime{}, false
	}
	return dt, true
}

// Fields returns a copy of the fields left over after merging. These could
// not be merged and were not derivable from the merged values.
func (r *Result) Fields() *FieldMap { return r.fields.Clone() }

// Processed returns the fields consumed by merging, sorted.
func (r *Result) Processed() []*chrono.Rule { return slices.Clone(r.processed) }

// Passes returns the number of merge passes run, including the final pass
// that found nothing to do.
func (r *Result) Passes() int { return r.passes }

// Value returns rule from the leftover fields or, failing that, derives it
// from the merged date, time and offset or from another leftover field. It
// is an unsupported-field error when no source has it.
func (r *Result) Value(rule *chrono.Rule) (int64, error) {
	if v, ok := r.fields.Get(rule); ok {
		return v, nil
	}
	var date *temporal.Date
	if r.date != nil {
		d, err := r.date.PlusDays(r.overflow.Days)
		if err == nil {
			date = &d
		}
	}
	if v, ok := deriveFromMerged(r.registry, rule, date, r.time, r.offset); ok {
		return v, nil
	}
	for _, f := range r.fields.Fields() {
		if v, ok := deriveFromField(r.registry, rule, f.Rule, f.Value); ok {
			return v, nil
		}
	}
	return 0, newUnsupportedFieldError(rule)
}

// IsEmpty reports whether nothing was merged and nothing is left.
func (r *Result) IsEmpty() bool {
	return r.date == nil && r.time == nil && r.offset == nil && r.fields.Len() == 0
}

// String renders the result as date, time, offset, overflow and leftovers,
// omitting parts that are absent. An empty result renders as {}.
func (r *Result) String() string {
	var parts []string
	if r.date != nil {
		parts = append(parts, r.date.String())
	}
	if r.time != nil {
		parts = append(parts, r.time.String())
	}
	if r.offset != nil {
		parts = append(parts, r.offset.String())
	}
	if !r.overflow.IsZero() {
		parts = append(parts, "+"+r.overflow.String())
	}
	if r.fields.Len() > 0 || len(parts) == 0 {
		parts = append(parts, r.fields.String())
	}
	return strings.Join(parts, " ")
}
