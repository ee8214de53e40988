package engine

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
)

// Field is one rule/value pair.
type Field struct {
	Rule  *chrono.Rule
	Value int64
}

// F builds a Field.
func F(rule *chrono.Rule, value int64) Field {
	return Field{Rule: rule, Value: value}
}

// FieldMap holds raw, unvalidated field values keyed by rule identity.
// Iteration through Rules or Fields is in chrono.Compare order.
//
// A FieldMap is not safe for concurrent mutation. Merge clones its input, so
// callers may keep using the map they passed in.
type FieldMap struct {
	values map[*chrono.Rule]int64
}

// NewFieldMap builds a map from fields. A later field for the same rule
// replaces an earlier one.
func NewFieldMap(fields ...Field) *FieldMap {
	m := &FieldMap{values: make(map[*chrono.Rule]int64, len(fields))}
	for _, f := range fields {
		m.values[f.Rule] = f.Value
	}
	return m
}

// Get returns the value for rule.
func (m *FieldMap) Get(rule *chrono.Rule) (int64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m.values[rule]
	return v, ok
}

// Has reports whether rule is present.
func (m *FieldMap) Has(rule *chrono.Rule) bool {
	_, ok := m.Get(rule)
	return ok
}

// Set stores value for rule.
func (m *FieldMap) Set(rule *chrono.Rule, value int64) {
	if m.values == nil {
		m.values = map[*chrono.Rule]int64{}
	}
	m.values[rule] = value
}

// Delete removes rule.
func (m *FieldMap) Delete(rule *chrono.Rule) {
	delete(m.values, rule)
}

// Len returns the number of fields.
func (m *FieldMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.values)
}

// Rules returns the rules present, sorted.
func (m *FieldMap) Rules() []*chrono.Rule {
	if m == nil {
		return nil
	}
	rules := slices.Collect(maps.Keys(m.values))
	slices.SortFunc(rules, chrono.Compare)
	return rules
}

// Fields returns the fields, sorted by rule.
func (m *FieldMap) Fields() []Field {
	rules := m.Rules()
	out := make([]Field, len(rules))
	for i, r := range rules {
		out[i] = Field{Rule: r, Value: m.values[r]}
	}
	return out
}

// Clone returns an independent copy.
func (m *FieldMap) Clone() *FieldMap {
	if m == nil {
		return NewFieldMap()
	}
	return &FieldMap{values: maps.Clone(m.values)}
}

// Equal reports whether both maps hold the same rules with the same values.
func (m *FieldMap) Equal(o *FieldMap) bool {
	if m.Len() != o.Len() {
		return false
	}
	if m.Len() == 0 {
		return true
	}
	return maps.Equal(m.values, o.values)
}

// String formats the map as {Name=value, ...} in rule order.
func (m *FieldMap) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range m.Fields() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Rule.Name())
		b.WriteByte('=')
		b.WriteString(strconv.FormatInt(f.Value, 10))
	}
	b.WriteByte('}')
	return b.String()
}
