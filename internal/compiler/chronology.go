package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// ChronologySpec is a chronology declaration as written in CUE, before rule
// names are resolved.
type ChronologySpec struct {
	Name      string         `json:"name"`
	Rules     []RuleSpec     `json:"rules"`
	Relations []RelationSpec `json:"relations"`
}

// RuleSpec declares one field rule.
type RuleSpec struct {
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Range       string `json:"range"`
	Min         int64  `json:"min"`
	Max         int64  `json:"max"`
	SmallestMax *int64 `json:"smallest_max,omitempty"`
}

// RelationSpec declares a calculator. Exactly one of Divisor and Bits is set.
type RelationSpec struct {
	Parent string `json:"parent"`
	Large  string `json:"large"`
	Small  string `json:"small"`

	Divisor    int64 `json:"divisor,omitempty"`
	ParentBase int64 `json:"parent_base,omitempty"`
	LargeBase  int64 `json:"large_base,omitempty"`
	SmallBase  int64 `json:"small_base,omitempty"`

	Bits int64 `json:"bits,omitempty"`

	Pos token.Pos `json:"-"`
}

// IsBitPack reports whether the relation packs bits rather than dividing.
func (r RelationSpec) IsBitPack() bool { return r.Bits != 0 }

// CompileChronologies compiles every entry under the top-level chronology
// field of v. A value without that field compiles to nothing.
func CompileChronologies(v cue.Value) ([]ChronologySpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	root := v.LookupPath(cue.ParsePath("chronology"))
	if !root.Exists() {
		return nil, nil
	}
	iter, err := root.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var specs []ChronologySpec
	for iter.Next() {
		spec, err := CompileChronology(iter.Value())
		if err != nil {
			return nil, err
		}
		specs = append(specs, *spec)
	}
	return specs, nil
}

// CompileChronology parses a CUE value into a ChronologySpec.
//
// The value is the chronology struct itself:
//
//	chronology: Mock: {
//		rule: Century: {unit: "Centuries", range: "Forever", min: -1000, max: 1000}
//		relation: [{parent: "Year", large: "Century", small: "YearOfCentury", divisor: 100}]
//	}
func CompileChronology(v cue.Value) (*ChronologySpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &ChronologySpec{}
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		spec.Name = labels[len(labels)-1].String()
	}

	var err error
	if spec.Rules, err = parseRules(v); err != nil {
		return nil, err
	}
	if spec.Relations, err = parseRelations(v); err != nil {
		return nil, err
	}
	if len(spec.Rules) == 0 && len(spec.Relations) == 0 {
		return nil, &CompileError{
			Field:   "chronology." + spec.Name,
			Message: "at least one rule or relation is required",
			Pos:     v.Pos(),
		}
	}
	return spec, nil
}

func parseRules(v cue.Value) ([]RuleSpec, error) {
	ruleVal := v.LookupPath(cue.ParsePath("rule"))
	if !ruleVal.Exists() {
		return nil, nil
	}
	iter, err := ruleVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var rules []RuleSpec
	for iter.Next() {
		name := iter.Label()
		rv := iter.Value()
		field := "rule." + name

		rs := RuleSpec{Name: name}
		if rs.Unit, err = requiredString(rv, field, "unit"); err != nil {
			return nil, err
		}
		if rs.Range, err = requiredString(rv, field, "range"); err != nil {
			return nil, err
		}
		if rs.Min, err = requiredInt(rv, field, "min"); err != nil {
			return nil, err
		}
		if rs.Max, err = requiredInt(rv, field, "max"); err != nil {
			return nil, err
		}
		if sm := rv.LookupPath(cue.ParsePath("smallest_max")); sm.Exists() {
			n, err := sm.Int64()
			if err != nil {
				return nil, formatCUEError(err)
			}
			rs.SmallestMax = &n
		}
		rules = append(rules, rs)
	}
	return rules, nil
}

func parseRelations(v cue.Value) ([]RelationSpec, error) {
	relVal := v.LookupPath(cue.ParsePath("relation"))
	if !relVal.Exists() {
		return nil, nil
	}
	iter, err := relVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var rels []RelationSpec
	for i := 0; iter.Next(); i++ {
		rv := iter.Value()
		field := fmt.Sprintf("relation[%d]", i)

		rel := RelationSpec{Pos: rv.Pos()}
		if rel.Parent, err = requiredString(rv, field, "parent"); err != nil {
			return nil, err
		}
		if rel.Large, err = requiredString(rv, field, "large"); err != nil {
			return nil, err
		}
		if rel.Small, err = requiredString(rv, field, "small"); err != nil {
			return nil, err
		}

		opt := func(name string, dst *int64) error {
			fv := rv.LookupPath(cue.ParsePath(name))
			if !fv.Exists() {
				return nil
			}
			n, err := fv.Int64()
			if err != nil {
				return formatCUEError(err)
			}
			*dst = n
			return nil
		}
		for _, o := range []struct {
			name string
			dst  *int64
		}{
			{"divisor", &rel.Divisor},
			{"bits", &rel.Bits},
			{"parent_base", &rel.ParentBase},
			{"large_base", &rel.LargeBase},
			{"small_base", &rel.SmallBase},
		} {
			if err := opt(o.name, o.dst); err != nil {
				return nil, err
			}
		}

		switch {
		case rel.Divisor != 0 && rel.Bits != 0:
			return nil, &CompileError{Field: field, Message: "divisor and bits are mutually exclusive", Pos: rv.Pos()}
		case rel.Divisor == 0 && rel.Bits == 0:
			return nil, &CompileError{Field: field, Message: "one of divisor or bits is required", Pos: rv.Pos()}
		}
		rels = append(rels, rel)
	}
	return rels, nil
}

func requiredString(v cue.Value, field, name string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return "", &CompileError{Field: field + "." + name, Message: name + " is required", Pos: v.Pos()}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func requiredInt(v cue.Value, field, name string) (int64, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return 0, &CompileError{Field: field + "." + name, Message: name + " is required", Pos: v.Pos()}
	}
	if k := fv.IncompleteKind(); k == cue.FloatKind || k == cue.NumberKind {
		return 0, &CompileError{Field: field + "." + name, Message: "must be an integer", Pos: fv.Pos()}
	}
	n, err := fv.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return n, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
