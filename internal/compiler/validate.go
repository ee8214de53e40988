package compiler

import (
	"fmt"
	"strings"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
)

// Validation error codes (E100-E199)
const (
	ErrChronologyName    = "E101" // name empty or reserved
	ErrChronologyEmpty   = "E102" // no rules and no relations
	ErrDuplicateName     = "E103" // rule declared twice
	ErrInvalidUnit       = "E104" // unit or range is not a period unit
	ErrInvalidBounds     = "E105" // min > max or smallest max outside bounds
	ErrUnitNotShorter    = "E106" // unit is not shorter than range
	ErrUnknownRule       = "E107" // relation names an undeclared rule
	ErrInvalidRelation   = "E108" // bad divisor or bit count, or repeated rule
	ErrDuplicateParent   = "E109" // two relations for the same parent
	ErrRelationCycle     = "E110" // a rule is its own ancestor
	ErrISORuleRedeclared = "E111" // rule name shadows an ISO rule
)

const (
	maxBitPackBits   = 32
	minDivModDivisor = 2
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a chronology declaration.
// Returns all errors found (does not fail-fast).
func Validate(spec *ChronologySpec) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(spec.Name) == "" || strings.EqualFold(spec.Name, chrono.ISO) {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("chronology name %q is empty or reserved", spec.Name),
			Code:    ErrChronologyName,
		})
	}
	if len(spec.Rules) == 0 && len(spec.Relations) == 0 {
		errs = append(errs, ValidationError{
			Field:   "chronology",
			Message: "at least one rule or relation is required",
			Code:    ErrChronologyEmpty,
		})
	}

	declared := make(map[string]bool)
	for i, r := range spec.Rules {
		errs = append(errs, validateRule(i, r)...)
		if declared[r.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("rule[%d].name", i),
				Message: fmt.Sprintf("duplicate rule name: %q", r.Name),
				Code:    ErrDuplicateName,
			})
		}
		declared[r.Name] = true
	}

	parents := make(map[string]int)
	for i, rel := range spec.Relations {
		field := fmt.Sprintf("relation[%d]", i)
		line := 0
		if rel.Pos.IsValid() {
			line = rel.Pos.Line()
		}
		for _, name := range []string{rel.Parent, rel.Large, rel.Small} {
			if _, ok := resolveName(spec, name); !ok {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("unknown rule %q", name),
					Code:    ErrUnknownRule,
					Line:    line,
				})
			}
		}
		if rel.Parent == rel.Large || rel.Parent == rel.Small || rel.Large == rel.Small {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "parent, large and small must be distinct rules",
				Code:    ErrInvalidRelation,
				Line:    line,
			})
		}
		if rel.IsBitPack() {
			if rel.Bits < 1 || rel.Bits > maxBitPackBits {
				errs = append(errs, ValidationError{
					Field:   field + ".bits",
					Message: fmt.Sprintf("bits %d outside 1-%d", rel.Bits, maxBitPackBits),
					Code:    ErrInvalidRelation,
					Line:    line,
				})
			}
		} else if rel.Divisor < minDivModDivisor {
			errs = append(errs, ValidationError{
				Field:   field + ".divisor",
				Message: fmt.Sprintf("divisor %d must be at least %d", rel.Divisor, minDivModDivisor),
				Code:    ErrInvalidRelation,
				Line:    line,
			})
		}
		if prev, ok := parents[rel.Parent]; ok {
			errs = append(errs, ValidationError{
				Field:   field + ".parent",
				Message: fmt.Sprintf("%s already split by relation[%d]", rel.Parent, prev),
				Code:    ErrDuplicateParent,
				Line:    line,
			})
		} else {
			parents[rel.Parent] = i
		}
	}

	for _, c := range AnalyzeCycles(spec) {
		errs = append(errs, ValidationError{
			Field:   "relation",
			Message: c.Message,
			Code:    ErrRelationCycle,
		})
	}
	return errs
}

func validateRule(i int, r RuleSpec) []ValidationError {
	var errs []ValidationError
	field := fmt.Sprintf("rule[%d]", i)

	if _, ok := chrono.Lookup(r.Name); ok {
		errs = append(errs, ValidationError{
			Field:   field + ".name",
			Message: fmt.Sprintf("%q is an ISO rule; reference it from a relation instead", r.Name),
			Code:    ErrISORuleRedeclared,
		})
	}

	unit, unitErr := chrono.ParseUnit(r.Unit)
	if unitErr != nil {
		errs = append(errs, ValidationError{
			Field:   field + ".unit",
			Message: fmt.Sprintf("invalid unit %q for rule %q", r.Unit, r.Name),
			Code:    ErrInvalidUnit,
		})
	}
	rng, rangeErr := chrono.ParseUnit(r.Range)
	if rangeErr != nil {
		errs = append(errs, ValidationError{
			Field:   field + ".range",
			Message: fmt.Sprintf("invalid range %q for rule %q", r.Range, r.Name),
			Code:    ErrInvalidUnit,
		})
	}
	if unitErr == nil && rangeErr == nil && unit >= rng {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("unit %s must be shorter than range %s", unit, rng),
			Code:    ErrUnitNotShorter,
		})
	}

	if r.Min > r.Max {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("minimum %d exceeds maximum %d", r.Min, r.Max),
			Code:    ErrInvalidBounds,
		})
	} else if r.SmallestMax != nil && (*r.SmallestMax < r.Min || *r.SmallestMax > r.Max) {
		errs = append(errs, ValidationError{
			Field:   field + ".smallest_max",
			Message: fmt.Sprintf("smallest maximum %d outside %d-%d", *r.SmallestMax, r.Min, r.Max),
			Code:    ErrInvalidBounds,
		})
	}
	return errs
}

// resolveName reports whether name refers to a rule declared in spec or to
// an ISO rule. Declared rules win. The returned key is unique across both.
func resolveName(spec *ChronologySpec, name string) (string, bool) {
	for _, r := range spec.Rules {
		if r.Name == name {
			return spec.Name + "." + name, true
		}
	}
	if r, ok := chrono.Lookup(name); ok {
		return r.ID(), true
	}
	return "", false
}
