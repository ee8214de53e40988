package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMock() *ChronologySpec {
	return &ChronologySpec{
		Name: "Mock",
		Rules: []RuleSpec{
			{Name: "Century", Unit: "Centuries", Range: "Forever", Min: -1000, Max: 1000},
			{Name: "YearOfCentury", Unit: "Years", Range: "Centuries", Min: 0, Max: 99},
		},
		Relations: []RelationSpec{
			{Parent: "Year", Large: "Century", Small: "YearOfCentury", Divisor: 100},
		},
	}
}

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

// =============================================================================
// Chronology Validation Tests
// =============================================================================

func TestValidateChronologyValid(t *testing.T) {
	errs := Validate(validMock())
	assert.Empty(t, errs, "valid chronology should have no errors")
}

func TestValidateChronologyName(t *testing.T) {
	for _, name := range []string{"", "  ", "ISO", "iso"} {
		spec := validMock()
		spec.Name = name
		assert.Contains(t, codes(Validate(spec)), ErrChronologyName, "name %q", name)
	}
}

func TestValidateChronologyEmpty(t *testing.T) {
	errs := Validate(&ChronologySpec{Name: "Empty"})
	require.Len(t, errs, 1)
	assert.Equal(t, ErrChronologyEmpty, errs[0].Code)
}

func TestValidateRuleErrors(t *testing.T) {
	smallest := int64(500)
	tests := []struct {
		name string
		rule RuleSpec
		want string
	}{
		{"unknown unit", RuleSpec{Name: "A", Unit: "Fortnights", Range: "Forever", Max: 1}, ErrInvalidUnit},
		{"unknown range", RuleSpec{Name: "A", Unit: "Days", Range: "Eons", Max: 1}, ErrInvalidUnit},
		{"unit not shorter", RuleSpec{Name: "A", Unit: "Years", Range: "Months", Max: 1}, ErrUnitNotShorter},
		{"min above max", RuleSpec{Name: "A", Unit: "Days", Range: "Forever", Min: 5, Max: 1}, ErrInvalidBounds},
		{"smallest max", RuleSpec{Name: "A", Unit: "Days", Range: "Forever", Max: 100, SmallestMax: &smallest}, ErrInvalidBounds},
		{"shadows ISO", RuleSpec{Name: "DayOfMonth", Unit: "Days", Range: "Months", Min: 1, Max: 31}, ErrISORuleRedeclared},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &ChronologySpec{Name: "T", Rules: []RuleSpec{tt.rule}}
			errs := Validate(spec)
			require.NotEmpty(t, errs)
			assert.Contains(t, codes(errs), tt.want)
		})
	}
}

func TestValidateDuplicateRule(t *testing.T) {
	spec := validMock()
	spec.Rules = append(spec.Rules, spec.Rules[0])

	errs := Validate(spec)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateName, errs[0].Code)
	assert.Contains(t, errs[0].Message, "Century")
}

func TestValidateRelationErrors(t *testing.T) {
	tests := []struct {
		name string
		rel  RelationSpec
		want string
	}{
		{"unknown rule", RelationSpec{Parent: "Year", Large: "Millennium", Small: "YearOfCentury", Divisor: 100}, ErrUnknownRule},
		{"divisor too small", RelationSpec{Parent: "Year", Large: "Century", Small: "YearOfCentury", Divisor: 1}, ErrInvalidRelation},
		{"too many bits", RelationSpec{Parent: "Year", Large: "Century", Small: "YearOfCentury", Bits: 40}, ErrInvalidRelation},
		{"repeated rule", RelationSpec{Parent: "Year", Large: "Century", Small: "Century", Divisor: 100}, ErrInvalidRelation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validMock()
			spec.Relations = []RelationSpec{tt.rel}
			assert.Contains(t, codes(Validate(spec)), tt.want)
		})
	}
}

func TestValidateDuplicateParent(t *testing.T) {
	spec := validMock()
	spec.Relations = append(spec.Relations, RelationSpec{Parent: "Year", Large: "YearOfCentury", Small: "Century", Divisor: 7})

	assert.Contains(t, codes(Validate(spec)), ErrDuplicateParent)
}

func TestValidationErrorFormat(t *testing.T) {
	e := ValidationError{Field: "relation[0]", Message: "unknown rule \"X\"", Code: ErrUnknownRule, Line: 4}
	assert.Equal(t, `[E107] line 4: relation[0]: unknown rule "X"`, e.Error())

	e.Line = 0
	assert.Equal(t, `[E107] relation[0]: unknown rule "X"`, e.Error())
}
