package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
	"github.com/ThreeTen/threetenbp-sub007/internal/engine"
	"github.com/ThreeTen/threetenbp-sub007/internal/registry"
)

func buildMock(t *testing.T) *Chronology {
	t.Helper()
	v := compileCUE(t, mockChronologyCUE)
	spec, err := CompileChronology(v.LookupPath(cue.ParsePath("chronology.Mock")))
	require.NoError(t, err)
	c, err := Build(spec)
	require.NoError(t, err)
	return c
}

func TestBuildChronology(t *testing.T) {
	c := buildMock(t)

	assert.Equal(t, "Mock", c.Name())
	require.Len(t, c.Rules(), 4)
	require.Len(t, c.Calculators(), 2)

	century, ok := c.Rule("Century")
	require.True(t, ok)
	assert.Equal(t, "Mock.Century", century.ID())
	assert.Equal(t, chrono.Centuries, century.Unit())

	year, ok := c.Rule("Year")
	require.True(t, ok)
	assert.Same(t, chrono.Year, year)

	calc := c.Calculators()[0]
	assert.Same(t, chrono.Year, calc.Parent())
	assert.Same(t, century, calc.Large())
}

func TestBuildRejectsInvalid(t *testing.T) {
	spec := validMock()
	spec.Relations[0].Large = "Nope"

	_, err := Build(spec)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, ErrUnknownRule, verrs[0].Code)
}

func TestChronologyInstall(t *testing.T) {
	c := buildMock(t)
	reg := registry.NewISO()
	before := reg.Len()

	n, err := c.Install(reg)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, before+2, reg.Len())

	// Installing twice changes nothing.
	n, err = c.Install(reg)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCatalogLookup(t *testing.T) {
	cat := NewCatalog(buildMock(t))

	r, ok := cat.Lookup("Century")
	require.True(t, ok)
	assert.Equal(t, "Mock.Century", r.ID())

	r, ok = cat.Lookup("mock.Century")
	require.True(t, ok)
	assert.Equal(t, "Mock.Century", r.ID())

	r, ok = cat.Lookup("dayofmonth")
	require.True(t, ok)
	assert.Same(t, chrono.DayOfMonth, r)

	_, ok = cat.Lookup("Other.Century")
	assert.False(t, ok)
	_, ok = cat.Lookup("Millennium")
	assert.False(t, ok)

	assert.Len(t, cat.Rules(), len(chrono.ISORules())+4)
}

// TestCompiledChronologyMerges tests the path from a CUE declaration to a
// merged year.
func TestCompiledChronologyMerges(t *testing.T) {
	c := buildMock(t)
	reg, err := NewCatalog(c).Registry()
	require.NoError(t, err)

	century, _ := c.Rule("Century")
	decade, _ := c.Rule("DecadeOfCentury")
	yod, _ := c.Rule("YearOfDecade")

	e := engine.New(reg)
	res, err := e.Merge(engine.NewFieldMap(
		engine.F(century, 19), engine.F(decade, 7), engine.F(yod, 2),
		engine.F(chrono.MonthOfYear, 3), engine.F(chrono.DayOfMonth, 4),
	), engine.StrictContext())
	require.NoError(t, err)

	d, ok := res.Date()
	require.True(t, ok)
	assert.Equal(t, "1972-03-04", d.String())
}
