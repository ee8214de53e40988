package engine

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
	"github.com/ThreeTen/threetenbp-sub007/internal/registry"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	return newTestEngineWith(t, registry.NewISO(), opts...)
}

func newTestEngineWith(t *testing.T, reg *registry.Registry, opts ...EngineOption) *Engine {
	t.Helper()
	return New(reg, append([]EngineOption{WithLogger(quietLogger())}, opts...)...)
}

func mustMerge(t *testing.T, e *Engine, ctx MergeContext, fields ...Field) *Result {
	t.Helper()
	res, err := e.Merge(NewFieldMap(fields...), ctx)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

// mockChronology registers Century/DecadeOfCentury/YearOfDecade/YearOfCentury
// on top of the ISO year.
type mockChronology struct {
	century         *chrono.Rule
	decadeOfCentury *chrono.Rule
	yearOfDecade    *chrono.Rule
	yearOfCentury   *chrono.Rule
}

func newMockChronology(t *testing.T, reg *registry.Registry) mockChronology {
	t.Helper()
	rule := func(name string, unit, rng chrono.PeriodUnit, min, max int64) *chrono.Rule {
		r, err := chrono.NewRule("Mock", name, unit, rng, min, max)
		require.NoError(t, err)
		return r
	}
	mc := mockChronology{
		century:         rule("Century", chrono.Centuries, chrono.Forever, -1000, 1000),
		decadeOfCentury: rule("DecadeOfCentury", chrono.Decades, chrono.Centuries, 0, 9),
		yearOfDecade:    rule("YearOfDecade", chrono.Years, chrono.Decades, 0, 9),
		yearOfCentury:   rule("YearOfCentury", chrono.Years, chrono.Centuries, 0, 99),
	}
	_, err := reg.RegisterDivMod(chrono.Year, mc.century, mc.yearOfCentury, 100, registry.Bases{})
	require.NoError(t, err)
	_, err = reg.RegisterDivMod(mc.yearOfCentury, mc.decadeOfCentury, mc.yearOfDecade, 10, registry.Bases{})
	require.NoError(t, err)
	return mc
}
