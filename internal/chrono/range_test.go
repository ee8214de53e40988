package chrono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThreeTen/threetenbp-sub007/internal/temporal"
)

type values map[*Rule]int64

func (v values) Get(r *Rule) (int64, bool) {
	x, ok := v[r]
	return x, ok
}

func TestRangeOf_FebruaryLeapYears(t *testing.T) {
	for _, y := range []int64{1600, 2000, 2004} {
		vr := RangeOf(DayOfMonth, values{Year: y, MonthOfYear: 2})
		assert.Equal(t, int64(29), vr.Max, "year %d", y)
		assert.True(t, vr.IsValid(29))
	}
	for _, y := range []int64{1700, 1800, 1900, 2001} {
		vr := RangeOf(DayOfMonth, values{Year: y, MonthOfYear: 2})
		assert.Equal(t, int64(28), vr.Max, "year %d", y)
		assert.Error(t, vr.Check(DayOfMonth, 29))
	}
}

func TestRangeOf_DayOfMonthWithoutYear(t *testing.T) {
	assert.Equal(t, ValueRange{Min: 1, Max: 29}, RangeOf(DayOfMonth, values{MonthOfYear: 2}))
	assert.Equal(t, ValueRange{Min: 1, Max: 30}, RangeOf(DayOfMonth, values{MonthOfYear: 6}))
	assert.Equal(t, ValueRange{Min: 1, Max: 31}, RangeOf(DayOfMonth, values{}))
}

func TestRangeOf_FromZeroEpochMonth(t *testing.T) {
	vr := RangeOf(DayOfMonth, values{ZeroEpochMonth: 1900*12 + 1})
	assert.Equal(t, int64(28), vr.Max)
}

func TestRangeOf_DayOfYear(t *testing.T) {
	assert.Equal(t, int64(366), RangeOf(DayOfYear, values{Year: 2000}).Max)
	assert.Equal(t, int64(365), RangeOf(DayOfYear, values{Year: 1900}).Max)
}

func TestRangeOf_WeekOfWeekBasedYear(t *testing.T) {
	assert.Equal(t, int64(53), RangeOf(WeekOfWeekBasedYear, values{WeekBasedYear: 2009}).Max)
	assert.Equal(t, int64(52), RangeOf(WeekOfWeekBasedYear, values{WeekBasedYear: 2011}).Max)
}

func TestDeriveFrom(t *testing.T) {
	d := temporal.MustDate(2011, 6, 15)
	tm := temporal.MustTime(21, 0, 0, 0)
	off := temporal.MustOffset(3600)

	v, ok := DeriveFrom(DayOfWeek, &d, nil, nil)
	require.True(t, ok)
	assert.Equal(t, int64(3), v)

	v, ok = DeriveFrom(AmPmOfDay, nil, &tm, nil)
	require.True(t, ok)
	assert.Equal(t, int64(1), v)

	v, ok = DeriveFrom(EpochSecond, &d, &tm, &off)
	require.True(t, ok)
	assert.Equal(t, temporal.DateTimeOf(d, tm).EpochSecond(off), v)

	_, ok = DeriveFrom(EpochSecond, &d, &tm, nil)
	assert.False(t, ok)

	_, ok = DeriveFrom(HourOfDay, &d, nil, nil)
	assert.False(t, ok)

	custom, err := NewRule("Mock", "Century", Centuries, Forever, -100, 100)
	require.NoError(t, err)
	_, ok = DeriveFrom(custom, &d, &tm, &off)
	assert.False(t, ok)
}
