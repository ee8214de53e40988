package engine

import (
	"fmt"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
	"github.com/ThreeTen/threetenbp-sub007/internal/temporal"
)

// isoHooks returns the dispatch table for the built-in rules. Each entry
// merges its rule with whatever companions are present.
func isoHooks() map[*chrono.Rule]Hook {
	return map[*chrono.Rule]Hook{
		chrono.ClockHourOfDay:  mergeClockHourOfDay,
		chrono.ClockHourOfAmPm: mergeClockHourOfAmPm,

		chrono.HourOfDay: timeHook(chrono.HourOfDay, temporal.NanosPerHour,
			chrono.MinuteOfHour, chrono.MinuteOfDay, chrono.SecondOfMinute, chrono.SecondOfDay,
			chrono.MilliOfDay, chrono.NanoOfSecond, chrono.NanoOfDay),
		chrono.MinuteOfDay: timeHook(chrono.MinuteOfDay, temporal.NanosPerMinute,
			chrono.SecondOfMinute, chrono.SecondOfDay, chrono.MilliOfDay, chrono.NanoOfSecond, chrono.NanoOfDay),
		chrono.SecondOfDay: timeHook(chrono.SecondOfDay, temporal.NanosPerSecond,
			chrono.NanoOfSecond, chrono.NanoOfDay, chrono.MilliOfDay),
		chrono.MilliOfDay: timeHook(chrono.MilliOfDay, 1_000_000, chrono.NanoOfDay),
		chrono.NanoOfDay:  timeHook(chrono.NanoOfDay, 1),

		chrono.DayOfMonth:          mergeDayOfMonth,
		chrono.DayOfYear:           mergeDayOfYear,
		chrono.DayOfWeek:           mergeDayOfWeek,
		chrono.EpochDay:            mergeEpochDay,
		chrono.PackedEpochMonthDay: mergePackedEpochMonthDay,
		chrono.PackedYearDay:       mergePackedYearDay,

		chrono.EpochSecond:   mergeEpochSecond,
		chrono.OffsetSeconds: mergeOffsetSeconds,
	}
}

// =============================================================================
// Time
// =============================================================================

func mergeClockHourOfDay(m *Merger) error {
	v, err := m.Value(chrono.ClockHourOfDay)
	if err != nil {
		return err
	}
	if v == 24 {
		v = 0
	}
	if err := m.StoreField(chrono.HourOfDay, v); err != nil {
		return err
	}
	m.MarkProcessed(chrono.ClockHourOfDay)
	return nil
}

func mergeClockHourOfAmPm(m *Merger) error {
	v, err := m.Value(chrono.ClockHourOfAmPm)
	if err != nil {
		return err
	}
	if v == 12 {
		v = 0
	}
	if err := m.StoreField(chrono.HourOfAmPm, v); err != nil {
		return err
	}
	m.MarkProcessed(chrono.ClockHourOfAmPm)
	return nil
}

// timeHook builds a time from rule, counted in nanosPerUnit, once no finer
// field that could still refine it is waiting to be merged. A lenient value
// outside the day wraps and the whole days go to overflow.
//
// When a finer field has already produced the time, rule only has to agree
// with that time truncated to its unit.
func timeHook(rule *chrono.Rule, nanosPerUnit int64, finer ...*chrono.Rule) Hook {
	return func(m *Merger) error {
		for _, f := range finer {
			if m.Has(f) && !m.IsProcessed(f) {
				return nil
			}
		}
		v, err := m.Value(rule)
		if err != nil {
			return err
		}
		t, days := temporal.SplitNanoOfDay(v * nanosPerUnit)
		if existing, ok := m.Time(); ok {
			nod := existing.NanoOfDay()
			if truncated, _ := temporal.SplitNanoOfDay(nod - temporal.FloorMod(nod, nanosPerUnit)); truncated == t {
				t = existing
			}
		}
		if err := m.StoreTime(rule, t, days); err != nil {
			return err
		}
		m.MarkProcessed(rule)
		return nil
	}
}

// =============================================================================
// Date
// =============================================================================

// yearMonth reads the year and month from Year plus MonthOfYear, or from
// ZeroEpochMonth. ok is false when neither pair is present.
func yearMonth(m *Merger) (year, month int64, used []*chrono.Rule, ok bool, err error) {
	switch {
	case m.Has(chrono.Year) && m.Has(chrono.MonthOfYear):
		if year, err = m.Value(chrono.Year); err != nil {
			return 0, 0, nil, false, err
		}
		if month, err = m.Value(chrono.MonthOfYear); err != nil {
			return 0, 0, nil, false, err
		}
		return year, month, []*chrono.Rule{chrono.Year, chrono.MonthOfYear}, true, nil
	case m.Has(chrono.ZeroEpochMonth):
		zem, err := m.Value(chrono.ZeroEpochMonth)
		if err != nil {
			return 0, 0, nil, false, err
		}
		return temporal.FloorDiv(zem, 12), temporal.FloorMod(zem, 12) + 1,
			[]*chrono.Rule{chrono.ZeroEpochMonth}, true, nil
	}
	return 0, 0, nil, false, nil
}

// monthStart returns the epoch day of the first of the month, carrying a
// month outside 1-12 into neighbouring years.
func monthStart(year, month int64) int64 {
	zem := year*12 + month - 1
	return chrono.EpochDayOfMonthStart(temporal.FloorDiv(zem, 12), temporal.FloorMod(zem, 12)+1)
}

func (m *Merger) storeEpochDay(cause *chrono.Rule, ed int64, used ...*chrono.Rule) error {
	d, err := temporal.DateOfEpochDay(ed)
	if err != nil {
		return m.dateError(cause, err)
	}
	return m.storeDateUsing(cause, d, used...)
}

func (m *Merger) storeDateUsing(cause *chrono.Rule, d temporal.Date, used ...*chrono.Rule) error {
	if err := m.StoreDate(cause, d); err != nil {
		return err
	}
	m.MarkProcessed(cause)
	m.MarkProcessed(used...)
	return nil
}

func mergeDayOfMonth(m *Merger) error {
	year, month, used, ok, err := yearMonth(m)
	if err != nil || !ok {
		return err
	}
	dom, err := m.Value(chrono.DayOfMonth)
	if err != nil {
		return err
	}
	if m.Strict() {
		d, err := temporal.DateOf(year, int(month), int(dom))
		if err != nil {
			return m.dateError(chrono.DayOfMonth, err)
		}
		return m.storeDateUsing(chrono.DayOfMonth, d, used...)
	}
	return m.storeEpochDay(chrono.DayOfMonth, monthStart(year, month)+dom-1, used...)
}

func mergeDayOfYear(m *Merger) error {
	if !m.Has(chrono.Year) {
		return nil
	}
	year, err := m.Value(chrono.Year)
	if err != nil {
		return err
	}
	doy, err := m.Value(chrono.DayOfYear)
	if err != nil {
		return err
	}
	if m.Strict() {
		d, err := temporal.DateOfYearDay(year, int(doy))
		if err != nil {
			return m.dateError(chrono.DayOfYear, err)
		}
		return m.storeDateUsing(chrono.DayOfYear, d, chrono.Year)
	}
	return m.storeEpochDay(chrono.DayOfYear, monthStart(year, 1)+doy-1, chrono.Year)
}

func mergeEpochDay(m *Merger) error {
	ed, err := m.Value(chrono.EpochDay)
	if err != nil {
		return err
	}
	return m.storeEpochDay(chrono.EpochDay, ed)
}

func mergePackedEpochMonthDay(m *Merger) error {
	p, err := m.Value(chrono.PackedEpochMonthDay)
	if err != nil {
		return err
	}
	if m.Strict() {
		y, mo, dom := chrono.UnpackEpochMonthDay(p)
		d, err := temporal.DateOf(y, int(mo), int(dom))
		if err != nil {
			return m.dateError(chrono.PackedEpochMonthDay, err)
		}
		return m.storeDateUsing(chrono.PackedEpochMonthDay, d)
	}
	return m.storeEpochDay(chrono.PackedEpochMonthDay, chrono.EpochDayFromPackedEpochMonthDay(p))
}

func mergePackedYearDay(m *Merger) error {
	p, err := m.Value(chrono.PackedYearDay)
	if err != nil {
		return err
	}
	if m.Strict() {
		y, doy := chrono.UnpackYearDay(p)
		d, err := temporal.DateOfYearDay(y, int(doy))
		if err != nil {
			return m.dateError(chrono.PackedYearDay, err)
		}
		return m.storeDateUsing(chrono.PackedYearDay, d)
	}
	return m.storeEpochDay(chrono.PackedYearDay, chrono.EpochDayFromPackedYearDay(p))
}

// mergeDayOfWeek resolves week-based dates: ISO week date, aligned week of
// year, or aligned week of month. Without a week field it does nothing and
// DayOfWeek is later checked against the merged date.
func mergeDayOfWeek(m *Merger) error {
	switch {
	case m.Has(chrono.WeekBasedYear) && m.Has(chrono.WeekOfWeekBasedYear):
		return mergeWeekDate(m)
	case m.Has(chrono.Year) && m.Has(chrono.AlignedWeekOfYear):
		return mergeAlignedWeekOfYear(m)
	case m.Has(chrono.AlignedWeekOfMonth):
		return mergeAlignedWeekOfMonth(m)
	}
	return nil
}

func mergeWeekDate(m *Merger) error {
	dow, err := m.Value(chrono.DayOfWeek)
	if err != nil {
		return err
	}
	wby, err := m.Value(chrono.WeekBasedYear)
	if err != nil {
		return err
	}
	week, err := m.Value(chrono.WeekOfWeekBasedYear)
	if err != nil {
		return err
	}
	if m.Strict() {
		if err := chrono.RangeOf(chrono.WeekOfWeekBasedYear, m.fields).Check(chrono.WeekOfWeekBasedYear, week); err != nil {
			return newRangeError(chrono.WeekOfWeekBasedYear, err)
		}
	}
	return m.storeEpochDay(chrono.DayOfWeek, chrono.EpochDayFromWeekDate(wby, week, dow),
		chrono.WeekBasedYear, chrono.WeekOfWeekBasedYear)
}

func mergeAlignedWeekOfYear(m *Merger) error {
	dow, err := m.Value(chrono.DayOfWeek)
	if err != nil {
		return err
	}
	year, err := m.Value(chrono.Year)
	if err != nil {
		return err
	}
	week, err := m.Value(chrono.AlignedWeekOfYear)
	if err != nil {
		return err
	}
	ed := chrono.EpochDayFromAlignedWeek(monthStart(year, 1), week, dow)
	if m.Strict() {
		if got, _ := chrono.Extract(chrono.EpochDay, ed, chrono.Year); got != year {
			return outsideError(chrono.AlignedWeekOfYear, week, "year", year)
		}
	}
	return m.storeEpochDay(chrono.DayOfWeek, ed, chrono.Year, chrono.AlignedWeekOfYear)
}

func mergeAlignedWeekOfMonth(m *Merger) error {
	year, month, used, ok, err := yearMonth(m)
	if err != nil || !ok {
		return err
	}
	dow, err := m.Value(chrono.DayOfWeek)
	if err != nil {
		return err
	}
	week, err := m.Value(chrono.AlignedWeekOfMonth)
	if err != nil {
		return err
	}
	first := monthStart(year, month)
	ed := chrono.EpochDayFromAlignedWeek(first, week, dow)
	if m.Strict() {
		if got, _ := chrono.Extract(chrono.EpochDay, ed, chrono.ZeroEpochMonth); got != year*12+month-1 {
			return outsideError(chrono.AlignedWeekOfMonth, week, "month", month)
		}
	}
	return m.storeEpochDay(chrono.DayOfWeek, ed, append(used, chrono.AlignedWeekOfMonth)...)
}

func outsideError(rule *chrono.Rule, week int64, unit string, value int64) error {
	return &MergeError{
		Code:    ErrCodeRangeViolation,
		Message: fmt.Sprintf("%s %d with the given day-of-week falls outside %s %d", rule.Name(), week, unit, value),
		Rule:    rule,
	}
}

// =============================================================================
// Instant and offset
// =============================================================================

func mergeOffsetSeconds(m *Merger) error {
	v, err := m.Value(chrono.OffsetSeconds)
	if err != nil {
		return err
	}
	o, err := temporal.OffsetOfSeconds(int(v))
	if err != nil {
		return m.dateError(chrono.OffsetSeconds, err)
	}
	if err := m.StoreOffset(chrono.OffsetSeconds, o); err != nil {
		return err
	}
	m.MarkProcessed(chrono.OffsetSeconds)
	return nil
}

// mergeEpochSecond produces date, time and offset from an instant. The offset
// comes from OffsetSeconds when present and is UTC otherwise. NanoOfSecond,
// when present, supplies the fraction.
func mergeEpochSecond(m *Merger) error {
	es, err := m.Value(chrono.EpochSecond)
	if err != nil {
		return err
	}
	used := []*chrono.Rule{chrono.EpochSecond}

	off := temporal.UTC
	if m.Has(chrono.OffsetSeconds) {
		v, err := m.Value(chrono.OffsetSeconds)
		if err != nil {
			return err
		}
		if off, err = temporal.OffsetOfSeconds(int(v)); err != nil {
			return m.dateError(chrono.OffsetSeconds, err)
		}
		used = append(used, chrono.OffsetSeconds)
	}

	var nano int64
	if m.Has(chrono.NanoOfSecond) {
		if nano, err = m.Value(chrono.NanoOfSecond); err != nil {
			return err
		}
		es += temporal.FloorDiv(nano, temporal.NanosPerSecond)
		nano = temporal.FloorMod(nano, temporal.NanosPerSecond)
		used = append(used, chrono.NanoOfSecond)
	}

	dt, err := temporal.DateTimeOfEpochSecond(es, int(nano), off)
	if err != nil {
		return m.dateError(chrono.EpochSecond, err)
	}
	if err := m.StoreDate(chrono.EpochSecond, dt.Date); err != nil {
		return err
	}
	if err := m.StoreTime(chrono.EpochSecond, dt.Time, 0); err != nil {
		return err
	}
	if err := m.StoreOffset(chrono.EpochSecond, off); err != nil {
		return err
	}
	m.MarkProcessed(used...)
	return nil
}
