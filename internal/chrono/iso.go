package chrono

import (
	"slices"

	"golang.org/x/text/cases"

	"github.com/ThreeTen/threetenbp-sub007/internal/temporal"
)

// ISO is the chronology name of the built-in rules.
const ISO = "ISO"

var (
	minEpochDay = temporal.MustDate(temporal.MinYear, 1, 1).EpochDay()
	maxEpochDay = temporal.MustDate(temporal.MaxYear, 12, 31).EpochDay()
)

// ISO time rules.
var (
	NanoOfSecond    = isoRule("NanoOfSecond", Nanos, Seconds, 0, temporal.NanosPerSecond-1)
	NanoOfDay       = isoRule("NanoOfDay", Nanos, Days, 0, temporal.NanosPerDay-1)
	MilliOfDay      = isoRule("MilliOfDay", Millis, Days, 0, temporal.SecondsPerDay*1000-1)
	SecondOfMinute  = isoRule("SecondOfMinute", Seconds, Minutes, 0, 59)
	SecondOfDay     = isoRule("SecondOfDay", Seconds, Days, 0, temporal.SecondsPerDay-1)
	MinuteOfHour    = isoRule("MinuteOfHour", Minutes, Hours, 0, 59)
	MinuteOfDay     = isoRule("MinuteOfDay", Minutes, Days, 0, 24*60-1)
	HourOfAmPm      = isoRule("HourOfAmPm", Hours, HalfDays, 0, 11)
	ClockHourOfAmPm = isoRule("ClockHourOfAmPm", Hours, HalfDays, 1, 12, WithBase(HourOfAmPm))
	HourOfDay       = isoRule("HourOfDay", Hours, Days, 0, 23)
	ClockHourOfDay  = isoRule("ClockHourOfDay", Hours, Days, 1, 24, WithBase(HourOfDay))
	AmPmOfDay       = isoRule("AmPmOfDay", HalfDays, Days, 0, 1)
)

// ISO date rules.
var (
	DayOfWeek           = isoRule("DayOfWeek", Days, Weeks, 1, 7)
	DayOfMonth          = isoRule("DayOfMonth", Days, Months, 1, 31, WithSmallestMaximum(28))
	DayOfYear           = isoRule("DayOfYear", Days, Years, 1, 366, WithSmallestMaximum(365))
	EpochDay            = isoRule("EpochDay", Days, Forever, minEpochDay, maxEpochDay)
	AlignedWeekOfMonth  = isoRule("AlignedWeekOfMonth", Weeks, Months, 1, 5, WithSmallestMaximum(4))
	AlignedWeekOfYear   = isoRule("AlignedWeekOfYear", Weeks, Years, 1, 53)
	WeekOfWeekBasedYear = isoRule("WeekOfWeekBasedYear", Weeks, WeekBasedYears, 1, 53, WithSmallestMaximum(52))
	WeekBasedYear       = isoRule("WeekBasedYear", WeekBasedYears, Forever, temporal.MinYear, temporal.MaxYear)
	MonthOfQuarter      = isoRule("MonthOfQuarter", Months, Quarters, 1, 3)
	MonthOfYear         = isoRule("MonthOfYear", Months, Years, 1, 12)
	QuarterOfYear       = isoRule("QuarterOfYear", Quarters, Years, 1, 4)
	ZeroEpochMonth      = isoRule("ZeroEpochMonth", Months, Forever, temporal.MinYear*12, temporal.MaxYear*12+11)
	Year                = isoRule("Year", Years, Forever, temporal.MinYear, temporal.MaxYear)
	PackedEpochMonthDay = isoRule("PackedEpochMonthDay", Days, Forever,
		PackEpochMonthDay(temporal.MinYear, 1, 1), PackEpochMonthDay(temporal.MaxYear, 12, 31))
	PackedYearDay = isoRule("PackedYearDay", Days, Forever,
		PackYearDay(temporal.MinYear, 1), PackYearDay(temporal.MaxYear, 366))
)

// ISO instant and offset rules.
var (
	EpochSecond   = isoRule("EpochSecond", Seconds, Forever, minEpochDay*temporal.SecondsPerDay, (maxEpochDay+1)*temporal.SecondsPerDay-1)
	OffsetSeconds = isoRule("OffsetSeconds", Seconds, Days, -temporal.MaxOffsetSeconds, temporal.MaxOffsetSeconds)
)

func isoRule(name string, unit, rng PeriodUnit, min, max int64, opts ...RuleOption) *Rule {
	r, err := NewRule(ISO, name, unit, rng, min, max, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

var isoRules = []*Rule{
	NanoOfSecond, NanoOfDay, MilliOfDay, SecondOfMinute, SecondOfDay,
	MinuteOfHour, MinuteOfDay, HourOfAmPm, ClockHourOfAmPm, HourOfDay,
	ClockHourOfDay, AmPmOfDay, DayOfWeek, DayOfMonth, DayOfYear, EpochDay,
	AlignedWeekOfMonth, AlignedWeekOfYear, WeekOfWeekBasedYear, WeekBasedYear,
	MonthOfQuarter, MonthOfYear, QuarterOfYear, ZeroEpochMonth, Year,
	PackedEpochMonthDay, PackedYearDay, EpochSecond, OffsetSeconds,
}

var isoIndex = func() map[string]*Rule {
	fold := cases.Fold()
	idx := make(map[string]*Rule, len(isoRules)*2)
	for _, r := range isoRules {
		idx[fold.String(r.Name())] = r
		idx[fold.String(r.ID())] = r
	}
	return idx
}()

// ISORules returns the built-in rules in Compare order.
func ISORules() []*Rule {
	out := slices.Clone(isoRules)
	slices.SortFunc(out, Compare)
	return out
}

// Lookup finds a built-in rule by name or ID, ignoring case.
func Lookup(name string) (*Rule, bool) {
	r, ok := isoIndex[cases.Fold().String(name)]
	return r, ok
}
