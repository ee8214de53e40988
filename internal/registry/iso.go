package registry

import "github.com/ThreeTen/threetenbp-sub007/internal/chrono"

// NewISO returns a registry holding the ISO field hierarchy. Callers build it
// once and share it; it is safe for concurrent use and may be extended with
// custom chronology calculators.
func NewISO() *Registry {
	r := New()
	for _, c := range isoCalculators() {
		if _, err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

func isoCalculators() []Calculator {
	return []Calculator{
		mustDivMod(chrono.NanoOfDay, chrono.SecondOfDay, chrono.NanoOfSecond, 1_000_000_000, Bases{}),
		mustDivMod(chrono.SecondOfDay, chrono.MinuteOfDay, chrono.SecondOfMinute, 60, Bases{}),
		mustDivMod(chrono.MinuteOfDay, chrono.HourOfDay, chrono.MinuteOfHour, 60, Bases{}),
		mustDivMod(chrono.HourOfDay, chrono.AmPmOfDay, chrono.HourOfAmPm, 12, Bases{}),
		mustDivMod(chrono.ZeroEpochMonth, chrono.Year, chrono.MonthOfYear, 12, Bases{Small: 1}),
		mustDivMod(chrono.MonthOfYear, chrono.QuarterOfYear, chrono.MonthOfQuarter, 3, Bases{Parent: 1, Large: 1, Small: 1}),
		mustBitPack(chrono.PackedEpochMonthDay, chrono.ZeroEpochMonth, chrono.DayOfMonth, 5),
		mustBitPack(chrono.PackedYearDay, chrono.Year, chrono.DayOfYear, 9),
	}
}

func mustDivMod(parent, large, small *chrono.Rule, divisor int64, bases Bases) Calculator {
	c, err := NewDivMod(parent, large, small, divisor, bases)
	if err != nil {
		panic(err)
	}
	return c
}

func mustBitPack(parent, large, small *chrono.Rule, bits uint) Calculator {
	c, err := NewBitPack(parent, large, small, bits)
	if err != nil {
		panic(err)
	}
	return c
}
