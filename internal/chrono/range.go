package chrono

import "github.com/ThreeTen/threetenbp-sub007/internal/temporal"

// Values supplies known field values for context-dependent range queries.
type Values interface {
	Get(r *Rule) (int64, bool)
}

// ValueRange is the inclusive range of valid values for a field in context.
type ValueRange struct {
	Min int64
	Max int64
}

// IsValid reports whether v lies in the range.
func (vr ValueRange) IsValid(v int64) bool { return v >= vr.Min && v <= vr.Max }

// Check returns a *RangeError for rule when v lies outside the range.
func (vr ValueRange) Check(r *Rule, v int64) error {
	if !vr.IsValid(v) {
		return &RangeError{Rule: r, Value: v, Min: vr.Min, Max: vr.Max}
	}
	return nil
}

// RangeOf returns the valid range of r given the other known values. The
// day-of-month range depends on the month and, for February, the year; the
// day-of-year range on the year; week ranges on the month or week-based year.
// Without enough context it falls back to [Min, Max].
func RangeOf(r *Rule, known Values) ValueRange {
	full := ValueRange{Min: r.min, Max: r.max}
	if known == nil {
		return full
	}
	switch r {
	case DayOfMonth:
		moy, ok := knownMonth(known)
		if !ok {
			return full
		}
		if moy == 2 {
			y, ok := knownYear(known)
			if !ok {
				return ValueRange{Min: 1, Max: 29}
			}
			return ValueRange{Min: 1, Max: int64(temporal.MonthLength(2, temporal.IsLeapYear(y)))}
		}
		return ValueRange{Min: 1, Max: int64(temporal.MonthLength(int(moy), false))}
	case DayOfYear:
		if y, ok := knownYear(known); ok {
			return ValueRange{Min: 1, Max: int64(temporal.YearLength(y))}
		}
	case AlignedWeekOfMonth:
		if moy, ok := knownMonth(known); ok && moy == 2 {
			if y, ok := knownYear(known); ok && !temporal.IsLeapYear(y) {
				return ValueRange{Min: 1, Max: 4}
			}
		}
	case WeekOfWeekBasedYear:
		if wby, ok := known.Get(WeekBasedYear); ok && WeekBasedYear.IsValid(wby) {
			return ValueRange{Min: 1, Max: WeeksInWeekBasedYear(wby)}
		}
	}
	return full
}

func knownMonth(known Values) (int64, bool) {
	if moy, ok := known.Get(MonthOfYear); ok && MonthOfYear.IsValid(moy) {
		return moy, true
	}
	if zem, ok := known.Get(ZeroEpochMonth); ok && ZeroEpochMonth.IsValid(zem) {
		return floorMod(zem, 12) + 1, true
	}
	return 0, false
}

func knownYear(known Values) (int64, bool) {
	if y, ok := known.Get(Year); ok && Year.IsValid(y) {
		return y, true
	}
	if zem, ok := known.Get(ZeroEpochMonth); ok && ZeroEpochMonth.IsValid(zem) {
		return floorDiv(zem, 12), true
	}
	return 0, false
}
