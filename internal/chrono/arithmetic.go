package chrono

import "github.com/ThreeTen/threetenbp-sub007/internal/temporal"

// daysZeroToEpoch is the number of days from 0000-01-01 to 1970-01-01.
const daysZeroToEpoch = 719_528

// daysPerCycle is the number of days in a 400 year cycle.
const daysPerCycle = 146_097

var (
	floorDiv = temporal.FloorDiv
	floorMod = temporal.FloorMod
)

// Clock converts a zero-based value into its clock presentation, where zero
// is shown as max (hour 0 is clock hour 24, or 12 on a half-day clock).
func Clock(v, max int64) int64 {
	if v == 0 {
		return max
	}
	return v
}

// Extract computes the value of rule to from a value of rule from.
// It returns false when to cannot be derived from from alone.
func Extract(from *Rule, value int64, to *Rule) (int64, bool) {
	if from == to {
		return value, true
	}
	switch from {
	case NanoOfDay:
		return fromNanoOfDay(value, to)
	case MilliOfDay:
		if to == NanoOfSecond {
			return floorMod(value, 1000) * 1_000_000, true
		}
		return fromSecondOfDay(floorDiv(value, 1000), to)
	case SecondOfDay:
		return fromSecondOfDay(value, to)
	case MinuteOfDay:
		return fromMinuteOfDay(value, to)
	case HourOfDay:
		return fromHourOfDay(value, to)
	case ClockHourOfDay:
		return fromHourOfDay(floorMod(value, 24), to)
	case HourOfAmPm:
		if to == ClockHourOfAmPm {
			return Clock(value, 12), true
		}
	case ClockHourOfAmPm:
		if to == HourOfAmPm {
			return floorMod(value, 12), true
		}
	case EpochDay:
		return fromEpochDay(value, to)
	case PackedEpochMonthDay:
		return fromPackedEpochMonthDay(value, to)
	case PackedYearDay:
		return fromPackedYearDay(value, to)
	case ZeroEpochMonth:
		return fromZeroEpochMonth(value, to)
	case MonthOfYear:
		return fromMonthOfYear(value, to)
	case DayOfMonth:
		if to == AlignedWeekOfMonth {
			return floorDiv(value-1, 7) + 1, true
		}
	case DayOfYear:
		if to == AlignedWeekOfYear {
			return floorDiv(value-1, 7) + 1, true
		}
	}
	return 0, false
}

func fromNanoOfDay(nod int64, to *Rule) (int64, bool) {
	switch to {
	case NanoOfSecond:
		return floorMod(nod, temporal.NanosPerSecond), true
	case MilliOfDay:
		return floorDiv(nod, 1_000_000), true
	}
	return fromSecondOfDay(floorDiv(nod, temporal.NanosPerSecond), to)
}

func fromSecondOfDay(sod int64, to *Rule) (int64, bool) {
	switch to {
	case SecondOfDay:
		return sod, true
	case SecondOfMinute:
		return floorMod(sod, 60), true
	}
	return fromMinuteOfDay(floorDiv(sod, 60), to)
}

func fromMinuteOfDay(mod int64, to *Rule) (int64, bool) {
	switch to {
	case MinuteOfDay:
		return mod, true
	case MinuteOfHour:
		return floorMod(mod, 60), true
	}
	return fromHourOfDay(floorDiv(mod, 60), to)
}

func fromHourOfDay(hod int64, to *Rule) (int64, bool) {
	switch to {
	case HourOfDay:
		return hod, true
	case ClockHourOfDay:
		return Clock(hod, 24), true
	case AmPmOfDay:
		return floorDiv(hod, 12), true
	case HourOfAmPm:
		return floorMod(hod, 12), true
	case ClockHourOfAmPm:
		return Clock(floorMod(hod, 12), 12), true
	}
	return 0, false
}

func fromEpochDay(ed int64, to *Rule) (int64, bool) {
	if !EpochDay.IsValid(ed) {
		return 0, false
	}
	switch to {
	case DayOfWeek:
		return floorMod(ed+3, 7) + 1, true
	case WeekBasedYear:
		wby, _ := isoWeek(ed)
		return wby, true
	case WeekOfWeekBasedYear:
		_, week := isoWeek(ed)
		return week, true
	case PackedYearDay, DayOfYear, AlignedWeekOfYear:
		return fromPackedYearDay(PackedYearDayFromEpochDay(ed), to)
	}
	return fromPackedEpochMonthDay(PackedEpochMonthDayFromEpochDay(ed), to)
}

func fromPackedEpochMonthDay(pemd int64, to *Rule) (int64, bool) {
	switch to {
	case PackedEpochMonthDay:
		return pemd, true
	case DayOfMonth:
		return pemd & 31, true
	case AlignedWeekOfMonth:
		return floorDiv((pemd&31)-1, 7) + 1, true
	case EpochDay:
		return EpochDayFromPackedEpochMonthDay(pemd), true
	case DayOfWeek, WeekBasedYear, WeekOfWeekBasedYear, PackedYearDay, DayOfYear, AlignedWeekOfYear:
		return fromEpochDay(EpochDayFromPackedEpochMonthDay(pemd), to)
	}
	return fromZeroEpochMonth(pemd>>5, to)
}

func fromPackedYearDay(pyd int64, to *Rule) (int64, bool) {
	switch to {
	case PackedYearDay:
		return pyd, true
	case Year:
		return pyd >> 9, true
	case DayOfYear:
		return pyd & 511, true
	case AlignedWeekOfYear:
		return floorDiv((pyd&511)-1, 7) + 1, true
	case EpochDay:
		return EpochDayFromPackedYearDay(pyd), true
	}
	return fromPackedEpochMonthDay(PackedEpochMonthDayFromPackedYearDay(pyd), to)
}

func fromZeroEpochMonth(zem int64, to *Rule) (int64, bool) {
	switch to {
	case ZeroEpochMonth:
		return zem, true
	case Year:
		return floorDiv(zem, 12), true
	case MonthOfYear:
		return floorMod(zem, 12) + 1, true
	}
	return fromMonthOfYear(floorMod(zem, 12)+1, to)
}

func fromMonthOfYear(moy int64, to *Rule) (int64, bool) {
	switch to {
	case MonthOfYear:
		return moy, true
	case QuarterOfYear:
		return floorDiv(moy-1, 3) + 1, true
	case MonthOfQuarter:
		return floorMod(moy-1, 3) + 1, true
	}
	return 0, false
}

// PackEpochMonthDay packs a year, month and day-of-month into one value:
// the zero-based month count since 0000-01 shifted left by five bits, plus
// the day-of-month. Years before 0 give negative values.
func PackEpochMonthDay(year, month, dom int64) int64 {
	return ((year*12 + month - 1) << 5) + dom
}

// UnpackEpochMonthDay reverses PackEpochMonthDay.
func UnpackEpochMonthDay(pemd int64) (year, month, dom int64) {
	zem := pemd >> 5
	return floorDiv(zem, 12), floorMod(zem, 12) + 1, pemd & 31
}

// PackYearDay packs a year and day-of-year: the year shifted left by nine
// bits plus the day-of-year.
func PackYearDay(year, doy int64) int64 {
	return (year << 9) + doy
}

// UnpackYearDay reverses PackYearDay.
func UnpackYearDay(pyd int64) (year, doy int64) {
	return pyd >> 9, pyd & 511
}

// PackedEpochMonthDayFromEpochDay converts an epoch day to the packed
// epoch-month-day form.
func PackedEpochMonthDayFromEpochDay(epochDay int64) int64 {
	// Work in a March-based year so the leap day is the last day of the year.
	zeroDay := epochDay + daysZeroToEpoch - 60
	var adjust int64
	if zeroDay < 0 {
		cycles := (zeroDay+1)/daysPerCycle - 1
		adjust = cycles * 400
		zeroDay -= cycles * daysPerCycle
	}
	yearEst := (400*zeroDay + 591) / daysPerCycle
	doyEst := zeroDay - (365*yearEst + yearEst/4 - yearEst/100 + yearEst/400)
	if doyEst < 0 {
		yearEst--
		doyEst = zeroDay - (365*yearEst + yearEst/4 - yearEst/100 + yearEst/400)
	}
	yearEst += adjust
	marchMonth0 := (doyEst*5 + 2) / 153
	month := (marchMonth0+2)%12 + 1
	dom := doyEst - (marchMonth0*306+5)/10 + 1
	yearEst += marchMonth0 / 10
	return PackEpochMonthDay(yearEst, month, dom)
}

// EpochDayFromPackedEpochMonthDay converts the packed form to an epoch day.
// The day-of-month is applied as an offset from the first of the month, so a
// packed day 0 or past the end of the month resolves leniently.
func EpochDayFromPackedEpochMonthDay(pemd int64) int64 {
	y, m, dom := UnpackEpochMonthDay(pemd)
	return epochDayOfMonthStart(y, m) + dom - 1
}

// PackedYearDayFromEpochDay converts an epoch day to the packed year-day form.
func PackedYearDayFromEpochDay(epochDay int64) int64 {
	return PackedYearDayFromPackedEpochMonthDay(PackedEpochMonthDayFromEpochDay(epochDay))
}

// EpochDayFromPackedYearDay converts the packed year-day form to an epoch day.
func EpochDayFromPackedYearDay(pyd int64) int64 {
	y, doy := UnpackYearDay(pyd)
	return epochDayOfMonthStart(y, 1) + doy - 1
}

// PackedYearDayFromPackedEpochMonthDay converts between the packed forms.
func PackedYearDayFromPackedEpochMonthDay(pemd int64) int64 {
	y, m, dom := UnpackEpochMonthDay(pemd)
	return PackYearDay(y, dayOfYearOfMonthStart(y, m)+dom-1)
}

// PackedEpochMonthDayFromPackedYearDay converts between the packed forms.
func PackedEpochMonthDayFromPackedYearDay(pyd int64) int64 {
	return PackedEpochMonthDayFromEpochDay(EpochDayFromPackedYearDay(pyd))
}

// epochDayOfMonthStart returns the epoch day of the first day of the month.
func epochDayOfMonthStart(y, m int64) int64 {
	total := 365 * y
	if y >= 0 {
		total += (y+3)/4 - (y+99)/100 + (y+399)/400
	} else {
		total -= y/-4 - y/-100 + y/-400
	}
	total += (367*m - 362) / 12
	if m > 2 {
		total--
		if !temporal.IsLeapYear(y) {
			total--
		}
	}
	return total - daysZeroToEpoch
}

// dayOfYearOfMonthStart returns the one-based day-of-year of the first of
// the month.
func dayOfYearOfMonthStart(y, m int64) int64 {
	doy := (367*m-362)/12 + 1
	if m > 2 {
		doy--
		if !temporal.IsLeapYear(y) {
			doy--
		}
	}
	return doy
}
