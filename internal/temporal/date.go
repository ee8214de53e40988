package temporal

import "fmt"

// Year bounds supported by Date.
const (
	MinYear int64 = -999_999_999
	MaxYear int64 = 999_999_999
)

// daysZeroToEpoch is the number of days from 0000-03-01 to 1970-01-01.
const daysZeroToEpoch = 719_468

// daysPerCycle is the number of days in a 400 year cycle.
const daysPerCycle = 146_097

var (
	minEpochDay = daysFromCivil(MinYear, 1, 1)
	maxEpochDay = daysFromCivil(MaxYear, 12, 31)
)

// Date is a proleptic ISO calendar date without time or offset.
// The zero value is not a valid date; use DateOf and friends.
type Date struct {
	year  int64
	month int
	day   int
}

// DateOf returns the date for year, month and day, validating every part.
func DateOf(year int64, month, day int) (Date, error) {
	if err := checkYear(year); err != nil {
		return Date{}, err
	}
	if month < 1 || month > 12 {
		return Date{}, &InvalidValueError{Field: "MonthOfYear", Value: int64(month), Min: 1, Max: 12}
	}
	if n := MonthLength(month, IsLeapYear(year)); day < 1 || day > n {
		return Date{}, &InvalidValueError{Field: "DayOfMonth", Value: int64(day), Min: 1, Max: int64(n)}
	}
	return Date{year: year, month: month, day: day}, nil
}

// MustDate is like DateOf but panics on invalid input. Intended for tests and
// package-level tables.
func MustDate(year int64, month, day int) Date {
	d, err := DateOf(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOfYearDay returns the date for the one-based day-of-year in year.
func DateOfYearDay(year int64, dayOfYear int) (Date, error) {
	if err := checkYear(year); err != nil {
		return Date{}, err
	}
	leap := IsLeapYear(year)
	if n := YearLength(year); dayOfYear < 1 || dayOfYear > n {
		return Date{}, &InvalidValueError{Field: "DayOfYear", Value: int64(dayOfYear), Min: 1, Max: int64(n)}
	}
	month := 12
	for month > 1 && firstDayOfYear(month, leap) > dayOfYear {
		month--
	}
	return Date{year: year, month: month, day: dayOfYear - firstDayOfYear(month, leap) + 1}, nil
}

// DateOfEpochDay returns the date that is epochDay days after 1970-01-01.
func DateOfEpochDay(epochDay int64) (Date, error) {
	if epochDay < minEpochDay || epochDay > maxEpochDay {
		return Date{}, &InvalidValueError{Field: "EpochDay", Value: epochDay, Min: minEpochDay, Max: maxEpochDay}
	}
	y, m, d := civilFromDays(epochDay)
	return Date{year: y, month: m, day: d}, nil
}

func checkYear(year int64) error {
	if year < MinYear || year > MaxYear {
		return &InvalidValueError{Field: "Year", Value: year, Min: MinYear, Max: MaxYear}
	}
	return nil
}

// Year returns the proleptic year.
func (d Date) Year() int64 { return d.year }

// Month returns the month-of-year, 1 to 12.
func (d Date) Month() int { return d.month }

// Day returns the day-of-month.
func (d Date) Day() int { return d.day }

// IsLeapYear reports whether the date's year is a leap year.
func (d Date) IsLeapYear() bool { return IsLeapYear(d.year) }

// LengthOfMonth returns the number of days in the date's month.
func (d Date) LengthOfMonth() int { return MonthLength(d.month, d.IsLeapYear()) }

// DayOfYear returns the one-based day-of-year.
func (d Date) DayOfYear() int {
	return firstDayOfYear(d.month, d.IsLeapYear()) + d.day - 1
}

// DayOfWeek returns the ISO day-of-week, Monday=1 to Sunday=7.
func (d Date) DayOfWeek() int {
	return int(FloorMod(d.EpochDay()+3, 7)) + 1
}

// EpochDay returns the number of days since 1970-01-01.
func (d Date) EpochDay() int64 {
	return daysFromCivil(d.year, d.month, d.day)
}

// PlusDays returns the date n days later. n may be negative.
func (d Date) PlusDays(n int64) (Date, error) {
	if n == 0 {
		return d, nil
	}
	ed := d.EpochDay()
	if (n > 0 && n > maxEpochDay-ed) || (n < 0 && n < minEpochDay-ed) {
		return Date{}, &InvalidValueError{Field: "EpochDay", Value: ed, Min: minEpochDay, Max: maxEpochDay}
	}
	return DateOfEpochDay(ed + n)
}

// Compare returns -1, 0 or +1 as d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	a, b := d.EpochDay(), o.EpochDay()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// String formats the date as ISO-8601, for example 2011-06-15.
// Years outside 0000-9999 carry an explicit sign.
func (d Date) String() string {
	switch {
	case d.year > 9999:
		return fmt.Sprintf("+%d-%02d-%02d", d.year, d.month, d.day)
	case d.year < 0:
		return fmt.Sprintf("-%04d-%02d-%02d", -d.year, d.month, d.day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// daysFromCivil converts a proleptic date to an epoch day using a calendar
// whose year starts in March, so the leap day is the last day of the year.
func daysFromCivil(y int64, m, d int) int64 {
	if m <= 2 {
		y--
	}
	era := FloorDiv(y, 400)
	yoe := y - era*400
	mp := int64((m + 9) % 12)
	doy := (153*mp+2)/5 + int64(d) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*daysPerCycle + doe - daysZeroToEpoch
}

func civilFromDays(epochDay int64) (int64, int, int) {
	z := epochDay + daysZeroToEpoch
	era := FloorDiv(z, daysPerCycle)
	doe := z - era*daysPerCycle
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := int(doy - (153*mp+2)/5 + 1)
	m := int(mp + 3)
	if m > 12 {
		m -= 12
	}
	if m <= 2 {
		y++
	}
	return y, m, d
}
