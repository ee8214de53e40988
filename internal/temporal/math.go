package temporal

// FloorDiv returns the quotient of a and b rounded towards negative infinity.
// b must be positive.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}

// FloorMod returns the modulus of a and b with the sign of b.
// b must be positive, so the result is always in [0, b).
func FloorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// IsLeapYear reports whether year is a leap year in the proleptic ISO calendar.
func IsLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// MonthLength returns the number of days in month (1-12).
func MonthLength(month int, leap bool) int {
	switch month {
	case 2:
		if leap {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// YearLength returns 366 for leap years and 365 otherwise.
func YearLength(year int64) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// monthStart holds the zero-based day-of-year of the first day of each month
// in a non-leap year.
var monthStart = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// firstDayOfYear returns the one-based day-of-year on which month starts.
func firstDayOfYear(month int, leap bool) int {
	d := monthStart[month] + 1
	if leap && month > 2 {
		d++
	}
	return d
}
