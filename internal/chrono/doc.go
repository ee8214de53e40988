// Package chrono defines field rules and the arithmetic between them.
//
// A Rule names one calendar field (DayOfMonth, HourOfDay, ...) together with
// its unit, range and bounds. Rules are created once and compared by pointer
// identity; the ISO rules are package-level singletons and custom chronologies
// create their own with NewRule.
//
// The arithmetic layer answers "given a value of rule A, what is the value of
// rule B?" for the ISO hierarchy:
//
//	NanoOfDay -> SecondOfDay -> MinuteOfDay -> HourOfDay -> AmPmOfDay / HourOfAmPm
//	EpochDay  -> PackedEpochMonthDay -> ZeroEpochMonth -> Year / MonthOfYear
//	          -> PackedYearDay       -> Year / DayOfYear
//
// Unrelated pairs report false rather than a value. All division is floor
// division so negative years and times before the epoch resolve correctly.
package chrono
