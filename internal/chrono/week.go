package chrono

import "github.com/ThreeTen/threetenbp-sub007/internal/temporal"

// isoWeek returns the ISO week-based year and week of an epoch day. The week
// belongs to the year that contains its Thursday.
func isoWeek(ed int64) (wby, week int64) {
	thursday := ed - floorMod(ed+3, 7) + 3
	wby, _, _ = UnpackEpochMonthDay(PackedEpochMonthDayFromEpochDay(thursday))
	return wby, (thursday-epochDayOfMonthStart(wby, 1))/7 + 1
}

// EpochDayFromWeekDate returns the epoch day of an ISO week date. Week and
// day-of-week act as offsets from the Monday of week 1, so values outside
// their ranges roll into neighbouring weeks.
func EpochDayFromWeekDate(wby, week, dow int64) int64 {
	jan4 := epochDayOfMonthStart(wby, 1) + 3
	monday := jan4 - floorMod(jan4+3, 7)
	return monday + (week-1)*7 + dow - 1
}

// WeeksInWeekBasedYear returns 53 for years whose 1st of January is a
// Thursday, or a Wednesday in a leap year, and 52 otherwise.
func WeeksInWeekBasedYear(wby int64) int64 {
	dow := floorMod(epochDayOfMonthStart(wby, 1)+3, 7) + 1
	if dow == 4 || (dow == 3 && temporal.IsLeapYear(wby)) {
		return 53
	}
	return 52
}

// EpochDayFromAlignedWeek returns the epoch day of the given day-of-week in
// the aligned week that starts alignedWeek-1 weeks after firstDay. Aligned
// weeks start on firstDay, so the result is the first matching weekday on or
// after the start of that week.
func EpochDayFromAlignedWeek(firstDay, alignedWeek, dow int64) int64 {
	start := firstDay + (alignedWeek-1)*7
	startDow := floorMod(start+3, 7) + 1
	return start + floorMod(dow-startDow, 7)
}

// EpochDayOfMonthStart returns the epoch day of the first day of month in year.
func EpochDayOfMonthStart(year, month int64) int64 {
	return epochDayOfMonthStart(year, month)
}
