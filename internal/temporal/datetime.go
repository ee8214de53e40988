package temporal

// DateTime is a local date and time without offset.
type DateTime struct {
	Date Date
	Time Time
}

// DateTimeOf combines a date and a time.
func DateTimeOf(d Date, t Time) DateTime {
	return DateTime{Date: d, Time: t}
}

// DateTimeOfEpochSecond returns the local date-time at epochSecond (seconds
// since 1970-01-01T00:00Z) plus nano, viewed through offset.
func DateTimeOfEpochSecond(epochSecond int64, nano int, offset Offset) (DateTime, error) {
	if nano < 0 || int64(nano) >= NanosPerSecond {
		return DateTime{}, &InvalidValueError{Field: "NanoOfSecond", Value: int64(nano), Min: 0, Max: NanosPerSecond - 1}
	}
	local := epochSecond + int64(offset.seconds)
	d, err := DateOfEpochDay(FloorDiv(local, SecondsPerDay))
	if err != nil {
		return DateTime{}, err
	}
	t := Time{nanoOfDay: FloorMod(local, SecondsPerDay)*NanosPerSecond + int64(nano)}
	return DateTime{Date: d, Time: t}, nil
}

// EpochSecond returns the seconds since 1970-01-01T00:00Z of the date-time
// interpreted at offset.
func (dt DateTime) EpochSecond(offset Offset) int64 {
	return dt.Date.EpochDay()*SecondsPerDay + dt.Time.SecondOfDay() - int64(offset.seconds)
}

// PlusDays returns the date-time n days later.
func (dt DateTime) PlusDays(n int64) (DateTime, error) {
	d, err := dt.Date.PlusDays(n)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{Date: d, Time: dt.Time}, nil
}

// PlusSeconds returns the date-time n seconds later.
func (dt DateTime) PlusSeconds(n int64) (DateTime, error) {
	secs := dt.Time.SecondOfDay() + n
	d, err := dt.Date.PlusDays(FloorDiv(secs, SecondsPerDay))
	if err != nil {
		return DateTime{}, err
	}
	t := Time{nanoOfDay: FloorMod(secs, SecondsPerDay)*NanosPerSecond + int64(dt.Time.Nano())}
	return DateTime{Date: d, Time: t}, nil
}

// Compare returns -1, 0 or +1 as dt is before, equal to or after o.
func (dt DateTime) Compare(o DateTime) int {
	if c := dt.Date.Compare(o.Date); c != 0 {
		return c
	}
	switch {
	case dt.Time.nanoOfDay < o.Time.nanoOfDay:
		return -1
	case dt.Time.nanoOfDay > o.Time.nanoOfDay:
		return 1
	}
	return 0
}

// String formats the date-time as ISO-8601, for example 2011-06-15T21:00.
func (dt DateTime) String() string {
	return dt.Date.String() + "T" + dt.Time.String()
}
