package temporal

import (
	"fmt"
	"strings"
)

// Nanosecond and day constants.
const (
	NanosPerSecond int64 = 1_000_000_000
	NanosPerMinute       = NanosPerSecond * 60
	NanosPerHour         = NanosPerMinute * 60
	NanosPerDay          = NanosPerHour * 24
	SecondsPerDay  int64 = 86_400
)

// Time is a wall-clock time of day with nanosecond precision.
// The zero value is midnight.
type Time struct {
	nanoOfDay int64
}

// Midnight is 00:00.
var Midnight = Time{}

// TimeOf returns the time for hour, minute, second and nanosecond.
func TimeOf(hour, minute, second, nano int) (Time, error) {
	if hour < 0 || hour > 23 {
		return Time{}, &InvalidValueError{Field: "HourOfDay", Value: int64(hour), Min: 0, Max: 23}
	}
	if minute < 0 || minute > 59 {
		return Time{}, &InvalidValueError{Field: "MinuteOfHour", Value: int64(minute), Min: 0, Max: 59}
	}
	if second < 0 || second > 59 {
		return Time{}, &InvalidValueError{Field: "SecondOfMinute", Value: int64(second), Min: 0, Max: 59}
	}
	if nano < 0 || int64(nano) >= NanosPerSecond {
		return Time{}, &InvalidValueError{Field: "NanoOfSecond", Value: int64(nano), Min: 0, Max: NanosPerSecond - 1}
	}
	return Time{nanoOfDay: int64(hour)*NanosPerHour + int64(minute)*NanosPerMinute +
		int64(second)*NanosPerSecond + int64(nano)}, nil
}

// MustTime is like TimeOf but panics on invalid input.
func MustTime(hour, minute, second, nano int) Time {
	t, err := TimeOf(hour, minute, second, nano)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfNanoOfDay returns the time nanoOfDay nanoseconds after midnight.
func TimeOfNanoOfDay(nanoOfDay int64) (Time, error) {
	if nanoOfDay < 0 || nanoOfDay >= NanosPerDay {
		return Time{}, &InvalidValueError{Field: "NanoOfDay", Value: nanoOfDay, Min: 0, Max: NanosPerDay - 1}
	}
	return Time{nanoOfDay: nanoOfDay}, nil
}

// SplitNanoOfDay converts an unbounded nano-of-day into a valid time and the
// number of whole days that overflowed, which may be negative.
func SplitNanoOfDay(nanoOfDay int64) (Time, int64) {
	return Time{nanoOfDay: FloorMod(nanoOfDay, NanosPerDay)}, FloorDiv(nanoOfDay, NanosPerDay)
}

// Hour returns the hour-of-day, 0 to 23.
func (t Time) Hour() int { return int(t.nanoOfDay / NanosPerHour) }

// Minute returns the minute-of-hour, 0 to 59.
func (t Time) Minute() int { return int(t.nanoOfDay / NanosPerMinute % 60) }

// Second returns the second-of-minute, 0 to 59.
func (t Time) Second() int { return int(t.nanoOfDay / NanosPerSecond % 60) }

// Nano returns the nano-of-second.
func (t Time) Nano() int { return int(t.nanoOfDay % NanosPerSecond) }

// NanoOfDay returns the nanoseconds since midnight.
func (t Time) NanoOfDay() int64 { return t.nanoOfDay }

// SecondOfDay returns the whole seconds since midnight.
func (t Time) SecondOfDay() int64 { return t.nanoOfDay / NanosPerSecond }

// String formats the time as HH:mm, HH:mm:ss or HH:mm:ss.fraction, using the
// shortest form that is lossless. Fractions are printed in groups of three.
func (t Time) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02d:%02d", t.Hour(), t.Minute())
	if t.Second() == 0 && t.Nano() == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, ":%02d", t.Second())
	if n := t.Nano(); n != 0 {
		switch {
		case n%1_000_000 == 0:
			fmt.Fprintf(&b, ".%03d", n/1_000_000)
		case n%1_000 == 0:
			fmt.Fprintf(&b, ".%06d", n/1_000)
		default:
			fmt.Fprintf(&b, ".%09d", n)
		}
	}
	return b.String()
}
