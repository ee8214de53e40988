package temporal

import "fmt"

// MaxOffsetSeconds is the largest supported offset magnitude, 18 hours.
const MaxOffsetSeconds = 18 * 3600

// Offset is a fixed offset from UTC in whole seconds.
type Offset struct {
	seconds int
}

// UTC is the zero offset.
var UTC = Offset{}

// OffsetOfSeconds returns the offset of the given total seconds.
func OffsetOfSeconds(seconds int) (Offset, error) {
	if seconds < -MaxOffsetSeconds || seconds > MaxOffsetSeconds {
		return Offset{}, &InvalidValueError{Field: "OffsetSeconds", Value: int64(seconds), Min: -MaxOffsetSeconds, Max: MaxOffsetSeconds}
	}
	return Offset{seconds: seconds}, nil
}

// MustOffset is like OffsetOfSeconds but panics on invalid input.
func MustOffset(seconds int) Offset {
	o, err := OffsetOfSeconds(seconds)
	if err != nil {
		panic(err)
	}
	return o
}

// TotalSeconds returns the offset in seconds.
func (o Offset) TotalSeconds() int { return o.seconds }

// String formats the offset as Z, +HH:MM or +HH:MM:SS.
func (o Offset) String() string {
	if o.seconds == 0 {
		return "Z"
	}
	sign := '+'
	abs := o.seconds
	if abs < 0 {
		sign = '-'
		abs = -abs
	}
	h, m, s := abs/3600, abs/60%60, abs%60
	if s != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}
