package temporal

import "fmt"

// InvalidValueError reports a date or time component outside its valid range.
// Field uses the ISO rule name of the component (for example "DayOfMonth") so
// callers can map the failure back to the field that produced it.
type InvalidValueError struct {
	Field string
	Value int64
	Min   int64
	Max   int64
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %s: %d (valid values %d - %d)", e.Field, e.Value, e.Min, e.Max)
}

// ZoneResolutionError reports a local date-time that a strict resolver
// refused to map to a single offset.
type ZoneResolutionError struct {
	Zone  string
	Local DateTime
	Gap   bool
}

// Error implements the error interface.
func (e *ZoneResolutionError) Error() string {
	kind := "overlap"
	if e.Gap {
		kind = "gap"
	}
	return fmt.Sprintf("local date-time %s falls in a %s in zone %s", e.Local, kind, e.Zone)
}
