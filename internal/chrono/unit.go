package chrono

import (
	"fmt"

	"golang.org/x/text/cases"
)

// PeriodUnit is the unit or range of a rule, ordered by duration.
type PeriodUnit int

// Period units, shortest first. Forever marks an unbounded range.
const (
	Nanos PeriodUnit = iota
	Micros
	Millis
	Seconds
	Minutes
	Hours
	HalfDays
	Days
	Weeks
	Months
	Quarters
	Years
	WeekBasedYears
	Decades
	Centuries
	Millennia
	Eras
	Forever
)

var unitNames = [...]string{
	Nanos:          "Nanos",
	Micros:         "Micros",
	Millis:         "Millis",
	Seconds:        "Seconds",
	Minutes:        "Minutes",
	Hours:          "Hours",
	HalfDays:       "HalfDays",
	Days:           "Days",
	Weeks:          "Weeks",
	Months:         "Months",
	Quarters:       "Quarters",
	Years:          "Years",
	WeekBasedYears: "WeekBasedYears",
	Decades:        "Decades",
	Centuries:      "Centuries",
	Millennia:      "Millennia",
	Eras:           "Eras",
	Forever:        "Forever",
}

func (u PeriodUnit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("PeriodUnit(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnit returns the unit with the given name, ignoring case.
func ParseUnit(name string) (PeriodUnit, error) {
	fold := cases.Fold()
	want := fold.String(name)
	for u, n := range unitNames {
		if fold.String(n) == want {
			return PeriodUnit(u), nil
		}
	}
	return 0, fmt.Errorf("unknown period unit %q", name)
}
