package temporal

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseOffset parses Z, UTC, +HH:MM or +HH:MM:SS.
func ParseOffset(s string) (Offset, error) {
	if s == "Z" || s == "UTC" {
		return UTC, nil
	}
	if len(s) < 6 || (s[0] != '+' && s[0] != '-') {
		return Offset{}, fmt.Errorf("invalid offset %q: want Z or +HH:MM[:SS]", s)
	}
	parts := strings.Split(s[1:], ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Offset{}, fmt.Errorf("invalid offset %q: want Z or +HH:MM[:SS]", s)
	}
	limits := []int{18, 59, 59}
	total := 0
	for i, p := range parts {
		n, err := parseFixed(p, 2)
		if err != nil || n > limits[i] {
			return Offset{}, fmt.Errorf("invalid offset %q", s)
		}
		total = total*60 + n
	}
	if len(parts) == 2 {
		total *= 60
	}
	if s[0] == '-' {
		total = -total
	}
	return OffsetOfSeconds(total)
}

// ParseDateTime parses YYYY-MM-DDTHH:MM or YYYY-MM-DDTHH:MM:SS.
func ParseDateTime(s string) (DateTime, error) {
	datePart, timePart, ok := strings.Cut(s, "T")
	if !ok {
		return DateTime{}, fmt.Errorf("invalid date-time %q: missing T", s)
	}
	ymd := strings.Split(datePart, "-")
	if len(ymd) != 3 {
		return DateTime{}, fmt.Errorf("invalid date %q", datePart)
	}
	year, err := strconv.ParseInt(ymd[0], 10, 64)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	month, err1 := parseFixed(ymd[1], 2)
	day, err2 := parseFixed(ymd[2], 2)
	if err1 != nil || err2 != nil {
		return DateTime{}, fmt.Errorf("invalid date %q", datePart)
	}
	d, err := DateOf(year, month, day)
	if err != nil {
		return DateTime{}, err
	}

	hms := strings.Split(timePart, ":")
	if len(hms) < 2 || len(hms) > 3 {
		return DateTime{}, fmt.Errorf("invalid time %q", timePart)
	}
	clock := make([]int, 3)
	for i, p := range hms {
		n, err := parseFixed(p, 2)
		if err != nil {
			return DateTime{}, fmt.Errorf("invalid time %q", timePart)
		}
		clock[i] = n
	}
	t, err := TimeOf(clock[0], clock[1], clock[2], 0)
	if err != nil {
		return DateTime{}, err
	}
	return DateTimeOf(d, t), nil
}

// ParseZone parses a zone description.
//
// An offset (Z, +02:00) gives a FixedZone. A single-transition zone is
// written ID@LOCAL[BEFORE>AFTER], for example
// Test/Spring@2011-03-27T01:00[Z>+01:00], where LOCAL is the wall-clock
// time of the change in the BEFORE offset.
func ParseZone(s string) (ZoneRules, error) {
	id, rest, ok := strings.Cut(s, "@")
	if !ok {
		off, err := ParseOffset(s)
		if err != nil {
			return nil, fmt.Errorf("invalid zone %q: %w", s, err)
		}
		return NewFixedZone(off), nil
	}
	local, offsets, ok := strings.Cut(rest, "[")
	if id == "" || !ok || !strings.HasSuffix(offsets, "]") {
		return nil, fmt.Errorf("invalid zone %q: want ID@LOCAL[BEFORE>AFTER]", s)
	}
	before, after, ok := strings.Cut(strings.TrimSuffix(offsets, "]"), ">")
	if !ok {
		return nil, fmt.Errorf("invalid zone %q: want ID@LOCAL[BEFORE>AFTER]", s)
	}
	dt, err := ParseDateTime(local)
	if err != nil {
		return nil, fmt.Errorf("invalid zone %q: %w", s, err)
	}
	b, err := ParseOffset(before)
	if err != nil {
		return nil, fmt.Errorf("invalid zone %q: %w", s, err)
	}
	a, err := ParseOffset(after)
	if err != nil {
		return nil, fmt.Errorf("invalid zone %q: %w", s, err)
	}
	if a == b {
		return nil, fmt.Errorf("invalid zone %q: transition does not change the offset", s)
	}
	return NewTransitionZone(id, Transition{Local: dt, Before: b, After: a}), nil
}

// ParseResolver maps strict, pre or post to a Resolver. Empty means strict.
func ParseResolver(s string) (Resolver, error) {
	switch strings.ToLower(s) {
	case "", "strict":
		return StrictResolver{}, nil
	case "pre":
		return PreTransitionResolver{}, nil
	case "post":
		return PostTransitionResolver{}, nil
	}
	return nil, fmt.Errorf("unknown resolver %q: want strict, pre or post", s)
}

func parseFixed(s string, width int) (int, error) {
	if len(s) != width {
		return 0, fmt.Errorf("want %d digits, got %q", width, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("want %d digits, got %q", width, s)
	}
	return n, nil
}
