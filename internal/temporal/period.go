package temporal

import "fmt"

// Period is an amount of date-based time. The merge engine only ever
// accumulates whole days, produced when a lenient time value wraps past
// midnight.
type Period struct {
	Days int64
}

// ZeroPeriod has no days.
var ZeroPeriod = Period{}

// PeriodOfDays returns a period of n days.
func PeriodOfDays(n int64) Period { return Period{Days: n} }

// IsZero reports whether the period is empty.
func (p Period) IsZero() bool { return p.Days == 0 }

// Plus returns the sum of two periods.
func (p Period) Plus(o Period) Period { return Period{Days: p.Days + o.Days} }

// String formats the period as ISO-8601, for example P1D.
func (p Period) String() string {
	return fmt.Sprintf("P%dD", p.Days)
}
