package chrono

import "github.com/ThreeTen/threetenbp-sub007/internal/temporal"

// DeriveFrom computes the value of r from a merged date, time and offset, any
// of which may be nil. Date rules need the date, time rules the time,
// EpochSecond all three and OffsetSeconds the offset. Rules outside the ISO
// hierarchy are never derivable here.
func DeriveFrom(r *Rule, date *temporal.Date, t *temporal.Time, offset *temporal.Offset) (int64, bool) {
	switch {
	case r == OffsetSeconds:
		if offset == nil {
			return 0, false
		}
		return int64(offset.TotalSeconds()), true
	case r == EpochSecond:
		if date == nil || t == nil || offset == nil {
			return 0, false
		}
		return temporal.DateTimeOf(*date, *t).EpochSecond(*offset), true
	case r.Chronology() != ISO:
		return 0, false
	case r.IsDateRule():
		if date == nil {
			return 0, false
		}
		return Extract(EpochDay, date.EpochDay(), r)
	default:
		if t == nil {
			return 0, false
		}
		return Extract(NanoOfDay, t.NanoOfDay(), r)
	}
}
