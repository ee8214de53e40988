package engine

import "github.com/ThreeTen/threetenbp-sub007/internal/temporal"

// MergeContext controls how a merge treats invalid and leftover values.
type MergeContext struct {
	// Strict rejects out-of-range values. When false, values outside their
	// range carry into the next unit (HourOfDay 25 is 01:00 the next day).
	Strict bool

	// CheckUnusedFields turns a leftover field that disagrees with the merged
	// result into a conflict. When false such fields are discarded.
	CheckUnusedFields bool

	// Zone, when set, supplies the offset for a merged date and time.
	Zone temporal.ZoneRules

	// Resolver handles gaps and overlaps in Zone. Defaults to
	// temporal.StrictResolver.
	Resolver temporal.Resolver
}

// StrictContext rejects invalid values and checks unused fields.
func StrictContext() MergeContext {
	return MergeContext{Strict: true, CheckUnusedFields: true}
}

// LenientContext carries invalid values and checks unused fields.
func LenientContext() MergeContext {
	return MergeContext{Strict: false, CheckUnusedFields: true}
}

func (c MergeContext) resolver() temporal.Resolver {
	if c.Resolver == nil {
		return temporal.StrictResolver{}
	}
	return c.Resolver
}
