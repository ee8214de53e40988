// Package temporal provides the immutable value objects the merge engine
// produces and consumes: Date, Time, Offset, Period and DateTime.
//
// The package is the foundational layer. It imports nothing internal; chrono,
// registry and engine all build on it.
//
// All calendar arithmetic is proleptic ISO-8601 (Gregorian rules extended
// backwards, year 0 exists). Years are bounded by MinYear and MaxYear so that
// epoch-day and epoch-second values always fit in int64.
//
// Zone rules are consumed only through the ZoneRules and Resolver interfaces.
// FixedZone and TransitionZone are small implementations for callers that do
// not have a time-zone database.
package temporal
