// Package registry holds the calculators that relate a parent field to a pair
// of child fields.
//
// A calculator says how a parent value splits into a (large, small) pair and
// how the pair joins back. Two kinds exist:
//
//   - DivMod: parent = (large-lb)*divisor + (small-sb) + pb, the usual
//     carry relation (MinuteOfDay = HourOfDay*60 + MinuteOfHour).
//   - BitPack: parent = large<<bits | small, used by packed date forms.
//
// The merge engine joins children into parents through the registry and uses
// splits to check leftover fields against each other.
//
// CONCURRENCY:
// A Registry is built once and shared. Lookups read an immutable snapshot and
// never block. Registration serialises on a mutex, copies the snapshot and
// publishes the new one. The first calculator registered for a parent wins;
// later registrations for the same parent are ignored.
package registry
