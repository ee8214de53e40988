// Package engine implements the field merge engine.
//
// The engine takes an unordered bag of field values (Year=2011,
// MonthOfYear=6, DayOfMonth=15, DayOfYear=166, ...) and reconciles them into
// the most specific consistent date, time and offset, reporting any
// contradiction it finds.
//
// ARCHITECTURE:
//
// Fixpoint Loop:
// Each pass visits the fields present at its start in chrono.Compare order
// and runs the hooks registered for each one. A hook combines its field with
// companions into a coarser field (HourOfAmPm + AmPmOfDay -> HourOfDay) or
// into a date, time or offset. Passes repeat until the state stops changing.
//
// Dispatch Table:
// Hooks are keyed by rule identity. The ISO hooks are built in; WithHook adds
// more. Every mergeable registry calculator also acts as a hook: when both of
// its children are present they are joined into the parent.
//
// Termination:
// A PassQuota caps the number of passes (default 100) and a CycleDetector
// stops a merge whose state repeats. Both end in a LOOP_DETECTED error.
//
// Consistency:
// After the loop, consumed fields are dropped, the zone offset is resolved,
// and every leftover field that can be derived is checked against the merged
// values and against the other leftovers.
//
// Strict vs Lenient:
// In strict mode an out-of-range value fails the merge. In lenient mode it
// carries: DayOfMonth 31 in June is the 1st of July and HourOfDay 25 is 01:00
// with one day of overflow.
package engine
