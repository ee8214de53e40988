// Package harness runs merge scenarios: YAML files that list field maps,
// the context to merge them under and the outcome to expect.
//
// # Scenario Format
//
//	name: iso_dates
//	description: "Year, month and day merge to a date"
//	chronologies:
//	  - ../chronologies/mock.cue
//	max_passes: 100
//	cases:
//	  - name: ymd
//	    fields: {Year: 2011, MonthOfYear: 6, DayOfMonth: 15}
//	    mode: strict            # or lenient; default strict
//	    check_unused: true      # default true
//	    zone: "+02:00"          # see temporal.ParseZone
//	    resolver: post          # strict, pre or post
//	    expect:
//	      result: "2011-06-15"
//	      passes: 2
//	      values: {Year: 2011}
//	  - name: conflict
//	    fields: {Year: 2011, DayOfYear: 166, MonthOfYear: 6, DayOfMonth: 14}
//	    expect:
//	      error: MERGE_CONFLICT
//	      message: "DayOfYear has conflicting values 165 and 166"
//
// Field names are ISO rule names, chronology-qualified names (Mock.Century)
// or bare names of rules declared in the listed chronology files. Paths are
// relative to the scenario file.
//
// # Expectations
//
//   - result: the rendered result must match exactly
//   - error: the merge must fail with this code; message, when given, must
//     match the error message exactly
//   - passes: the pass count must match
//   - values: each rule must read back this value from the result
//
// # Deterministic Output
//
// Results render identically on every run, so a scenario's outcomes can be
// compared against a golden snapshot under testdata/golden. Journal ids come
// from the store's generator; pass WithJournal a store opened with
// testutil.SequenceIDGenerator for reproducible ids.
package harness
