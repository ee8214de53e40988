package store

import (
	"context"
	"fmt"
)

// MergeFunc re-runs a recorded merge and returns the outcome it produces
// now. A returned error aborts the replay; merge failures belong in the
// outcome.
type MergeFunc func(ctx context.Context, e Entry) (Outcome, error)

// Mismatch is a recorded entry whose outcome changed on replay.
type Mismatch struct {
	Entry    Entry
	Recorded Outcome
	Replayed Outcome
}

// ReplayReport summarizes a replay.
type ReplayReport struct {
	Total      int
	Matched    int
	Mismatches []Mismatch
}

// OK reports whether every entry replayed to its recorded outcome.
func (r ReplayReport) OK() bool {
	return len(r.Mismatches) == 0
}

// Replay re-runs entries matching opts in journal order.
//
// Pass counts are compared along with status and result. Replay reads only;
// the journal is not modified.
func (s *Store) Replay(ctx context.Context, opts ListOptions, fn MergeFunc) (ReplayReport, error) {
	entries, err := s.List(ctx, opts)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("replay: %w", err)
	}

	report := ReplayReport{Mismatches: []Mismatch{}}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		got, err := fn(ctx, e)
		if err != nil {
			return report, fmt.Errorf("replay merge %s: %w", e.ID, err)
		}
		report.Total++
		if got == e.Outcome {
			report.Matched++
			continue
		}
		report.Mismatches = append(report.Mismatches, Mismatch{Entry: e, Recorded: e.Outcome, Replayed: got})
	}
	return report, nil
}
