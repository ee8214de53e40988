package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ThreeTen/threetenbp-sub007/internal/store"
	"github.com/ThreeTen/threetenbp-sub007/internal/testutil"
)

func loadTestScenarios(t *testing.T) []*Scenario {
	t.Helper()
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)
	return scenarios
}

// =============================================================================
// Golden scenarios
// =============================================================================

func TestScenarios_Golden(t *testing.T) {
	for _, s := range loadTestScenarios(t) {
		t.Run(s.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Cases, len(s.Cases))
		})
	}
}

// TestRun_Deterministic runs each scenario twice and compares snapshots.
func TestRun_Deterministic(t *testing.T) {
	for _, s := range loadTestScenarios(t) {
		first, err := Run(s)
		require.NoError(t, err)
		second, err := Run(s)
		require.NoError(t, err)

		a, err := Snapshot(first)
		require.NoError(t, err)
		b, err := Snapshot(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), s.Name)
	}
}

// =============================================================================
// Runner
// =============================================================================

func TestRunAll_ParallelMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)

	scenarios := loadTestScenarios(t)
	results, err := NewRunner(WithParallelism(3)).RunAll(context.Background(), scenarios)
	require.NoError(t, err)
	require.Len(t, results, len(scenarios))

	for i, s := range scenarios {
		assert.Equal(t, s.Name, results[i].Scenario, "results keep input order")
		seq, err := Run(s)
		require.NoError(t, err)
		assert.Equal(t, seq.Cases, results[i].Cases)
	}
}

func TestRunAll_StopsOnBrokenScenario(t *testing.T) {
	defer goleak.VerifyNone(t)

	broken := &Scenario{
		Name:         "broken",
		Description:  "missing chronology",
		Chronologies: []string{filepath.Join(t.TempDir(), "missing.cue")},
		Cases:        []Case{{Name: "c", Fields: map[string]int64{}, Expect: Expect{Result: "{}"}}},
	}
	_, err := NewRunner().RunAll(context.Background(), []*Scenario{broken})
	assert.Error(t, err)
}

func TestRun_ReportsFailedExpectation(t *testing.T) {
	s := &Scenario{
		Name:        "wrong",
		Description: "expects the wrong day",
		Cases: []Case{{
			Name:   "ymd",
			Fields: map[string]int64{"Year": 2011, "MonthOfYear": 6, "DayOfMonth": 15},
			Expect: Expect{Result: "2011-06-16"},
		}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, `ymd: result mismatch: expected "2011-06-16", got "2011-06-15"`, result.Errors[0])
}

func TestRun_UnknownFieldFailsCase(t *testing.T) {
	s := &Scenario{
		Name:        "unknown",
		Description: "names a field nobody declared",
		Cases: []Case{{
			Name:   "typo",
			Fields: map[string]int64{"Yaer": 2011},
			Expect: Expect{Result: "{}"},
		}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, StatusError, result.Cases[0].Outcome.Status)
	assert.Contains(t, result.Errors[0], `unknown field "Yaer"`)
}

func TestRun_MaxPasses(t *testing.T) {
	s := &Scenario{
		Name:        "tight",
		Description: "a pass limit too small for the merge",
		MaxPasses:   1,
		Cases: []Case{{
			Name:   "ymd",
			Fields: map[string]int64{"Year": 2011, "MonthOfYear": 6, "DayOfMonth": 15},
			Expect: Expect{Error: "LOOP_DETECTED"},
		}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_RecordsJournal(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "journal.db"),
		store.WithIDGenerator(testutil.NewSequenceIDGenerator("")))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	s, err := LoadScenario("testdata/scenarios/iso_times.yaml")
	require.NoError(t, err)

	result, err := NewRunner(WithJournal(st)).Run(context.Background(), s)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "merge-0001", result.Cases[0].JournalID)

	entries, err := st.List(context.Background(), store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, len(s.Cases))

	first := entries[0]
	assert.Equal(t, map[string]int64{"ISO.HourOfDay": 25}, first.Input)
	assert.False(t, first.Strict)
	assert.Equal(t, store.Outcome{Status: "ok", Result: "01:00 +P1D", Passes: result.Cases[0].Outcome.Passes}, first.Outcome)

	failed, err := st.List(context.Background(), store.ListOptions{Status: "RANGE_VIOLATION"})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, int64(2), failed[0].Seq)
}
