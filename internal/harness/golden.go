package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/ThreeTen/threetenbp-sub007/internal/store"
)

// Snapshot renders a result as canonical JSON for golden comparison.
// Pass counts and journal ids are left out; they are checked through
// expectations instead.
func Snapshot(r *Result) ([]byte, error) {
	cases := make([]any, len(r.Cases))
	for i, c := range r.Cases {
		cases[i] = map[string]any{
			"name":   c.Name,
			"input":  c.Input,
			"status": c.Outcome.Status,
			"result": c.Outcome.Result,
		}
	}
	return store.MarshalCanonical(map[string]any{
		"scenario": r.Scenario,
		"cases":    cases,
	})
}

// RunWithGolden executes a scenario and compares its outcomes against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(result)
	if err != nil {
		return err
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, snapshot)
	return nil
}
