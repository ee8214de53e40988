package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ThreeTen/threetenbp-sub007/internal/harness"
	"github.com/ThreeTen/threetenbp-sub007/internal/store"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update    bool   // regenerate golden files
	Filter    string // scenario filter (glob pattern)
	GoldenDir string // golden file directory
	Parallel  int    // scenarios run at once
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Cases  int      `json:"cases"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run merge scenarios",
		Long: `Run YAML merge scenarios and compare their outcomes with golden files.

Each scenario lists merge cases and the result or error each must produce.
Outcomes are also compared with <golden-dir>/<scenario>.golden when that
file exists. The golden directory defaults to a "golden" directory next
to the scenarios directory. With --db every case is recorded in the
journal.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, unreadable scenarios, etc.)

Examples:
  calmerge test ./testdata/scenarios
  calmerge test ./testdata/scenarios --filter "iso_*"
  calmerge test ./testdata/scenarios --update
  calmerge test ./testdata/scenarios --db merges.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().StringVar(&opts.GoldenDir, "golden", "", "golden file directory")
	cmd.Flags().IntVar(&opts.Parallel, "parallel", harness.DefaultParallelism, "scenarios run at once")

	return cmd
}

func runTests(ctx context.Context, opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if info, err := os.Stat(scenariosDir); err != nil || !info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}
	goldenDir := opts.GoldenDir
	if goldenDir == "" {
		goldenDir = filepath.Join(filepath.Dir(filepath.Clean(scenariosDir)), "golden")
	}

	scenarios, err := harness.LoadScenarios(scenariosDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenarios", err)
	}
	scenarios, err = filterScenarios(scenarios, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid filter", err)
	}

	if len(scenarios) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, TestResult{Scenarios: []ScenarioResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	runnerOpts := []harness.Option{
		harness.WithLogger(opts.Logger(cmd.ErrOrStderr())),
		harness.WithParallelism(opts.Parallel),
	}
	if opts.DB != "" {
		st, err := store.Open(opts.DB)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer st.Close()
		runnerOpts = append(runnerOpts, harness.WithJournal(st))
	}

	results, err := harness.NewRunner(runnerOpts...).RunAll(ctx, scenarios)
	if err != nil {
		return WrapExitError(ExitCommandError, "scenario execution failed", err)
	}

	summary := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(results)),
		Total:     len(results),
	}
	for _, res := range results {
		sr := checkScenario(res, goldenDir, opts, cmd)
		summary.Scenarios = append(summary.Scenarios, sr)
		if sr.Pass {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, summary)
	}
	return outputTestText(cmd, summary)
}

// filterScenarios keeps the scenarios whose name matches the glob pattern.
func filterScenarios(scenarios []*harness.Scenario, pattern string) ([]*harness.Scenario, error) {
	if pattern == "" {
		return scenarios, nil
	}
	var kept []*harness.Scenario
	for _, s := range scenarios {
		matched, err := filepath.Match(pattern, s.Name)
		if err != nil {
			return nil, err
		}
		if matched {
			kept = append(kept, s)
		}
	}
	return kept, nil
}

// checkScenario folds golden comparison into a scenario's expectations.
func checkScenario(res *harness.Result, goldenDir string, opts *TestOptions, cmd *cobra.Command) ScenarioResult {
	sr := ScenarioResult{Name: res.Scenario, Cases: len(res.Cases), Pass: res.Pass, Errors: res.Errors}
	goldenPath := filepath.Join(goldenDir, res.Scenario+".golden")

	snapshot, err := harness.Snapshot(res)
	if err != nil {
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("snapshot failed: %v", err))
		return reportScenario(cmd, opts, sr, "")
	}

	if opts.Update {
		if err := writeGoldenFile(goldenPath, snapshot); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, fmt.Sprintf("failed to update golden file: %v", err))
			return reportScenario(cmd, opts, sr, "")
		}
		return reportScenario(cmd, opts, sr, "golden updated")
	}

	golden, err := os.ReadFile(goldenPath)
	if errors.Is(err, fs.ErrNotExist) {
		// No golden file - expectations only
		return reportScenario(cmd, opts, sr, "")
	}
	if err != nil {
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("failed to read golden file: %v", err))
		return reportScenario(cmd, opts, sr, "")
	}
	if !bytes.Equal(golden, snapshot) {
		sr.Pass = false
		sr.Errors = append(sr.Errors, "outcomes do not match golden file (run with --update to regenerate)")
	}
	return reportScenario(cmd, opts, sr, "")
}

func writeGoldenFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// reportScenario prints one scenario line in text mode.
func reportScenario(cmd *cobra.Command, opts *TestOptions, sr ScenarioResult, note string) ScenarioResult {
	if opts.Format == "json" {
		return sr
	}
	w := cmd.OutOrStdout()
	if !sr.Pass {
		fmt.Fprintf(w, "✗ %s\n", sr.Name)
		for _, e := range sr.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
		return sr
	}
	if note != "" {
		fmt.Fprintf(w, "✓ %s (%d cases, %s)\n", sr.Name, sr.Cases, note)
		return sr
	}
	fmt.Fprintf(w, "✓ %s (%d cases)\n", sr.Name, sr.Cases)
	return sr
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, result TestResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_TEST_FAILED",
			Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
		}
	}

	if err := writeIndentedJSON(cmd.OutOrStdout(), response); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

// outputTestText outputs the test result as text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
