package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ThreeTen/threetenbp-sub007/internal/compiler"
	"github.com/ThreeTen/threetenbp-sub007/internal/engine"
	"github.com/ThreeTen/threetenbp-sub007/internal/harness"
	"github.com/ThreeTen/threetenbp-sub007/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Status    string
	InputHash string
	Limit     int
}

// ReplayMismatch is a journal entry whose outcome changed on replay.
type ReplayMismatch struct {
	ID       string `json:"id"`
	Seq      int64  `json:"seq"`
	Recorded string `json:"recorded"`
	Replayed string `json:"replayed"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Total         int              `json:"total"`
	Matched       int              `json:"matched"`
	Mismatches    []ReplayMismatch `json:"mismatches"`
	Deterministic bool             `json:"deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay recorded merges",
		Long: `Re-run merges recorded in the journal and compare each outcome
with the one recorded.

Chronologies used by recorded merges must be loaded again with
--chronology. The journal is only read.

Exit codes:
  0 - Every merge replayed to its recorded outcome
  1 - One or more outcomes changed
  2 - Command error (database not found, etc.)

Examples:
  calmerge replay --db merges.db
  calmerge replay --db merges.db --status MERGE_CONFLICT
  calmerge replay --db merges.db --chronology ./chronologies --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "replay only entries with this status")
	cmd.Flags().StringVar(&opts.InputHash, "input-hash", "", "replay only entries with this input hash")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "replay at most this many entries")

	return cmd
}

func runReplay(ctx context.Context, opts *ReplayOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openJournal(opts.DB)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), nil)
	}
	defer st.Close()

	cat, err := LoadCatalog(opts.Chronologies)
	if err != nil {
		return failLoad(formatter, err)
	}
	reg, err := cat.Registry()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeRegistration, err.Error(), nil)
	}
	eng := engine.New(reg, engine.WithLogger(opts.Logger(cmd.ErrOrStderr())))

	list := store.ListOptions{Status: opts.Status, InputHash: opts.InputHash, Limit: opts.Limit}
	report, err := st.Replay(ctx, list, ReplayFunc(eng, cat, formatter))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), nil)
	}

	result := ReplayResult{
		Total:         report.Total,
		Matched:       report.Matched,
		Mismatches:    make([]ReplayMismatch, 0, len(report.Mismatches)),
		Deterministic: report.OK(),
	}
	for _, m := range report.Mismatches {
		result.Mismatches = append(result.Mismatches, ReplayMismatch{
			ID:       m.Entry.ID,
			Seq:      m.Entry.Seq,
			Recorded: describeOutcome(m.Recorded),
			Replayed: describeOutcome(m.Replayed),
		})
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result)
}

// ReplayFunc re-runs a journal entry on eng. Entries that no longer
// resolve against cat replay to an ERROR outcome rather than aborting.
func ReplayFunc(eng *engine.Engine, cat *compiler.Catalog, formatter *OutputFormatter) store.MergeFunc {
	return func(_ context.Context, e store.Entry) (store.Outcome, error) {
		if e.EngineVersion != engine.Version {
			formatter.VerboseLog("Entry %s was recorded by engine %s, replaying on %s", e.ID, e.EngineVersion, engine.Version)
		}
		res, out, err := harness.Merge(eng, cat, harness.RequestOf(e))
		if err != nil && out.Status == "" {
			return harness.OutcomeOf(res, err), nil
		}
		return out, nil
	}
}

// openJournal opens an existing journal. Unlike store.Open it does not
// create a missing database.
func openJournal(path string) (*store.Store, error) {
	if path == "" {
		return nil, fmt.Errorf("--db is required")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %s", path)
	}
	return store.Open(path)
}

func describeOutcome(o store.Outcome) string {
	if o.Status == store.StatusOK {
		return fmt.Sprintf("%s (%d passes)", o.Result, o.Passes)
	}
	return fmt.Sprintf("%s: %s", o.Status, o.Result)
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if !result.Deterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_NONDETERMINISTIC",
			Message: fmt.Sprintf("%d of %d merge(s) replayed to a different outcome", len(result.Mismatches), result.Total),
		}
	}

	if err := writeIndentedJSON(cmd.OutOrStdout(), response); err != nil {
		return err
	}
	if !result.Deterministic {
		return NewExitError(ExitFailure, "replay produced different outcomes")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult) error {
	w := cmd.OutOrStdout()

	if result.Total == 0 {
		fmt.Fprintln(w, "No merges to replay.")
		return nil
	}

	for _, m := range result.Mismatches {
		fmt.Fprintf(w, "✗ %s (seq %d)\n", m.ID, m.Seq)
		fmt.Fprintf(w, "  recorded: %s\n", m.Recorded)
		fmt.Fprintf(w, "  replayed: %s\n", m.Replayed)
	}

	fmt.Fprintf(w, "Replay Summary: %d matched, %d changed, %d total\n", result.Matched, len(result.Mismatches), result.Total)
	if !result.Deterministic {
		return NewExitError(ExitFailure, "replay produced different outcomes")
	}
	fmt.Fprintln(w, "✓ All merges replayed deterministically")
	return nil
}
