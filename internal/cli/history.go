package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ThreeTen/threetenbp-sub007/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Status    string
	InputHash string
	Limit     int
}

// HistoryEntry is one journal entry as shown by the history command.
type HistoryEntry struct {
	ID            string           `json:"id"`
	Seq           int64            `json:"seq"`
	Input         map[string]int64 `json:"input"`
	Strict        bool             `json:"strict"`
	CheckUnused   bool             `json:"check_unused"`
	Zone          string           `json:"zone,omitempty"`
	Resolver      string           `json:"resolver,omitempty"`
	InputHash     string           `json:"input_hash"`
	Status        string           `json:"status"`
	Result        string           `json:"result"`
	Passes        int              `json:"passes"`
	EngineVersion string           `json:"engine_version"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "Show recorded merges",
		Long: `List merges recorded in the journal, oldest first, or show one
merge by id.

Examples:
  calmerge history --db merges.db
  calmerge history --db merges.db --status RANGE_VIOLATION --limit 10
  calmerge history --db merges.db 0190b7a4-...`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "show only entries with this status")
	cmd.Flags().StringVar(&opts.InputHash, "input-hash", "", "show only entries with this input hash")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show at most this many entries")

	return cmd
}

func runHistory(ctx context.Context, opts *HistoryOptions, args []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openJournal(opts.DB)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), nil)
	}
	defer st.Close()

	var entries []store.Entry
	if len(args) == 1 {
		e, err := st.Read(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return formatter.Fail(ExitFailure, ErrCodeNotFound, fmt.Sprintf("no merge with id %s", args[0]), nil)
		}
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), nil)
		}
		entries = []store.Entry{e}
	} else {
		entries, err = st.List(ctx, store.ListOptions{Status: opts.Status, InputHash: opts.InputHash, Limit: opts.Limit})
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), nil)
		}
	}

	history := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		history[i] = historyEntryOf(e)
	}

	if opts.Format == "json" {
		return formatter.Success(history)
	}
	if len(history) == 0 {
		fmt.Fprintln(formatter.Writer, "No merges recorded.")
		return nil
	}
	for _, h := range history {
		fmt.Fprintf(formatter.Writer, "%4d  %s  %s  %s -> %s\n", h.Seq, h.ID, h.Status, formatInput(h.Input), h.Result)
	}
	return nil
}

func historyEntryOf(e store.Entry) HistoryEntry {
	return HistoryEntry{
		ID:            e.ID,
		Seq:           e.Seq,
		Input:         e.Input,
		Strict:        e.Strict,
		CheckUnused:   e.CheckUnused,
		Zone:          e.Zone,
		Resolver:      e.Resolver,
		InputHash:     e.InputHash,
		Status:        e.Outcome.Status,
		Result:        e.Outcome.Result,
		Passes:        e.Outcome.Passes,
		EngineVersion: e.EngineVersion,
	}
}

// formatInput renders an input map as {Name=v, ...} sorted by name.
func formatInput(input map[string]int64) string {
	names := make([]string, 0, len(input))
	for name := range input {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, input[name])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
