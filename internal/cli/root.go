package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// DB is the merge journal database. Commands that record or read
	// merges require it.
	DB string

	// Chronologies lists CUE files or directories with chronology
	// declarations to install alongside the ISO rules.
	Chronologies []string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the calmerge CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "calmerge",
		Short: "calmerge - calendar field reconciliation",
		Long: `Merge loose calendar and clock fields into a date, time and offset.

Fields such as Year=2011 DayOfYear=166 are combined pass by pass until
nothing changes. Conflicting fields are reported instead of guessed at.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "path to the merge journal database")
	cmd.PersistentFlags().StringSliceVar(&opts.Chronologies, "chronology", nil, "CUE chronology file or directory (repeatable)")

	cmd.AddCommand(NewMergeCommand(opts))
	cmd.AddCommand(NewRulesCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))

	return cmd
}

// Logger returns a debug-level text logger on w when verbose output is on
// and a logger that drops everything otherwise.
func (o *RootOptions) Logger(w io.Writer) *slog.Logger {
	if !o.Verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
