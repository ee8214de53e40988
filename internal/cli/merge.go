package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ThreeTen/threetenbp-sub007/internal/engine"
	"github.com/ThreeTen/threetenbp-sub007/internal/harness"
	"github.com/ThreeTen/threetenbp-sub007/internal/store"
)

// MergeOptions holds flags for the merge command.
type MergeOptions struct {
	*RootOptions
	Lenient       bool
	NoCheckUnused bool
	Zone          string
	Resolver      string
	MaxPasses     int
	Record        bool
}

// MergeOutput is the JSON payload of a merge.
type MergeOutput struct {
	Input     map[string]int64 `json:"input"`
	Status    string           `json:"status"`
	Result    string           `json:"result"`
	Passes    int              `json:"passes"`
	Date      string           `json:"date,omitempty"`
	Time      string           `json:"time,omitempty"`
	Offset    string           `json:"offset,omitempty"`
	Overflow  string           `json:"overflow,omitempty"`
	Fields    map[string]int64 `json:"fields,omitempty"`
	JournalID string           `json:"journal_id,omitempty"`
}

// NewMergeCommand creates the merge command.
func NewMergeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MergeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "merge [FIELD=VALUE...]",
		Short: "Merge calendar fields",
		Long: `Merge calendar and clock fields into a date, time and offset.

Field names are ISO rule names (Year, MonthOfYear, HourOfDay, ...) or
rules of a chronology loaded with --chronology, optionally qualified
by chronology (Mock.Century). ISO names are case-insensitive.

Exit codes:
  0 - Merge succeeded
  1 - Merge failed (conflict, range violation, zone resolution, ...)
  2 - Command error (bad field argument, unknown field, bad zone)

Examples:
  calmerge merge Year=2011 MonthOfYear=6 DayOfMonth=15
  calmerge merge Year=2011 DayOfYear=166 --format json
  calmerge merge HourOfDay=25 --lenient
  calmerge merge Year=2011 MonthOfYear=3 DayOfMonth=27 HourOfDay=1 MinuteOfHour=30 \
    --zone 'Europe/London@2011-03-27T01:00[+00:00>+01:00]' --resolver post
  calmerge merge Year=2011 DayOfYear=166 --db merges.db --record`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Lenient, "lenient", false, "carry out-of-range values into larger units")
	cmd.Flags().BoolVar(&opts.NoCheckUnused, "no-check-unused", false, "discard leftover fields instead of cross-checking them")
	cmd.Flags().StringVar(&opts.Zone, "zone", "", "zone supplying the offset (+01:00 or ID@LOCAL[BEFORE>AFTER])")
	cmd.Flags().StringVar(&opts.Resolver, "resolver", "", "gap and overlap resolution (strict|pre|post)")
	cmd.Flags().IntVar(&opts.MaxPasses, "max-passes", 0, "merge pass limit (0 for the default)")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "record the merge in the journal given by --db")

	return cmd
}

func runMerge(ctx context.Context, opts *MergeOptions, args []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Record && opts.DB == "" {
		return formatter.Fail(ExitCommandError, ErrCodeBadArgument, "--record requires --db", nil)
	}

	fields, err := ParseFieldArgs(args)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeBadArgument, err.Error(), nil)
	}
	req := harness.Request{
		Fields:      fields,
		Strict:      !opts.Lenient,
		CheckUnused: !opts.NoCheckUnused,
		Zone:        opts.Zone,
		Resolver:    opts.Resolver,
	}

	cat, err := LoadCatalog(opts.Chronologies)
	if err != nil {
		return failLoad(formatter, err)
	}
	reg, err := cat.Registry()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeRegistration, err.Error(), nil)
	}
	engineOpts := []engine.EngineOption{engine.WithLogger(opts.Logger(cmd.ErrOrStderr()))}
	if opts.MaxPasses > 0 {
		engineOpts = append(engineOpts, engine.WithMaxPasses(opts.MaxPasses))
	}
	eng := engine.New(reg, engineOpts...)

	res, out, mergeErr := harness.Merge(eng, cat, req)
	if mergeErr != nil && out.Status == "" {
		return formatter.Fail(ExitCommandError, ErrCodeBadArgument, mergeErr.Error(), nil)
	}

	entry, err := harness.EntryOf(cat, req, out)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeBadArgument, err.Error(), nil)
	}
	output := MergeOutput{
		Input:  entry.Input,
		Status: out.Status,
		Result: out.Result,
		Passes: out.Passes,
	}

	if opts.Record {
		id, err := recordMerge(ctx, opts.DB, entry)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), nil)
		}
		output.JournalID = id
		formatter.VerboseLog("Recorded merge %s", id)
	}

	if mergeErr != nil {
		return failMerge(formatter, mergeErr, output)
	}

	describeResult(&output, res)
	formatter.VerboseLog("Merged in %d pass(es)", res.Passes())
	if opts.Format == "json" {
		return formatter.Success(output)
	}
	fmt.Fprintln(formatter.Writer, res.String())
	if output.JournalID != "" {
		fmt.Fprintf(formatter.Writer, "journal: %s\n", output.JournalID)
	}
	return nil
}

// ParseFieldArgs parses NAME=VALUE arguments. A name may appear once;
// two spellings of one rule are caught when the names are resolved.
func ParseFieldArgs(args []string) (map[string]int64, error) {
	fields := make(map[string]int64, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field argument %q: want NAME=VALUE", arg)
		}
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q is not an integer", name, raw)
		}
		if _, dup := fields[name]; dup {
			return nil, fmt.Errorf("field %s given twice", name)
		}
		fields[name] = v
	}
	return fields, nil
}

func describeResult(out *MergeOutput, res *engine.Result) {
	if d, ok := res.Date(); ok {
		out.Date = d.String()
	}
	if t, ok := res.Time(); ok {
		out.Time = t.String()
	}
	if o, ok := res.Offset(); ok {
		out.Offset = o.String()
	}
	if p := res.Overflow(); !p.IsZero() {
		out.Overflow = p.String()
	}
	left := res.Fields().Fields()
	if len(left) > 0 {
		out.Fields = make(map[string]int64, len(left))
		for _, f := range left {
			out.Fields[f.Rule.ID()] = f.Value
		}
	}
}

func recordMerge(ctx context.Context, path string, entry store.Entry) (string, error) {
	st, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer st.Close()

	recorded, err := st.Record(ctx, entry)
	if err != nil {
		return "", err
	}
	return recorded.ID, nil
}

// failMerge reports a failed merge under its merge error code.
func failMerge(formatter *OutputFormatter, err error, output MergeOutput) error {
	code := string(engine.ErrorCode(err))
	message := output.Result
	var me *engine.MergeError
	if !errors.As(err, &me) {
		code = harness.StatusError
		message = err.Error()
	}
	_ = formatter.Error(code, message, output)
	return WrapExitError(ExitFailure, "merge failed", err)
}

// failLoad reports a chronology loading error as a command error.
func failLoad(formatter *OutputFormatter, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return formatter.Fail(ExitCommandError, le.Code, le.Message, nil)
	}
	return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
}
