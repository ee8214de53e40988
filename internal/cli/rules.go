package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
	"github.com/ThreeTen/threetenbp-sub007/internal/registry"
)

// RulesOptions holds flags for the rules command.
type RulesOptions struct {
	*RootOptions
	Only string // only list rules of this chronology
}

// RuleInfo describes one rule and how it combines with others.
type RuleInfo struct {
	ID         string `json:"id"`
	Chronology string `json:"chronology"`
	Name       string `json:"name"`
	Unit       string `json:"unit"`
	Range      string `json:"range"`
	Min        int64  `json:"min"`
	Max        int64  `json:"max"`

	// Parent is the rule this one merges into, if any.
	Parent string `json:"parent,omitempty"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RulesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List field rules",
		Long: `List every field rule available for merging: the ISO rules plus
those of any chronology loaded with --chronology.

Examples:
  calmerge rules
  calmerge rules --chronology ./chronologies --only Mock`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Only, "only", "", "list only the rules of this chronology")

	return cmd
}

func runRules(opts *RulesOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cat, err := LoadCatalog(opts.Chronologies)
	if err != nil {
		return failLoad(formatter, err)
	}
	reg, err := cat.Registry()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeRegistration, err.Error(), nil)
	}

	rules := []RuleInfo{}
	for _, r := range cat.Rules() {
		if opts.Only != "" && !strings.EqualFold(r.Chronology(), opts.Only) {
			continue
		}
		rules = append(rules, describeRule(reg, r))
	}

	if opts.Format == "json" {
		return formatter.Success(rules)
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tUNIT\tRANGE\tMIN\tMAX\tPARENT")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", r.ID, r.Unit, r.Range, r.Min, r.Max, r.Parent)
	}
	return tw.Flush()
}

func describeRule(reg *registry.Registry, r *chrono.Rule) RuleInfo {
	info := RuleInfo{
		ID:         r.ID(),
		Chronology: r.Chronology(),
		Name:       r.Name(),
		Unit:       r.Unit().String(),
		Range:      r.Range().String(),
		Min:        r.Min(),
		Max:        r.Max(),
	}
	for _, c := range reg.ParentsOf(r) {
		if c.Mergeable() {
			info.Parent = c.Parent().ID()
			break
		}
	}
	return info
}
