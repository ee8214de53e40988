package harness

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ThreeTen/threetenbp-sub007/internal/compiler"
	"github.com/ThreeTen/threetenbp-sub007/internal/engine"
	"github.com/ThreeTen/threetenbp-sub007/internal/store"
)

// DefaultParallelism bounds how many scenarios RunAll executes at once.
const DefaultParallelism = 4

// Runner executes scenarios against the merge engine.
type Runner struct {
	logger      *slog.Logger
	journal     *store.Store
	parallelism int
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger passed to each engine. Default: a discarding
// logger, so scenario runs stay quiet.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithJournal records every case in st.
func WithJournal(st *store.Store) Option {
	return func(r *Runner) {
		r.journal = st
	}
}

// WithParallelism sets how many scenarios RunAll executes at once.
// Values below 1 mean 1.
func WithParallelism(n int) Option {
	return func(r *Runner) {
		r.parallelism = max(n, 1)
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:      slog.New(slog.DiscardHandler),
		parallelism: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a scenario with a default Runner.
func Run(scenario *Scenario) (*Result, error) {
	return NewRunner().Run(context.Background(), scenario)
}

// Run executes every case of scenario in order.
//
// Execution flow:
//  1. Compile the scenario's chronology files into a catalog
//  2. Build a registry with the chronologies installed and an engine over it
//  3. Merge each case and check it against its expectation
//  4. Record each case in the journal, if one is configured
//
// The returned error is for scenarios that cannot run at all. Expectation
// failures are reported in the Result.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	cat, err := compiler.LoadFiles(scenario.Chronologies...)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	reg, err := cat.Registry()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	opts := []engine.EngineOption{engine.WithLogger(r.logger)}
	if scenario.MaxPasses > 0 {
		opts = append(opts, engine.WithMaxPasses(scenario.MaxPasses))
	}
	eng := engine.New(reg, opts...)

	result := NewResult(scenario.Name)
	for _, c := range scenario.Cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cr, err := r.runCase(ctx, eng, cat, c)
		if err != nil {
			return nil, fmt.Errorf("scenario %s case %s: %w", scenario.Name, c.Name, err)
		}
		result.AddCase(cr)
	}

	r.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"cases", len(result.Cases),
		"pass", result.Pass,
	)
	return result, nil
}

func (r *Runner) runCase(ctx context.Context, eng *engine.Engine, cat *compiler.Catalog, c Case) (CaseResult, error) {
	req := c.Request()
	cr := CaseResult{Name: c.Name, Pass: true}

	res, out, err := Merge(eng, cat, req)
	if err != nil && out.Status == "" {
		// The request itself is bad; report it against the case.
		cr.Pass = false
		cr.Outcome = store.Outcome{Status: StatusError, Result: err.Error()}
		cr.Errors = []string{err.Error()}
		return cr, nil
	}
	cr.Outcome = out

	entry, err := EntryOf(cat, req, out)
	if err != nil {
		return cr, err
	}
	cr.Input = entry.Input

	if r.journal != nil {
		recorded, err := r.journal.Record(ctx, entry)
		if err != nil {
			return cr, err
		}
		cr.JournalID = recorded.ID
	}

	if errs := CheckExpect(cat, c.Expect, res, out); len(errs) > 0 {
		cr.Pass = false
		cr.Errors = errs
	}
	return cr, nil
}

// RunAll executes scenarios concurrently and returns their results in input
// order. It stops at the first scenario that cannot run.
func (r *Runner) RunAll(ctx context.Context, scenarios []*Scenario) ([]*Result, error) {
	results := make([]*Result, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	for i, s := range scenarios {
		g.Go(func() error {
			res, err := r.Run(gctx, s)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
