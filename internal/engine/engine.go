package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
	"github.com/ThreeTen/threetenbp-sub007/internal/registry"
	"github.com/ThreeTen/threetenbp-sub007/internal/temporal"
)

// leniencyCycles bounds how far a lenient value may stray outside its rule's
// range, in multiples of the range width. Beyond it the arithmetic that
// carries the value into larger units could overflow.
const leniencyCycles = 10_000

// Interpreter validates a raw input value before merging begins.
type Interpreter func(rule *chrono.Rule, value int64) error

// Engine merges field maps into dates, times and offsets.
//
// An Engine is immutable after New and safe for concurrent use: each Merge
// call works on its own Merger.
//
// INVARIANTS:
//   - hooks for a rule run in registration order (ISO hook first)
//   - rules are visited in chrono.Compare order within a pass
//   - a merge either returns a complete Result or an error, never both
type Engine struct {
	registry     *registry.Registry
	hooks        map[*chrono.Rule][]Hook
	interpreters map[*chrono.Rule]Interpreter
	maxPasses    int
	logger       *slog.Logger
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithMaxPasses sets the pass limit.
//
// Default: 100 passes (DefaultMaxPasses).
// Use a small value such as WithMaxPasses(3) to test loop detection.
func WithMaxPasses(n int) EngineOption {
	return func(e *Engine) {
		e.maxPasses = n
	}
}

// WithHook adds a hook for rule. Hooks added this way run after any built-in
// hook for the same rule.
func WithHook(rule *chrono.Rule, h Hook) EngineOption {
	return func(e *Engine) {
		e.hooks[rule] = append(e.hooks[rule], h)
	}
}

// WithInterpreter replaces the default input validation for rule.
func WithInterpreter(rule *chrono.Rule, fn Interpreter) EngineOption {
	return func(e *Engine) {
		e.interpreters[rule] = fn
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine over reg. A nil reg means a fresh ISO registry.
func New(reg *registry.Registry, opts ...EngineOption) *Engine {
	if reg == nil {
		reg = registry.NewISO()
	}
	e := &Engine{
		registry:     reg,
		hooks:        map[*chrono.Rule][]Hook{},
		interpreters: map[*chrono.Rule]Interpreter{},
		maxPasses:    DefaultMaxPasses,
		logger:       slog.Default(),
	}
	for rule, h := range isoHooks() {
		e.hooks[rule] = []Hook{h}
	}

	// Apply options
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Registry returns the registry the engine consults.
func (e *Engine) Registry() *registry.Registry { return e.registry }

// Merge reconciles fields under mctx.
//
// The merge runs in phases:
//  1. interpret: validate raw input values
//  2. merge: run hooks pass after pass until the state stops changing
//  3. drop processed fields and resolve the zone offset
//  4. derive: check leftover fields against the merged values and each other
//
// An empty map merges to an empty result without running any pass.
func (e *Engine) Merge(fields *FieldMap, mctx MergeContext) (*Result, error) {
	if fields == nil {
		return nil, &MergeError{Code: ErrCodeInvalidArgument, Message: "field map must not be nil"}
	}
	m := newMerger(e, fields, mctx)
	if m.fields.Len() == 0 {
		return m.result(0), nil
	}
	if err := e.interpret(m); err != nil {
		return nil, m.fail(err)
	}
	passes, err := e.mergeLoop(m)
	if err != nil {
		return nil, m.fail(err)
	}
	m.removeProcessed()
	if err := e.resolveOffset(m); err != nil {
		return nil, m.fail(err)
	}
	if err := e.checkDerivable(m); err != nil {
		return nil, m.fail(err)
	}

	res := m.result(passes)
	e.logger.Debug("merge complete", "input", m.original.String(), "result", res.String(), "passes", passes)
	return res, nil
}

// interpret validates every input value once, before any hook runs.
func (e *Engine) interpret(m *Merger) error {
	for _, f := range m.fields.Fields() {
		if f.Rule == nil {
			return &MergeError{Code: ErrCodeInvalidArgument, Message: "field map contains a nil rule"}
		}
		if fn, ok := e.interpreters[f.Rule]; ok {
			if err := fn(f.Rule, f.Value); err != nil {
				return newRangeError(f.Rule, err)
			}
			continue
		}
		if err := defaultInterpret(f.Rule, f.Value); err != nil {
			return newRangeError(f.Rule, err)
		}
	}
	return nil
}

// defaultInterpret always range-checks offsets and fields with an unbounded
// range, which have nothing to carry into. Other fields may be out of range
// by up to leniencyCycles range widths.
func defaultInterpret(rule *chrono.Rule, v int64) error {
	if rule == chrono.OffsetSeconds || rule.Range() == chrono.Forever {
		return rule.CheckValue(v)
	}
	slack := (rule.Max() - rule.Min() + 1) * leniencyCycles
	lo, hi := rule.Min()-slack, rule.Max()+slack
	if v < lo || v > hi {
		return &chrono.RangeError{Rule: rule, Value: v, Min: lo, Max: hi}
	}
	return nil
}

// mergeLoop runs passes until one changes nothing.
func (e *Engine) mergeLoop(m *Merger) (int, error) {
	quota := NewPassQuota(e.maxPasses)
	cycles := NewCycleDetector()
	cycles.Record(m.fingerprint(), 0)

	for {
		if err := quota.Check(); err != nil {
			return quota.Current(), &MergeError{
				Code:    ErrCodeLoopDetected,
				Message: fmt.Sprintf("merge did not settle within %d passes", e.maxPasses),
				Err:     err,
			}
		}
		pass := quota.Current()
		before := m.fingerprint()

		for _, rule := range m.fields.Rules() {
			if err := e.mergeRule(m, rule); err != nil {
				return pass, err
			}
		}

		after := m.fingerprint()
		e.logger.Debug("merge pass", "pass", pass, "fields", m.fields.Len(), "processed", len(m.processed))
		if after == before {
			return pass, nil
		}
		if prev, seen := cycles.Record(after, pass); seen {
			return pass, &MergeError{
				Code:    ErrCodeLoopDetected,
				Message: fmt.Sprintf("state after pass %d repeats pass %d", pass, prev),
			}
		}
	}
}

// mergeRule runs the hooks for rule and then joins it into any parent it is
// the small child of.
func (e *Engine) mergeRule(m *Merger, rule *chrono.Rule) error {
	for _, h := range e.hooks[rule] {
		if m.processed[rule] {
			return nil
		}
		if err := h(m); err != nil {
			return err
		}
	}
	if m.processed[rule] {
		return nil
	}
	return e.join(m, rule)
}

// join combines rule with its sibling into their parent for every mergeable
// calculator in which rule is the small child.
func (e *Engine) join(m *Merger, small *chrono.Rule) error {
	for _, c := range e.registry.ParentsOf(small) {
		if c.Small() != small || !c.Mergeable() || !m.Has(c.Large()) {
			continue
		}
		lv, err := m.Value(c.Large())
		if err != nil {
			return err
		}
		sv, err := m.Value(small)
		if err != nil {
			return err
		}
		pv, ok := c.Join(lv, sv)
		if !ok {
			continue
		}
		if err := m.StoreField(c.Parent(), pv); err != nil {
			return err
		}
		m.MarkProcessed(c.Large(), small)
	}
	return nil
}

// resolveOffset fills the offset from the zone once a date and time exist.
// An offset that is already merged must be valid in the zone.
func (e *Engine) resolveOffset(m *Merger) error {
	zone := m.ctx.Zone
	if zone == nil || m.date == nil || m.time == nil {
		return nil
	}
	date, err := m.effectiveDate()
	if err != nil {
		return err
	}
	local := temporal.DateTimeOf(*date, *m.time)
	if m.offset != nil {
		if !zone.IsValidOffset(local, *m.offset) {
			return &MergeError{
				Code:    ErrCodeConflict,
				Message: fmt.Sprintf("offset %s is not valid for %s in zone %s", m.offset, local, zone.ID()),
				Rule:    chrono.OffsetSeconds,
			}
		}
		return nil
	}
	off, err := m.ctx.resolver().Resolve(zone.ID(), local, zone.OffsetInfo(local))
	if err != nil {
		var zre *temporal.ZoneResolutionError
		if errors.As(err, &zre) {
			return &MergeError{Code: ErrCodeZoneResolution, Message: err.Error(), Err: err}
		}
		return err
	}
	m.offset = &off
	return nil
}
