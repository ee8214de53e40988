package harness

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ThreeTen/threetenbp-sub007/internal/compiler"
	"github.com/ThreeTen/threetenbp-sub007/internal/engine"
	"github.com/ThreeTen/threetenbp-sub007/internal/store"
	"github.com/ThreeTen/threetenbp-sub007/internal/temporal"
)

// StatusError is the outcome status of a failure that is not a MergeError.
const StatusError = "ERROR"

// Request is a merge expressed with rule names, as read from a scenario,
// the command line or the journal.
type Request struct {
	Fields      map[string]int64
	Strict      bool
	CheckUnused bool
	Zone        string
	Resolver    string
}

// RequestOf rebuilds the request a journal entry was recorded from.
func RequestOf(e store.Entry) Request {
	return Request{
		Fields:      e.Input,
		Strict:      e.Strict,
		CheckUnused: e.CheckUnused,
		Zone:        e.Zone,
		Resolver:    e.Resolver,
	}
}

// Resolve looks up every field name in cat and parses the zone settings.
// Two names for the same rule are an error.
func (r Request) Resolve(cat *compiler.Catalog) (*engine.FieldMap, engine.MergeContext, error) {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := engine.NewFieldMap()
	given := map[string]string{}
	for _, name := range names {
		rule, ok := cat.Lookup(name)
		if !ok {
			return nil, engine.MergeContext{}, fmt.Errorf("unknown field %q", name)
		}
		if prev, dup := given[rule.ID()]; dup {
			return nil, engine.MergeContext{}, fmt.Errorf("fields %q and %q name the same rule %s", prev, name, rule.ID())
		}
		given[rule.ID()] = name
		fields.Set(rule, r.Fields[name])
	}

	mctx := engine.MergeContext{Strict: r.Strict, CheckUnusedFields: r.CheckUnused}
	if r.Zone != "" {
		zone, err := temporal.ParseZone(r.Zone)
		if err != nil {
			return nil, engine.MergeContext{}, err
		}
		mctx.Zone = zone
	}
	resolver, err := temporal.ParseResolver(r.Resolver)
	if err != nil {
		return nil, engine.MergeContext{}, err
	}
	mctx.Resolver = resolver
	return fields, mctx, nil
}

// Merge resolves req against cat and runs it on eng. The returned error is
// for requests that cannot be resolved; a failed merge is reported through
// the outcome and the merge error.
func Merge(eng *engine.Engine, cat *compiler.Catalog, req Request) (*engine.Result, store.Outcome, error) {
	fields, mctx, err := req.Resolve(cat)
	if err != nil {
		return nil, store.Outcome{}, err
	}
	res, mergeErr := eng.Merge(fields, mctx)
	return res, OutcomeOf(res, mergeErr), mergeErr
}

// OutcomeOf summarizes a merge for the journal and golden snapshots.
func OutcomeOf(res *engine.Result, err error) store.Outcome {
	if err == nil {
		return store.Outcome{Status: store.StatusOK, Result: res.String(), Passes: res.Passes()}
	}
	var me *engine.MergeError
	if errors.As(err, &me) {
		return store.Outcome{Status: string(me.Code), Result: me.Message}
	}
	return store.Outcome{Status: StatusError, Result: err.Error()}
}

// EntryOf builds the journal entry for a merge of req. The input is keyed
// by rule ID so it resolves the same way whatever names the caller used.
func EntryOf(cat *compiler.Catalog, req Request, out store.Outcome) (store.Entry, error) {
	fields, _, err := req.Resolve(cat)
	if err != nil {
		return store.Entry{}, err
	}
	input := make(map[string]int64, fields.Len())
	for _, f := range fields.Fields() {
		input[f.Rule.ID()] = f.Value
	}
	return store.Entry{
		Input:         input,
		Strict:        req.Strict,
		CheckUnused:   req.CheckUnused,
		Zone:          req.Zone,
		Resolver:      req.Resolver,
		Outcome:       out,
		EngineVersion: engine.Version,
	}, nil
}
