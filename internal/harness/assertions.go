package harness

import (
	"fmt"
	"sort"

	"github.com/ThreeTen/threetenbp-sub007/internal/compiler"
	"github.com/ThreeTen/threetenbp-sub007/internal/engine"
	"github.com/ThreeTen/threetenbp-sub007/internal/store"
)

// CheckExpect compares a merge outcome with exp and returns one message per
// mismatch. res is nil when the merge failed.
func CheckExpect(cat *compiler.Catalog, exp Expect, res *engine.Result, out store.Outcome) []string {
	var errs []string

	if exp.Error != "" {
		if out.Status != exp.Error {
			return append(errs, fmt.Sprintf("expected error %s, got %s: %s", exp.Error, out.Status, out.Result))
		}
		if exp.Message != "" && out.Result != exp.Message {
			errs = append(errs, fmt.Sprintf("error message mismatch: expected %q, got %q", exp.Message, out.Result))
		}
		return errs
	}

	if out.Status != store.StatusOK {
		return append(errs, fmt.Sprintf("expected result %q, got %s: %s", exp.Result, out.Status, out.Result))
	}
	if out.Result != exp.Result {
		errs = append(errs, fmt.Sprintf("result mismatch: expected %q, got %q", exp.Result, out.Result))
	}
	if exp.Passes != 0 && out.Passes != exp.Passes {
		errs = append(errs, fmt.Sprintf("passes mismatch: expected %d, got %d", exp.Passes, out.Passes))
	}
	return append(errs, checkValues(cat, exp.Values, res)...)
}

// checkValues reads each expected rule back from the result, in name order.
func checkValues(cat *compiler.Catalog, want map[string]int64, res *engine.Result) []string {
	names := make([]string, 0, len(want))
	for name := range want {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []string
	for _, name := range names {
		rule, ok := cat.Lookup(name)
		if !ok {
			errs = append(errs, fmt.Sprintf("values: unknown field %q", name))
			continue
		}
		got, err := res.Value(rule)
		if err != nil {
			errs = append(errs, fmt.Sprintf("values: %s: %v", name, err))
			continue
		}
		if got != want[name] {
			errs = append(errs, fmt.Sprintf("values: %s: expected %d, got %d", name, want[name], got))
		}
	}
	return errs
}
