package engine

import (
	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
	"github.com/ThreeTen/threetenbp-sub007/internal/registry"
	"github.com/ThreeTen/threetenbp-sub007/internal/temporal"
)

// checkDerivable reconciles the fields left after merging.
//
// Each field that can be derived from the merged date, time and offset (with
// overflow applied) is compared with the derived value; then each field that
// can be derived from another leftover field is compared with that. Equal
// fields are dropped. Unequal fields are a conflict when CheckUnusedFields is
// set and are dropped otherwise. Fields that cannot be derived at all stay.
func (e *Engine) checkDerivable(m *Merger) error {
	date, err := m.effectiveDate()
	if err != nil {
		return err
	}
	for _, rule := range m.fields.Rules() {
		v, _ := m.fields.Get(rule)
		derived, ok := deriveFromMerged(e.registry, rule, date, m.time, m.offset)
		if !ok {
			continue
		}
		if err := m.settle(rule, v, derived); err != nil {
			return err
		}
	}

	for _, rule := range m.fields.Rules() {
		v, ok := m.fields.Get(rule)
		if !ok {
			continue
		}
		for _, src := range m.fields.Rules() {
			if src == rule {
				continue
			}
			sv, _ := m.fields.Get(src)
			derived, ok := deriveFromField(e.registry, rule, src, sv)
			if !ok {
				continue
			}
			if err := m.settle(rule, v, derived); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

// settle drops rule when v agrees with derived, and otherwise either fails
// or drops it depending on CheckUnusedFields.
func (m *Merger) settle(rule *chrono.Rule, v, derived int64) error {
	if v != derived && m.ctx.CheckUnusedFields {
		return newConflictError(rule, derived, v)
	}
	if v != derived {
		m.logger.Debug("discarded unused field", "rule", rule.ID(), "value", v, "derived", derived)
	}
	m.fields.Delete(rule)
	return nil
}

// deriveFromMerged computes rule from the merged values, climbing the
// registry to a derivable ancestor when the rule itself is not an ISO rule.
func deriveFromMerged(reg *registry.Registry, rule *chrono.Rule, date *temporal.Date, t *temporal.Time, offset *temporal.Offset) (int64, bool) {
	if v, ok := chrono.DeriveFrom(rule, date, t, offset); ok {
		return v, true
	}
	for _, c := range reg.ParentsOf(rule) {
		if pv, ok := deriveFromMerged(reg, c.Parent(), date, t, offset); ok {
			return reg.Derive(rule, c.Parent(), pv)
		}
	}
	return 0, false
}

// deriveFromField computes target from the value of another field, through
// rule arithmetic, registry splits, or a registry ancestor of target.
func deriveFromField(reg *registry.Registry, target, src *chrono.Rule, value int64) (int64, bool) {
	if v, ok := chrono.Extract(src, value, target); ok {
		return v, true
	}
	if v, ok := reg.Derive(target, src, value); ok {
		return v, true
	}
	for _, c := range reg.ParentsOf(target) {
		if c.Parent() == src {
			continue
		}
		if pv, ok := deriveFromField(reg, c.Parent(), src, value); ok {
			return reg.Derive(target, c.Parent(), pv)
		}
	}
	return 0, false
}
