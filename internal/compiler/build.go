package compiler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
	"github.com/ThreeTen/threetenbp-sub007/internal/registry"
)

// ValidationErrors is the error Build returns for a declaration that fails
// Validate.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Chronology is a compiled chronology: its rules and the calculators that
// relate them to each other and to the ISO rules.
type Chronology struct {
	name        string
	rules       []*chrono.Rule
	byName      map[string]*chrono.Rule
	calculators []registry.Calculator
}

// Build validates spec and creates its rules and calculators.
func Build(spec *ChronologySpec) (*Chronology, error) {
	if errs := Validate(spec); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	c := &Chronology{name: spec.Name, byName: make(map[string]*chrono.Rule, len(spec.Rules))}
	for _, rs := range spec.Rules {
		unit, _ := chrono.ParseUnit(rs.Unit)
		rng, _ := chrono.ParseUnit(rs.Range)
		var opts []chrono.RuleOption
		if rs.SmallestMax != nil {
			opts = append(opts, chrono.WithSmallestMaximum(*rs.SmallestMax))
		}
		r, err := chrono.NewRule(spec.Name, rs.Name, unit, rng, rs.Min, rs.Max, opts...)
		if err != nil {
			return nil, fmt.Errorf("chronology %s: %w", spec.Name, err)
		}
		c.rules = append(c.rules, r)
		c.byName[rs.Name] = r
	}
	slices.SortFunc(c.rules, chrono.Compare)

	for i, rel := range spec.Relations {
		parent, _ := c.Rule(rel.Parent)
		large, _ := c.Rule(rel.Large)
		small, _ := c.Rule(rel.Small)

		var (
			calc registry.Calculator
			err  error
		)
		if rel.IsBitPack() {
			calc, err = registry.NewBitPack(parent, large, small, uint(rel.Bits))
		} else {
			calc, err = registry.NewDivMod(parent, large, small, rel.Divisor, registry.Bases{
				Parent: rel.ParentBase,
				Large:  rel.LargeBase,
				Small:  rel.SmallBase,
			})
		}
		if err != nil {
			return nil, fmt.Errorf("chronology %s relation[%d]: %w", spec.Name, i, err)
		}
		c.calculators = append(c.calculators, calc)
	}
	return c, nil
}

// Name returns the chronology name.
func (c *Chronology) Name() string { return c.name }

// Rules returns the declared rules in chrono.Compare order.
func (c *Chronology) Rules() []*chrono.Rule { return slices.Clone(c.rules) }

// Calculators returns the relations in declaration order.
func (c *Chronology) Calculators() []registry.Calculator { return slices.Clone(c.calculators) }

// Rule resolves name to a declared rule, falling back to the ISO rules.
func (c *Chronology) Rule(name string) (*chrono.Rule, bool) {
	if r, ok := c.byName[name]; ok {
		return r, true
	}
	return chrono.Lookup(name)
}

// Install registers the calculators with reg and returns how many were new.
// Calculators whose parent already has one are left alone.
func (c *Chronology) Install(reg *registry.Registry) (int, error) {
	installed := 0
	for _, calc := range c.calculators {
		ok, err := reg.Register(calc)
		if err != nil {
			return installed, fmt.Errorf("chronology %s: %w", c.name, err)
		}
		if ok {
			installed++
		}
	}
	return installed, nil
}

// Catalog resolves rule names across the ISO rules and a set of compiled
// chronologies. Qualified names (Mock.Century) select a chronology; bare
// names search the ISO rules first, then each chronology in order.
type Catalog struct {
	chronologies []*Chronology
}

// NewCatalog returns a catalog over chronologies.
func NewCatalog(chronologies ...*Chronology) *Catalog {
	return &Catalog{chronologies: chronologies}
}

// Chronologies returns the chronologies in the catalog.
func (cat *Catalog) Chronologies() []*Chronology { return slices.Clone(cat.chronologies) }

// Lookup finds a rule by bare or qualified name.
func (cat *Catalog) Lookup(name string) (*chrono.Rule, bool) {
	if r, ok := chrono.Lookup(name); ok {
		return r, true
	}
	chronology, bare, qualified := strings.Cut(name, ".")
	for _, c := range cat.chronologies {
		if qualified {
			if strings.EqualFold(c.name, chronology) {
				r, ok := c.byName[bare]
				return r, ok
			}
			continue
		}
		if r, ok := c.byName[name]; ok {
			return r, true
		}
	}
	return nil, false
}

// Rules returns every rule the catalog knows, ISO rules included, in
// chrono.Compare order.
func (cat *Catalog) Rules() []*chrono.Rule {
	rules := chrono.ISORules()
	for _, c := range cat.chronologies {
		rules = append(rules, c.rules...)
	}
	slices.SortFunc(rules, chrono.Compare)
	return rules
}

// Registry returns a fresh ISO registry with every chronology installed.
func (cat *Catalog) Registry() (*registry.Registry, error) {
	reg := registry.NewISO()
	for _, c := range cat.chronologies {
		if _, err := c.Install(reg); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
