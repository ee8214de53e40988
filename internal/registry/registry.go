package registry

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
)

// Registry maps parent rules to calculators.
type Registry struct {
	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

// snapshot is immutable once published.
type snapshot struct {
	byParent map[*chrono.Rule]Calculator
	byChild  map[*chrono.Rule][]Calculator
	order    []Calculator
}

// New creates an empty registry.
func New() *Registry {
	r := &Registry{}
	r.snap.Store(&snapshot{
		byParent: map[*chrono.Rule]Calculator{},
		byChild:  map[*chrono.Rule][]Calculator{},
	})
	return r
}

// Register installs c unless a calculator for the same parent exists.
// It reports whether c was installed. A calculator that would make a rule its
// own descendant is rejected with an error.
func (r *Registry) Register(c Calculator) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("calculator must not be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	if _, exists := cur.byParent[c.Parent()]; exists {
		return false, nil
	}
	if cur.reaches(c.Large(), c.Parent()) || cur.reaches(c.Small(), c.Parent()) {
		return false, fmt.Errorf("calculator for %s would create a cycle", c.Parent().ID())
	}

	next := &snapshot{
		byParent: make(map[*chrono.Rule]Calculator, len(cur.byParent)+1),
		byChild:  make(map[*chrono.Rule][]Calculator, len(cur.byChild)+2),
		order:    append(slices.Clone(cur.order), c),
	}
	for k, v := range cur.byParent {
		next.byParent[k] = v
	}
	for k, v := range cur.byChild {
		next.byChild[k] = v
	}
	next.byParent[c.Parent()] = c
	for _, child := range []*chrono.Rule{c.Large(), c.Small()} {
		next.byChild[child] = append(slices.Clone(next.byChild[child]), c)
	}
	r.snap.Store(next)
	return true, nil
}

// RegisterDivMod builds and registers a DivMod calculator.
func (r *Registry) RegisterDivMod(parent, large, small *chrono.Rule, divisor int64, bases Bases) (bool, error) {
	c, err := NewDivMod(parent, large, small, divisor, bases)
	if err != nil {
		return false, err
	}
	return r.Register(c)
}

// RegisterBitPack builds and registers a BitPack calculator.
func (r *Registry) RegisterBitPack(parent, large, small *chrono.Rule, bits uint) (bool, error) {
	c, err := NewBitPack(parent, large, small, bits)
	if err != nil {
		return false, err
	}
	return r.Register(c)
}

// Lookup returns the calculator whose parent is rule.
func (r *Registry) Lookup(parent *chrono.Rule) (Calculator, bool) {
	c, ok := r.snap.Load().byParent[parent]
	return c, ok
}

// ParentsOf returns the calculators in which rule is a child, in
// registration order.
func (r *Registry) ParentsOf(child *chrono.Rule) []Calculator {
	return slices.Clone(r.snap.Load().byChild[child])
}

// Calculators returns every calculator in registration order.
func (r *Registry) Calculators() []Calculator {
	return slices.Clone(r.snap.Load().order)
}

// Len returns the number of registered calculators.
func (r *Registry) Len() int {
	return len(r.snap.Load().order)
}

// Rules returns every rule mentioned by a calculator, in chrono.Compare order.
func (r *Registry) Rules() []*chrono.Rule {
	seen := map[*chrono.Rule]bool{}
	var out []*chrono.Rule
	for _, c := range r.snap.Load().order {
		for _, rule := range []*chrono.Rule{c.Parent(), c.Large(), c.Small()} {
			if !seen[rule] {
				seen[rule] = true
				out = append(out, rule)
			}
		}
	}
	slices.SortFunc(out, chrono.Compare)
	return out
}

// Derive computes target from a value of an ancestor rule by splitting down
// the registered hierarchy. It reports false when target is not below from.
func (r *Registry) Derive(target, from *chrono.Rule, value int64) (int64, bool) {
	return r.snap.Load().derive(target, from, value)
}

func (s *snapshot) derive(target, from *chrono.Rule, value int64) (int64, bool) {
	if from == target {
		return value, true
	}
	c, ok := s.byParent[from]
	if !ok {
		return 0, false
	}
	large, small := c.Split(value)
	if v, ok := s.derive(target, c.Large(), large); ok {
		return v, true
	}
	return s.derive(target, c.Small(), small)
}

// reaches reports whether target is from or one of its descendants.
func (s *snapshot) reaches(from, target *chrono.Rule) bool {
	if from == target {
		return true
	}
	c, ok := s.byParent[from]
	if !ok {
		return false
	}
	return s.reaches(c.Large(), target) || s.reaches(c.Small(), target)
}
