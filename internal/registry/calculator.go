package registry

import (
	"errors"
	"fmt"
	"math"

	"github.com/ThreeTen/threetenbp-sub007/internal/chrono"
	"github.com/ThreeTen/threetenbp-sub007/internal/temporal"
)

// Calculator relates a parent rule to a large and a small child rule.
type Calculator interface {
	Parent() *chrono.Rule
	Large() *chrono.Rule
	Small() *chrono.Rule

	// Split breaks a parent value into its children.
	Split(v int64) (large, small int64)

	// Join combines child values into the parent. It reports false when the
	// children cannot be represented in the parent.
	Join(large, small int64) (int64, bool)

	// Mergeable reports whether the engine may join children into the parent
	// during a merge. Split-only calculators are used for checking.
	Mergeable() bool
}

// Bases are the values that count as zero for the parent and each child.
// Month-of-year counts from 1, so the year/month split of ZeroEpochMonth uses
// Bases{Small: 1}.
type Bases struct {
	Parent int64
	Large  int64
	Small  int64
}

// DivMod is the carry relation parent = (large-lb)*divisor + (small-sb) + pb.
type DivMod struct {
	parent  *chrono.Rule
	large   *chrono.Rule
	small   *chrono.Rule
	divisor int64
	bases   Bases
}

// NewDivMod creates a div-mod calculator. The divisor must be positive.
func NewDivMod(parent, large, small *chrono.Rule, divisor int64, bases Bases) (*DivMod, error) {
	if err := checkRules(parent, large, small); err != nil {
		return nil, err
	}
	if divisor <= 0 {
		return nil, fmt.Errorf("divisor for %s must be positive, got %d", parent.ID(), divisor)
	}
	return &DivMod{parent: parent, large: large, small: small, divisor: divisor, bases: bases}, nil
}

func (c *DivMod) Parent() *chrono.Rule { return c.parent }
func (c *DivMod) Large() *chrono.Rule  { return c.large }
func (c *DivMod) Small() *chrono.Rule  { return c.small }
func (c *DivMod) Mergeable() bool      { return true }

// Divisor returns the number of small units per large unit.
func (c *DivMod) Divisor() int64 { return c.divisor }

// Split implements Calculator. Floor semantics keep the small value inside
// [sb, sb+divisor) for negative parents too.
func (c *DivMod) Split(v int64) (int64, int64) {
	d := v - c.bases.Parent
	return temporal.FloorDiv(d, c.divisor) + c.bases.Large, temporal.FloorMod(d, c.divisor) + c.bases.Small
}

// Join implements Calculator. Out-of-range children carry leniently, so
// MinuteOfHour 75 adds one hour and fifteen minutes.
func (c *DivMod) Join(large, small int64) (int64, bool) {
	l := large - c.bases.Large
	if l > math.MaxInt64/c.divisor || l < math.MinInt64/c.divisor {
		return 0, false
	}
	v := l * c.divisor
	s := small - c.bases.Small + c.bases.Parent
	if (s > 0 && v > math.MaxInt64-s) || (s < 0 && v < math.MinInt64-s) {
		return 0, false
	}
	return v + s, true
}

func (c *DivMod) String() string {
	return fmt.Sprintf("%s = %s * %d + %s", c.parent.Name(), c.large.Name(), c.divisor, c.small.Name())
}

// BitPack is the packing relation parent = large<<bits | small.
type BitPack struct {
	parent *chrono.Rule
	large  *chrono.Rule
	small  *chrono.Rule
	bits   uint
}

// NewBitPack creates a bit-pack calculator with 1 to 32 small bits.
func NewBitPack(parent, large, small *chrono.Rule, bits uint) (*BitPack, error) {
	if err := checkRules(parent, large, small); err != nil {
		return nil, err
	}
	if bits == 0 || bits > 32 {
		return nil, fmt.Errorf("bit count for %s must be 1-32, got %d", parent.ID(), bits)
	}
	return &BitPack{parent: parent, large: large, small: small, bits: bits}, nil
}

func (c *BitPack) Parent() *chrono.Rule { return c.parent }
func (c *BitPack) Large() *chrono.Rule  { return c.large }
func (c *BitPack) Small() *chrono.Rule  { return c.small }
func (c *BitPack) Mergeable() bool      { return false }

// Bits returns the width of the small field.
func (c *BitPack) Bits() uint { return c.bits }

// Split implements Calculator using an arithmetic shift, so negative parents
// keep a negative large value and a non-negative small value.
func (c *BitPack) Split(v int64) (int64, int64) {
	return v >> c.bits, v & (1<<c.bits - 1)
}

// Join implements Calculator. The small value must fit in the low bits.
func (c *BitPack) Join(large, small int64) (int64, bool) {
	if small < 0 || small >= 1<<c.bits {
		return 0, false
	}
	limit := int64(1) << (63 - c.bits)
	if large >= limit || large < -limit {
		return 0, false
	}
	return large<<c.bits | small, true
}

func (c *BitPack) String() string {
	return fmt.Sprintf("%s = %s << %d | %s", c.parent.Name(), c.large.Name(), c.bits, c.small.Name())
}

func checkRules(parent, large, small *chrono.Rule) error {
	if parent == nil || large == nil || small == nil {
		return errors.New("calculator rules must not be nil")
	}
	if parent == large || parent == small || large == small {
		return fmt.Errorf("calculator for %s needs three distinct rules", parent.ID())
	}
	return nil
}
