package engine

// CycleDetector remembers the state fingerprint after each merge pass.
//
// A pass that changes the state but lands on a state seen before means the
// hooks are oscillating (A rewrites B, B rewrites A back) and the merge can
// never settle. Detecting the repeat ends the merge without waiting for the
// pass quota.
//
// A CycleDetector belongs to a single merge and is not safe for concurrent use.
type CycleDetector struct {
	seen map[string]int
}

// NewCycleDetector creates an empty detector.
func NewCycleDetector() *CycleDetector {
	return &CycleDetector{seen: make(map[string]int)}
}

// Record stores the fingerprint reached after pass. When the fingerprint was
// already seen it returns the earlier pass and true.
func (c *CycleDetector) Record(fingerprint string, pass int) (int, bool) {
	if prev, ok := c.seen[fingerprint]; ok {
		return prev, true
	}
	c.seen[fingerprint] = pass
	return 0, false
}

// Size returns the number of distinct states recorded.
func (c *CycleDetector) Size() int { return len(c.seen) }
