package temporal

// ZoneRules supplies the offsets that are valid for a local date-time.
// Implementations must be safe for concurrent use.
type ZoneRules interface {
	// ID names the zone.
	ID() string
	// OffsetInfo returns either the single valid offset for local or the
	// transition that local falls into.
	OffsetInfo(local DateTime) OffsetInfo
	// IsValidOffset reports whether offset is valid for local.
	IsValidOffset(local DateTime, offset Offset) bool
}

// Resolver chooses an offset for a local date-time that falls into a gap or
// overlap. For non-transition info it must return info.Offset.
type Resolver interface {
	Resolve(zone string, local DateTime, info OffsetInfo) (Offset, error)
}

// Transition is a change of offset. Local is the wall-clock date-time at which
// the change happens, expressed in the Before offset.
type Transition struct {
	Local  DateTime
	Before Offset
	After  Offset
}

// IsGap reports whether local times are skipped by the transition.
func (t Transition) IsGap() bool { return t.After.seconds > t.Before.seconds }

// IsOverlap reports whether local times repeat across the transition.
func (t Transition) IsOverlap() bool { return t.After.seconds < t.Before.seconds }

// contains reports whether local lies inside the gap or overlap window.
func (t Transition) contains(local DateTime) bool {
	delta := int64(t.After.seconds - t.Before.seconds)
	other, err := t.Local.PlusSeconds(delta)
	if err != nil {
		return false
	}
	start, end := t.Local, other
	if delta < 0 {
		start, end = other, t.Local
	}
	return local.Compare(start) >= 0 && local.Compare(end) < 0
}

// OffsetInfo is the result of a zone lookup. When Transition is nil, Offset
// is the single valid offset.
type OffsetInfo struct {
	Offset     Offset
	Transition *Transition
}

// IsTransition reports whether the lookup landed in a gap or overlap.
func (i OffsetInfo) IsTransition() bool { return i.Transition != nil }

// FixedZone is a zone with one offset for all time.
type FixedZone struct {
	offset Offset
}

// NewFixedZone returns a zone that always uses offset.
func NewFixedZone(offset Offset) FixedZone { return FixedZone{offset: offset} }

// ID returns the offset text.
func (z FixedZone) ID() string { return z.offset.String() }

// OffsetInfo always returns the fixed offset.
func (z FixedZone) OffsetInfo(DateTime) OffsetInfo { return OffsetInfo{Offset: z.offset} }

// IsValidOffset reports whether offset equals the fixed offset.
func (z FixedZone) IsValidOffset(_ DateTime, offset Offset) bool { return offset == z.offset }

// TransitionZone is a zone with exactly one offset transition.
type TransitionZone struct {
	id         string
	transition Transition
}

// NewTransitionZone returns a zone named id that changes offset once.
func NewTransitionZone(id string, t Transition) TransitionZone {
	return TransitionZone{id: id, transition: t}
}

// ID returns the zone name.
func (z TransitionZone) ID() string { return z.id }

// OffsetInfo returns Before ahead of the transition window, After past it, and
// the transition itself inside it.
func (z TransitionZone) OffsetInfo(local DateTime) OffsetInfo {
	tr := z.transition
	if tr.contains(local) {
		return OffsetInfo{Offset: tr.Before, Transition: &tr}
	}
	end := tr.Local
	if tr.IsGap() {
		end, _ = tr.Local.PlusSeconds(int64(tr.After.seconds - tr.Before.seconds))
	}
	if local.Compare(end) < 0 {
		return OffsetInfo{Offset: tr.Before}
	}
	return OffsetInfo{Offset: tr.After}
}

// IsValidOffset reports whether offset is one of the offsets valid at local.
// Inside a gap no offset is valid; inside an overlap both are.
func (z TransitionZone) IsValidOffset(local DateTime, offset Offset) bool {
	info := z.OffsetInfo(local)
	if !info.IsTransition() {
		return info.Offset == offset
	}
	if info.Transition.IsGap() {
		return false
	}
	return offset == info.Transition.Before || offset == info.Transition.After
}

// StrictResolver rejects every gap and overlap.
type StrictResolver struct{}

// Resolve implements Resolver.
func (StrictResolver) Resolve(zone string, local DateTime, info OffsetInfo) (Offset, error) {
	if !info.IsTransition() {
		return info.Offset, nil
	}
	return Offset{}, &ZoneResolutionError{Zone: zone, Local: local, Gap: info.Transition.IsGap()}
}

// PreTransitionResolver picks the offset in force before the transition for
// both gaps and overlaps.
type PreTransitionResolver struct{}

// Resolve implements Resolver.
func (PreTransitionResolver) Resolve(_ string, _ DateTime, info OffsetInfo) (Offset, error) {
	if info.IsTransition() {
		return info.Transition.Before, nil
	}
	return info.Offset, nil
}

// PostTransitionResolver picks the offset in force after the transition.
type PostTransitionResolver struct{}

// Resolve implements Resolver.
func (PostTransitionResolver) Resolve(_ string, _ DateTime, info OffsetInfo) (Offset, error) {
	if info.IsTransition() {
		return info.Transition.After, nil
	}
	return info.Offset, nil
}
