package schedule

// SlotID identifies a time slot within an actuator. OverrideID identifies
// an override within a slot's override table (allocated from an
// actuator-wide counter, so it is unique within its actuator).
type SlotID int
type OverrideID int

// TimeSlot is a schedule rule: a base time period plus named overrides that
// take priority over the base on the dates they cover.
type TimeSlot struct {
	Enabled   bool
	State     ActuatorState
	Base      TimePeriod
	Overrides map[OverrideID]TimePeriod
}

// cloneOverrides returns a shallow copy of the override table.
func cloneOverrides(src map[OverrideID]TimePeriod) map[OverrideID]TimePeriod {
	dst := make(map[OverrideID]TimePeriod, len(src))
	for id, p := range src {
		dst[id] = p
	}
	return dst
}

// Clone returns a deep-enough copy of the slot (overrides table copied) so
// callers can hand out snapshots without aliasing internal state.
func (s TimeSlot) Clone() TimeSlot {
	s.Overrides = cloneOverrides(s.Overrides)
	return s
}

// EffectiveOn returns the time interval this slot prescribes on date d: the
// period of the first override whose date range and weekday cover d (at
// most one can match, enforced by the slot's invariant that overrides
// don't overlap on dates with each other), or the base period's interval if
// no override matches, or ok=false if neither applies.
func (s TimeSlot) EffectiveOn(d Date) (iv TimeInterval, overrideID OverrideID, hasOverride bool, ok bool) {
	for id, period := range s.Overrides {
		if period.CoversDate(d) {
			return period.Interval, id, true, true
		}
	}
	if s.Base.CoversDate(d) {
		return s.Base.Interval, 0, false, true
	}
	return TimeInterval{}, 0, false, false
}

// Overlaps reports whether s and other overlap per the slot-level overlap
// rule: their base periods overlap on dates, and either their base
// intervals overlap or one of either slot's overrides overlaps the other
// slot's base period. Enabled is deliberately not consulted here: I1 treats
// every stored slot, enabled or not, as blocking (see DESIGN.md).
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	if !s.Base.OverlapsOnDates(other.Base) {
		return false
	}
	if s.Base.Interval.Overlaps(other.Base.Interval) {
		return true
	}
	for _, ov := range s.Overrides {
		if ov.Overlaps(other.Base) {
			return true
		}
	}
	for _, ov := range other.Overrides {
		if ov.Overlaps(s.Base) {
			return true
		}
	}
	return false
}

// overlapsPeriod is the degenerate form of Overlaps for a bare candidate
// period (no overrides of its own) checked against an existing slot. Nothing
// in the package calls it: the Actuator's overlap check builds the same probe
// slot itself.
func (s TimeSlot) overlapsPeriod(p TimePeriod) bool {
	probe := TimeSlot{Base: p}
	return s.Overlaps(probe)
}
