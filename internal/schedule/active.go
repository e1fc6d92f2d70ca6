package schedule

// ActiveSlotKind distinguishes which of the two ActiveSlot variants is in
// effect.
type ActiveSlotKind int

const (
	// SlotActive means a time slot is currently the source of truth.
	SlotActive ActiveSlotKind = iota
	// DefaultActive means the actuator's default state applies.
	DefaultActive
)

// ActiveSlot is the engine worker's rolling summary of which rule (or the
// default) governs an actuator right now, and when that will next change.
type ActiveSlot struct {
	Kind ActiveSlotKind

	// Valid when Kind == SlotActive.
	SlotID      SlotID
	OverrideID  OverrideID
	HasOverride bool

	// Valid when Kind == DefaultActive and a slot will next become active
	// before the day rolls over.
	HasNextSlot     bool
	NextSlotID      SlotID
	NextOverrideID  OverrideID
	NextHasOverride bool

	// EndTime is when the current situation ends; TimeMAX means "until the
	// day rolls over".
	EndTime Time

	// State is the actuator state currently being emitted.
	State ActuatorState
}

// Equal reports whether two ActiveSlot values are structurally identical;
// used to decide whether the engine worker needs to be signalled.
func (a ActiveSlot) Equal(other ActiveSlot) bool {
	if a.Kind != other.Kind || a.EndTime != other.EndTime || !a.State.Equal(other.State) {
		return false
	}
	switch a.Kind {
	case SlotActive:
		return a.SlotID == other.SlotID && a.HasOverride == other.HasOverride &&
			(!a.HasOverride || a.OverrideID == other.OverrideID)
	default:
		if a.HasNextSlot != other.HasNextSlot {
			return false
		}
		if !a.HasNextSlot {
			return true
		}
		return a.NextSlotID == other.NextSlotID && a.NextHasOverride == other.NextHasOverride &&
			(!a.NextHasOverride || a.NextOverrideID == other.NextOverrideID)
	}
}

// Compute derives the ActiveSlot from scratch for the given instant: the
// full, non-incremental recomputation that every incremental update is
// equivalent to in the limit (§8 P5).
func Compute(now Instant, slots map[SlotID]*TimeSlot, defaultState ActuatorState) ActiveSlot {
	for _, id := range sortedIDs(slots) {
		slot := slots[id]
		if !slot.Enabled {
			continue
		}
		if iv, overrideID, hasOverride, ok := slot.EffectiveOn(now.Date); ok && iv.Contains(now.Time) {
			return slotActiveFrom(id, overrideID, hasOverride, iv, slot.State)
		}
	}
	ns, ok := NextActive(slots, now)
	if !ok {
		return ActiveSlot{Kind: DefaultActive, EndTime: TimeMAX, State: defaultState}
	}
	if ns.Interval.Start.Compare(now.Time) == 0 {
		return ActiveSlot{
			Kind:        SlotActive,
			SlotID:      ns.SlotID,
			OverrideID:  ns.OverrideID,
			HasOverride: ns.HasOverride,
			EndTime:     ns.Interval.End,
			State:       ns.State,
		}
	}
	return ActiveSlot{
		Kind:            DefaultActive,
		HasNextSlot:     true,
		NextSlotID:      ns.SlotID,
		NextOverrideID:  ns.OverrideID,
		NextHasOverride: ns.HasOverride,
		EndTime:         ns.Interval.Start,
		State:           defaultState,
	}
}

func slotActiveFrom(id SlotID, overrideID OverrideID, hasOverride bool, iv TimeInterval, state ActuatorState) ActiveSlot {
	return ActiveSlot{
		Kind:        SlotActive,
		SlotID:      id,
		OverrideID:  overrideID,
		HasOverride: hasOverride,
		EndTime:     iv.End,
		State:       state,
	}
}

func defaultActiveWithNext(id SlotID, overrideID OverrideID, hasOverride bool, start Time, defaultState ActuatorState) ActiveSlot {
	return ActiveSlot{
		Kind:            DefaultActive,
		HasNextSlot:     true,
		NextSlotID:      id,
		NextOverrideID:  overrideID,
		NextHasOverride: hasOverride,
		EndTime:         start,
		State:           defaultState,
	}
}

// ApplyAdded is the incremental update for add_time_slot/enable (§4.5
// "added"): if current is DefaultActive and the new slot applies today,
// either the slot becomes active immediately (its interval contains
// now.Time) or it becomes the upcoming slot (its interval starts before
// current's EndTime). Otherwise current is unaffected: I1 guarantees a
// SlotActive situation can't be pre-empted by a newly added, non-
// overlapping slot.
func ApplyAdded(current ActiveSlot, now Instant, id SlotID, slot *TimeSlot, defaultState ActuatorState) ActiveSlot {
	if current.Kind != DefaultActive {
		return current
	}
	iv, overrideID, hasOverride, ok := slot.EffectiveOn(now.Date)
	if !ok {
		return current
	}
	if iv.Contains(now.Time) {
		return slotActiveFrom(id, overrideID, hasOverride, iv, slot.State)
	}
	if iv.Start.Compare(now.Time) > 0 && iv.Start.Compare(current.EndTime) < 0 {
		return defaultActiveWithNext(id, overrideID, hasOverride, iv.Start, defaultState)
	}
	return current
}

// ApplyRemoved is the incremental update for remove_time_slot/disable
// (§4.5 "removed"): if the removed slot was the active one or the recorded
// upcoming one, a full recompute is needed (another slot may now be
// reachable that this slot was previously shadowing as "next"); otherwise
// current is unaffected. slots must already have id removed.
func ApplyRemoved(current ActiveSlot, id SlotID, now Instant, slots map[SlotID]*TimeSlot, defaultState ActuatorState) ActiveSlot {
	affected := (current.Kind == SlotActive && current.SlotID == id) ||
		(current.Kind == DefaultActive && current.HasNextSlot && current.NextSlotID == id)
	if !affected {
		return current
	}
	return Compute(now, slots, defaultState)
}

// ApplyModified is the incremental update for set_time_period/
// add_time_override/remove_time_override (§4.5 "modified"): recompute the
// modified slot's effect on today and either adopt it directly (active now
// or upcoming before the current end), or, if the slot was previously
// relevant to the current ActiveSlot but no longer produces a directly
// adoptable result, fall back to a full recompute.
func ApplyModified(current ActiveSlot, now Instant, id SlotID, slot *TimeSlot, slots map[SlotID]*TimeSlot, defaultState ActuatorState) ActiveSlot {
	iv, overrideID, hasOverride, ok := slot.EffectiveOn(now.Date)
	if ok {
		if iv.Contains(now.Time) {
			return slotActiveFrom(id, overrideID, hasOverride, iv, slot.State)
		}
		if iv.Start.Compare(now.Time) > 0 && iv.Start.Compare(current.EndTime) < 0 {
			return defaultActiveWithNext(id, overrideID, hasOverride, iv.Start, defaultState)
		}
	}
	wasRelevant := (current.Kind == SlotActive && current.SlotID == id) ||
		(current.Kind == DefaultActive && current.HasNextSlot && current.NextSlotID == id)
	if wasRelevant {
		return Compute(now, slots, defaultState)
	}
	return current
}
