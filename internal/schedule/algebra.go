package schedule

// NextActiveEntry is one candidate produced by NextActive or Enumerate: the
// interval a slot prescribes, the state it applies, and which slot/override
// produced it.
type NextActiveEntry struct {
	SlotID      SlotID
	OverrideID  OverrideID
	HasOverride bool
	Interval    TimeInterval
	State       ActuatorState
}

func sortedIDs(slots map[SlotID]*TimeSlot) []SlotID {
	ids := make([]SlotID, 0, len(slots))
	for id := range slots {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// NextActive returns, among all enabled slots whose EffectiveOn(now.Date)
// exists and whose interval starts at or after now.Time (shifted order),
// the one with the smallest start, ties broken by slot id. It reports
// ok=false if no such slot exists.
func NextActive(slots map[SlotID]*TimeSlot, now Instant) (entry NextActiveEntry, ok bool) {
	for _, id := range sortedIDs(slots) {
		slot := slots[id]
		if !slot.Enabled {
			continue
		}
		iv, overrideID, hasOverride, exists := slot.EffectiveOn(now.Date)
		if !exists {
			continue
		}
		if iv.Start.Compare(now.Time) < 0 {
			continue
		}
		candidate := NextActiveEntry{
			SlotID:      id,
			OverrideID:  overrideID,
			HasOverride: hasOverride,
			Interval:    iv,
			State:       slot.State,
		}
		if !ok || iv.Start.Compare(entry.Interval.Start) < 0 {
			entry, ok = candidate, true
		}
	}
	return entry, ok
}

// Enumerate returns every enabled slot's effective interval on date,
// ordered by interval start (shifted order), ties broken by slot id: the
// day's timeline.
func Enumerate(slots map[SlotID]*TimeSlot, date Date) []NextActiveEntry {
	var out []NextActiveEntry
	for _, id := range sortedIDs(slots) {
		slot := slots[id]
		if !slot.Enabled {
			continue
		}
		iv, overrideID, hasOverride, exists := slot.EffectiveOn(date)
		if !exists {
			continue
		}
		out = append(out, NextActiveEntry{
			SlotID:      id,
			OverrideID:  overrideID,
			HasOverride: hasOverride,
			Interval:    iv,
			State:       slot.State,
		})
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Interval.Start.Compare(out[j].Interval.Start) > 0; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
