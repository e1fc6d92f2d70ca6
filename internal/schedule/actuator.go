package schedule

// ActuatorInfo is the static description of an actuator.
type ActuatorInfo struct {
	Name string
	Type ActuatorType
}

// Actuator holds one actuator's slot table, default state and id counters,
// and validates and applies the mutation API of §4.4. It has no concurrency
// control of its own and does not read the clock: every operation that
// needs "now" (incremental ActiveSlot derivation) takes it as a parameter.
// Locking and ActiveSlot/engine coordination live one layer up, in
// internal/server, which is what owns an Actuator for the lifetime of the
// process.
type Actuator struct {
	Info           ActuatorInfo
	DefaultState   ActuatorState
	Slots          map[SlotID]*TimeSlot
	NextSlotID     SlotID
	NextOverrideID OverrideID
}

// NewActuator creates an actuator with no slots, failing if the default
// state is not compatible with info.Type.
func NewActuator(info ActuatorInfo, defaultState ActuatorState) (*Actuator, error) {
	if !defaultState.CompatibleWith(info.Type) {
		return nil, invalidArg(KindActuatorState)
	}
	return &Actuator{
		Info:         info,
		DefaultState: defaultState,
		Slots:        make(map[SlotID]*TimeSlot),
	}, nil
}

// ListTimeSlots returns a snapshot of the slot table.
func (a *Actuator) ListTimeSlots() map[SlotID]TimeSlot {
	out := make(map[SlotID]TimeSlot, len(a.Slots))
	for id, s := range a.Slots {
		out[id] = s.Clone()
	}
	return out
}

func (a *Actuator) slot(id SlotID) (*TimeSlot, error) {
	s, ok := a.Slots[id]
	if !ok {
		return nil, invalidArg(KindTimeSlotID)
	}
	return s, nil
}

// findOverlap returns the id of an existing slot (other than excludeID, if
// excludeSelf) whose stored period overlaps probe, in ascending id order
// for determinism.
func (a *Actuator) findOverlap(probe TimeSlot, excludeID SlotID, excludeSelf bool) (SlotID, bool) {
	ids := a.sortedSlotIDs()
	for _, id := range ids {
		if excludeSelf && id == excludeID {
			continue
		}
		if a.Slots[id].Overlaps(probe) {
			return id, true
		}
	}
	return 0, false
}

func (a *Actuator) sortedSlotIDs() []SlotID {
	ids := make([]SlotID, 0, len(a.Slots))
	for id := range a.Slots {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// SetDefaultState validates and assigns the actuator's default state.
func (a *Actuator) SetDefaultState(state ActuatorState) error {
	if !state.CompatibleWith(a.Info.Type) {
		return invalidArg(KindActuatorState)
	}
	a.DefaultState = state
	return nil
}

// AddTimeSlot validates period and state, rejects it if it overlaps an
// existing slot, and otherwise inserts it and allocates its id.
func (a *Actuator) AddTimeSlot(period TimePeriod, state ActuatorState, enabled bool) (SlotID, *TimeSlot, error) {
	if !period.Valid() {
		return 0, nil, invalidArg(KindTimePeriod)
	}
	if !state.CompatibleWith(a.Info.Type) {
		return 0, nil, invalidArg(KindActuatorState)
	}
	probe := TimeSlot{Base: period}
	if other, found := a.findOverlap(probe, 0, false); found {
		return 0, nil, &TimeSlotOverlapError{SlotID: other}
	}

	id := a.NextSlotID
	slot := &TimeSlot{
		Enabled:   enabled,
		State:     state,
		Base:      period,
		Overrides: make(map[OverrideID]TimePeriod),
	}
	a.Slots[id] = slot
	a.NextSlotID++
	return id, slot, nil
}

// RemoveTimeSlot deletes a slot, returning it so the caller can update any
// derived ActiveSlot.
func (a *Actuator) RemoveTimeSlot(id SlotID) (*TimeSlot, error) {
	slot, err := a.slot(id)
	if err != nil {
		return nil, err
	}
	delete(a.Slots, id)
	return slot, nil
}

// SetTimePeriod builds the candidate period from patch, rejects it if
// invalid or if it overlaps another slot, and otherwise assigns it.
func (a *Actuator) SetTimePeriod(id SlotID, patch TimePeriodPatch) error {
	slot, err := a.slot(id)
	if err != nil {
		return err
	}
	candidate := patch.Apply(slot.Base)
	if !candidate.Valid() {
		return invalidArg(KindTimePeriod)
	}
	probe := TimeSlot{Base: candidate, Overrides: slot.Overrides}
	if other, found := a.findOverlap(probe, id, true); found {
		return &TimeSlotOverlapError{SlotID: other}
	}
	slot.Base = candidate
	return nil
}

// SetEnabled flips the slot's enabled flag, reporting whether it actually
// changed (so the caller knows whether to re-derive ActiveSlot).
func (a *Actuator) SetEnabled(id SlotID, enabled bool) (changed bool, slot *TimeSlot, err error) {
	s, err := a.slot(id)
	if err != nil {
		return false, nil, err
	}
	if s.Enabled == enabled {
		return false, s, nil
	}
	s.Enabled = enabled
	return true, s, nil
}

// SetActuatorState validates and assigns the state a slot applies while
// active.
func (a *Actuator) SetActuatorState(id SlotID, state ActuatorState) error {
	slot, err := a.slot(id)
	if err != nil {
		return err
	}
	if !state.CompatibleWith(a.Info.Type) {
		return invalidArg(KindActuatorState)
	}
	slot.State = state
	return nil
}

// AddTimeOverride validates period, rejects it if it overlaps another
// slot's period or (on dates) one of this slot's existing overrides, and
// otherwise inserts it and allocates its id from the actuator-wide
// counter.
func (a *Actuator) AddTimeOverride(slotID SlotID, period TimePeriod) (OverrideID, error) {
	slot, err := a.slot(slotID)
	if err != nil {
		return 0, err
	}
	if !period.Valid() {
		return 0, invalidArg(KindTimePeriod)
	}
	if other, found := a.findOverlap(TimeSlot{Base: period}, slotID, true); found {
		return 0, &TimeSlotOverlapError{SlotID: other}
	}
	for existingID, existing := range slot.Overrides {
		if existing.OverlapsOnDates(period) {
			return 0, &TimeOverrideOverlapError{OverrideID: existingID}
		}
	}

	id := a.NextOverrideID
	slot.Overrides[id] = period
	a.NextOverrideID++
	return id, nil
}

// RemoveTimeOverride deletes an override from a slot.
func (a *Actuator) RemoveTimeOverride(slotID SlotID, overrideID OverrideID) error {
	slot, err := a.slot(slotID)
	if err != nil {
		return err
	}
	if _, ok := slot.Overrides[overrideID]; !ok {
		return invalidArg(KindTimeOverrideID)
	}
	delete(slot.Overrides, overrideID)
	return nil
}
