package schedule_test

import (
	"errors"
	"testing"

	"github.com/corax26/servoscheduler/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustActuator(t *testing.T, typ schedule.ActuatorType, def schedule.ActuatorState) *schedule.Actuator {
	t.Helper()
	a, err := schedule.NewActuator(schedule.ActuatorInfo{Name: "porch-light", Type: typ}, def)
	require.NoError(t, err)
	return a
}

func TestNewActuator_RejectsIncompatibleDefault(t *testing.T) {
	_, err := schedule.NewActuator(schedule.ActuatorInfo{Name: "valve", Type: schedule.ToggleType}, schedule.FloatState(1))
	require.Error(t, err)
	var invalidArg *schedule.InvalidArgumentError
	require.True(t, errors.As(err, &invalidArg))
	assert.Equal(t, schedule.KindActuatorState, invalidArg.Kind)
}

func TestAddTimeSlot_RejectsOverlap(t *testing.T) {
	a := mustActuator(t, schedule.ToggleType, schedule.BoolState(false))
	p1 := fullYearPeriod(9, 17)
	_, _, err := a.AddTimeSlot(p1, schedule.BoolState(true), true)
	require.NoError(t, err)

	p2 := fullYearPeriod(16, 20)
	_, _, err = a.AddTimeSlot(p2, schedule.BoolState(true), true)
	require.Error(t, err)
	var overlap *schedule.TimeSlotOverlapError
	require.True(t, errors.As(err, &overlap))
	assert.True(t, errors.Is(err, schedule.ErrTimeSlotOverlap))
}

func TestAddTimeSlot_RejectsTypeMismatch(t *testing.T) {
	a := mustActuator(t, schedule.ToggleType, schedule.BoolState(false))
	_, _, err := a.AddTimeSlot(fullYearPeriod(9, 17), schedule.FloatState(0.5), true)
	require.Error(t, err)
	var invalidArg *schedule.InvalidArgumentError
	require.True(t, errors.As(err, &invalidArg))
	assert.Equal(t, schedule.KindActuatorState, invalidArg.Kind)
}

func TestAddTimeSlot_RejectsOutOfBoundsFloat(t *testing.T) {
	a := mustActuator(t, schedule.FloatType(0, 10), schedule.FloatState(0))
	_, _, err := a.AddTimeSlot(fullYearPeriod(9, 17), schedule.FloatState(20), true)
	require.Error(t, err)

	_, _, err = a.AddTimeSlot(fullYearPeriod(9, 17), schedule.FloatState(5), true)
	require.NoError(t, err)
}

func TestSetTimePeriod_PatchSemantics(t *testing.T) {
	a := mustActuator(t, schedule.ToggleType, schedule.BoolState(false))
	id, _, err := a.AddTimeSlot(fullYearPeriod(9, 17), schedule.BoolState(true), true)
	require.NoError(t, err)

	patch := schedule.TimePeriodPatch{
		IntervalStart: schedule.TimeEmpty,
		IntervalEnd:   schedule.Time{Hour: 18},
		DateStart:     schedule.DateEmpty,
		DateEnd:       schedule.DateEmpty,
		Days:          schedule.NoWeekdays,
	}
	require.NoError(t, a.SetTimePeriod(id, patch))

	slots := a.ListTimeSlots()
	slot := slots[id]
	assert.Equal(t, schedule.Time{Hour: 9}, slot.Base.Interval.Start)
	assert.Equal(t, schedule.Time{Hour: 18}, slot.Base.Interval.End)
}

func TestSetTimePeriod_RejectsOverlapAfterPatch(t *testing.T) {
	a := mustActuator(t, schedule.ToggleType, schedule.BoolState(false))
	id1, _, err := a.AddTimeSlot(fullYearPeriod(9, 12), schedule.BoolState(true), true)
	require.NoError(t, err)
	_, _, err = a.AddTimeSlot(fullYearPeriod(14, 17), schedule.BoolState(true), true)
	require.NoError(t, err)

	patch := schedule.TimePeriodPatch{
		IntervalStart: schedule.TimeEmpty,
		IntervalEnd:   schedule.Time{Hour: 15},
		DateStart:     schedule.DateEmpty,
		DateEnd:       schedule.DateEmpty,
		Days:          schedule.NoWeekdays,
	}
	err = a.SetTimePeriod(id1, patch)
	require.Error(t, err)
	assert.True(t, errors.Is(err, schedule.ErrTimeSlotOverlap))
}

func TestAddTimeOverride_RejectsOverlapWithOtherOverride(t *testing.T) {
	a := mustActuator(t, schedule.ToggleType, schedule.BoolState(false))
	id, _, err := a.AddTimeSlot(fullYearPeriod(9, 17), schedule.BoolState(true), true)
	require.NoError(t, err)

	christmas := schedule.Date{Year: 2024, Month: 12, Day: 25}
	ov1 := schedule.TimePeriod{
		Interval: schedule.TimeInterval{Start: schedule.Time{Hour: 10}, End: schedule.Time{Hour: 12}},
		Dates:    schedule.DateRange{Start: christmas, End: christmas},
		Days:     schedule.AllWeekdays,
	}
	_, err = a.AddTimeOverride(id, ov1)
	require.NoError(t, err)

	ov2 := schedule.TimePeriod{
		Interval: schedule.TimeInterval{Start: schedule.Time{Hour: 13}, End: schedule.Time{Hour: 14}},
		Dates:    schedule.DateRange{Start: christmas, End: christmas},
		Days:     schedule.AllWeekdays,
	}
	_, err = a.AddTimeOverride(id, ov2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, schedule.ErrTimeOverrideOverlap))
}

func TestRemoveTimeSlot_UnknownID(t *testing.T) {
	a := mustActuator(t, schedule.ToggleType, schedule.BoolState(false))
	_, err := a.RemoveTimeSlot(42)
	require.Error(t, err)
	var invalidArg *schedule.InvalidArgumentError
	require.True(t, errors.As(err, &invalidArg))
	assert.Equal(t, schedule.KindTimeSlotID, invalidArg.Kind)
}

func TestSetEnabled_ReportsChange(t *testing.T) {
	a := mustActuator(t, schedule.ToggleType, schedule.BoolState(false))
	id, _, err := a.AddTimeSlot(fullYearPeriod(9, 17), schedule.BoolState(true), true)
	require.NoError(t, err)

	changed, _, err := a.SetEnabled(id, true)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, _, err = a.SetEnabled(id, false)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestAddRemoveTimeSlot_RoundTrip(t *testing.T) {
	// R1: add_time_slot then remove_time_slot returns the actuator to its
	// prior state, though NextSlotID (a counter, not observable state) may
	// have advanced.
	a := mustActuator(t, schedule.ToggleType, schedule.BoolState(false))
	before := a.ListTimeSlots()
	nextIDBefore := a.NextSlotID

	id, _, err := a.AddTimeSlot(fullYearPeriod(9, 17), schedule.BoolState(true), true)
	require.NoError(t, err)
	assert.Equal(t, nextIDBefore, id, "first allocated id equals the counter's prior value")

	_, err = a.RemoveTimeSlot(id)
	require.NoError(t, err)

	assert.Equal(t, before, a.ListTimeSlots())
	assert.Equal(t, nextIDBefore+1, a.NextSlotID, "counter has advanced and is not rolled back")
}

func TestAddRemoveTimeSlot_RoundTrip_WithOverrides(t *testing.T) {
	// R1 still holds when the removed slot carried overrides: the whole
	// slot (including its overrides) disappears, nothing else changes.
	a := mustActuator(t, schedule.ToggleType, schedule.BoolState(false))
	keepID, _, err := a.AddTimeSlot(fullYearPeriod(18, 20), schedule.BoolState(true), true)
	require.NoError(t, err)
	before := a.ListTimeSlots()

	id, _, err := a.AddTimeSlot(fullYearPeriod(9, 17), schedule.BoolState(true), true)
	require.NoError(t, err)
	christmas := schedule.Date{Year: 2024, Month: 12, Day: 25}
	_, err = a.AddTimeOverride(id, schedule.TimePeriod{
		Interval: schedule.TimeInterval{Start: schedule.Time{Hour: 10}, End: schedule.Time{Hour: 12}},
		Dates:    schedule.DateRange{Start: christmas, End: christmas},
		Days:     schedule.AllWeekdays,
	})
	require.NoError(t, err)

	_, err = a.RemoveTimeSlot(id)
	require.NoError(t, err)

	assert.Equal(t, before, a.ListTimeSlots())
	assert.Contains(t, a.ListTimeSlots(), keepID)
}

func TestSetTimePeriod_EmptyPatchIsNoOp(t *testing.T) {
	// R2: a patch of all-EMPTY fields leaves observable state unchanged.
	a := mustActuator(t, schedule.ToggleType, schedule.BoolState(false))
	id, _, err := a.AddTimeSlot(fullYearPeriod(9, 17), schedule.BoolState(true), true)
	require.NoError(t, err)
	before := a.ListTimeSlots()[id]

	empty := schedule.TimePeriodPatch{
		IntervalStart: schedule.TimeEmpty,
		IntervalEnd:   schedule.TimeEmpty,
		DateStart:     schedule.DateEmpty,
		DateEnd:       schedule.DateEmpty,
		Days:          schedule.NoWeekdays,
	}
	require.NoError(t, a.SetTimePeriod(id, empty))

	assert.Equal(t, before, a.ListTimeSlots()[id])
}

func TestSetTimePeriod_PatchWithCurrentValuesIsNoOp(t *testing.T) {
	// R2: a patch that restates the slot's current values is also a no-op.
	a := mustActuator(t, schedule.ToggleType, schedule.BoolState(false))
	id, _, err := a.AddTimeSlot(fullYearPeriod(9, 17), schedule.BoolState(true), true)
	require.NoError(t, err)
	before := a.ListTimeSlots()[id]

	same := schedule.TimePeriodPatch{
		IntervalStart: before.Base.Interval.Start,
		IntervalEnd:   before.Base.Interval.End,
		DateStart:     before.Base.Dates.Start,
		DateEnd:       before.Base.Dates.End,
		Days:          before.Base.Days,
	}
	require.NoError(t, a.SetTimePeriod(id, same))

	assert.Equal(t, before, a.ListTimeSlots()[id])
}

func TestDisabledSlotStillBlocksOverlap(t *testing.T) {
	// I1: a disabled slot still blocks a new overlapping one.
	a := mustActuator(t, schedule.ToggleType, schedule.BoolState(false))
	id, _, err := a.AddTimeSlot(fullYearPeriod(9, 17), schedule.BoolState(true), true)
	require.NoError(t, err)
	_, _, err = a.SetEnabled(id, false)
	require.NoError(t, err)

	_, _, err = a.AddTimeSlot(fullYearPeriod(10, 11), schedule.BoolState(true), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, schedule.ErrTimeSlotOverlap))
}
