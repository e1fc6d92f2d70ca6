package schedule_test

import (
	"testing"

	"github.com/corax26/servoscheduler/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_NoSlots_FallsBackToDefault(t *testing.T) {
	now := schedule.Instant{Date: schedule.Date{Year: 2024, Month: 6, Day: 1}, Time: schedule.Time{Hour: 10}}
	active := schedule.Compute(now, map[schedule.SlotID]*schedule.TimeSlot{}, schedule.BoolState(false))
	assert.Equal(t, schedule.DefaultActive, active.Kind)
	assert.Equal(t, schedule.TimeMAX, active.EndTime)
	assert.False(t, active.HasNextSlot)
}

func TestCompute_SlotActiveNow(t *testing.T) {
	slots := map[schedule.SlotID]*schedule.TimeSlot{
		1: {Enabled: true, State: schedule.BoolState(true), Base: fullYearPeriod(9, 17), Overrides: map[schedule.OverrideID]schedule.TimePeriod{}},
	}
	now := schedule.Instant{Date: schedule.Date{Year: 2024, Month: 6, Day: 1}, Time: schedule.Time{Hour: 10}}
	active := schedule.Compute(now, slots, schedule.BoolState(false))
	require.Equal(t, schedule.SlotActive, active.Kind)
	assert.Equal(t, schedule.SlotID(1), active.SlotID)
	assert.Equal(t, schedule.Time{Hour: 17}, active.EndTime)
	assert.True(t, active.State.Bool)
}

func TestCompute_DefaultActiveWithUpcomingSlot(t *testing.T) {
	slots := map[schedule.SlotID]*schedule.TimeSlot{
		1: {Enabled: true, State: schedule.BoolState(true), Base: fullYearPeriod(9, 17), Overrides: map[schedule.OverrideID]schedule.TimePeriod{}},
	}
	now := schedule.Instant{Date: schedule.Date{Year: 2024, Month: 6, Day: 1}, Time: schedule.Time{Hour: 6}}
	active := schedule.Compute(now, slots, schedule.BoolState(false))
	require.Equal(t, schedule.DefaultActive, active.Kind)
	require.True(t, active.HasNextSlot)
	assert.Equal(t, schedule.SlotID(1), active.NextSlotID)
	assert.Equal(t, schedule.Time{Hour: 9}, active.EndTime)
	assert.False(t, active.State.Bool)
}

func TestApplyAdded_SlotBecomesActiveImmediately(t *testing.T) {
	current := schedule.ActiveSlot{Kind: schedule.DefaultActive, EndTime: schedule.TimeMAX, State: schedule.BoolState(false)}
	slot := &schedule.TimeSlot{Enabled: true, State: schedule.BoolState(true), Base: fullYearPeriod(9, 17), Overrides: map[schedule.OverrideID]schedule.TimePeriod{}}
	now := schedule.Instant{Date: schedule.Date{Year: 2024, Month: 6, Day: 1}, Time: schedule.Time{Hour: 10}}

	updated := schedule.ApplyAdded(current, now, 1, slot, schedule.BoolState(false))
	assert.Equal(t, schedule.SlotActive, updated.Kind)
	assert.Equal(t, schedule.SlotID(1), updated.SlotID)
}

func TestApplyAdded_SlotBecomesUpcoming(t *testing.T) {
	current := schedule.ActiveSlot{Kind: schedule.DefaultActive, EndTime: schedule.TimeMAX, State: schedule.BoolState(false)}
	slot := &schedule.TimeSlot{Enabled: true, State: schedule.BoolState(true), Base: fullYearPeriod(9, 17), Overrides: map[schedule.OverrideID]schedule.TimePeriod{}}
	now := schedule.Instant{Date: schedule.Date{Year: 2024, Month: 6, Day: 1}, Time: schedule.Time{Hour: 6}}

	updated := schedule.ApplyAdded(current, now, 1, slot, schedule.BoolState(false))
	assert.Equal(t, schedule.DefaultActive, updated.Kind)
	require.True(t, updated.HasNextSlot)
	assert.Equal(t, schedule.Time{Hour: 9}, updated.EndTime)
}

func TestApplyAdded_DoesNotPreemptCurrentSlotActive(t *testing.T) {
	// I1 guarantees the new slot cannot overlap the currently-active one, so
	// current is returned unchanged regardless of what the new slot is.
	current := schedule.ActiveSlot{Kind: schedule.SlotActive, SlotID: 1, EndTime: schedule.Time{Hour: 17}, State: schedule.BoolState(true)}
	slot := &schedule.TimeSlot{Enabled: true, State: schedule.BoolState(false), Base: fullYearPeriod(18, 20), Overrides: map[schedule.OverrideID]schedule.TimePeriod{}}
	now := schedule.Instant{Date: schedule.Date{Year: 2024, Month: 6, Day: 1}, Time: schedule.Time{Hour: 10}}

	updated := schedule.ApplyAdded(current, now, 2, slot, schedule.BoolState(false))
	assert.Equal(t, current, updated)
}

func TestApplyRemoved_RecomputesWhenActiveSlotRemoved(t *testing.T) {
	slots := map[schedule.SlotID]*schedule.TimeSlot{}
	current := schedule.ActiveSlot{Kind: schedule.SlotActive, SlotID: 1, EndTime: schedule.Time{Hour: 17}, State: schedule.BoolState(true)}
	now := schedule.Instant{Date: schedule.Date{Year: 2024, Month: 6, Day: 1}, Time: schedule.Time{Hour: 10}}

	updated := schedule.ApplyRemoved(current, 1, now, slots, schedule.BoolState(false))
	assert.Equal(t, schedule.DefaultActive, updated.Kind)
	assert.Equal(t, schedule.TimeMAX, updated.EndTime)
}

func TestApplyRemoved_UnrelatedSlotLeavesCurrentUnchanged(t *testing.T) {
	slots := map[schedule.SlotID]*schedule.TimeSlot{
		1: {Enabled: true, State: schedule.BoolState(true), Base: fullYearPeriod(9, 17), Overrides: map[schedule.OverrideID]schedule.TimePeriod{}},
	}
	current := schedule.ActiveSlot{Kind: schedule.SlotActive, SlotID: 1, EndTime: schedule.Time{Hour: 17}, State: schedule.BoolState(true)}
	now := schedule.Instant{Date: schedule.Date{Year: 2024, Month: 6, Day: 1}, Time: schedule.Time{Hour: 10}}

	updated := schedule.ApplyRemoved(current, 2, now, slots, schedule.BoolState(false))
	assert.Equal(t, current, updated)
}

func TestActiveSlot_Equal(t *testing.T) {
	a := schedule.ActiveSlot{Kind: schedule.SlotActive, SlotID: 1, EndTime: schedule.Time{Hour: 17}, State: schedule.BoolState(true)}
	b := a
	assert.True(t, a.Equal(b))
	b.SlotID = 2
	assert.False(t, a.Equal(b))
}

func TestNextActive_SkipsDisabled(t *testing.T) {
	slots := map[schedule.SlotID]*schedule.TimeSlot{
		1: {Enabled: false, State: schedule.BoolState(true), Base: fullYearPeriod(9, 17), Overrides: map[schedule.OverrideID]schedule.TimePeriod{}},
		2: {Enabled: true, State: schedule.BoolState(true), Base: fullYearPeriod(18, 20), Overrides: map[schedule.OverrideID]schedule.TimePeriod{}},
	}
	now := schedule.Instant{Date: schedule.Date{Year: 2024, Month: 6, Day: 1}, Time: schedule.Time{Hour: 6}}
	entry, ok := schedule.NextActive(slots, now)
	require.True(t, ok)
	assert.Equal(t, schedule.SlotID(2), entry.SlotID)
}

func TestEnumerate_OrdersByStart(t *testing.T) {
	slots := map[schedule.SlotID]*schedule.TimeSlot{
		1: {Enabled: true, State: schedule.BoolState(true), Base: fullYearPeriod(18, 20), Overrides: map[schedule.OverrideID]schedule.TimePeriod{}},
		2: {Enabled: true, State: schedule.BoolState(true), Base: fullYearPeriod(9, 12), Overrides: map[schedule.OverrideID]schedule.TimePeriod{}},
	}
	date := schedule.Date{Year: 2024, Month: 6, Day: 1}
	entries := schedule.Enumerate(slots, date)
	require.Len(t, entries, 2)
	assert.Equal(t, schedule.SlotID(2), entries[0].SlotID)
	assert.Equal(t, schedule.SlotID(1), entries[1].SlotID)
}
