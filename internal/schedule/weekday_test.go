package schedule_test

import (
	"testing"

	"github.com/corax26/servoscheduler/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdaySet_AddHas(t *testing.T) {
	s := schedule.NewWeekdaySet(schedule.Monday, schedule.Wednesday, schedule.Friday)
	assert.True(t, s.Has(schedule.Monday))
	assert.True(t, s.Has(schedule.Wednesday))
	assert.False(t, s.Has(schedule.Tuesday))
	assert.False(t, s.IsAll())
	assert.False(t, s.IsEmpty())
	assert.True(t, schedule.NoWeekdays.IsEmpty())
	assert.True(t, schedule.AllWeekdays.IsAll())
}

func TestWeekdaySet_UnionIntersect(t *testing.T) {
	a := schedule.NewWeekdaySet(schedule.Monday, schedule.Tuesday)
	b := schedule.NewWeekdaySet(schedule.Tuesday, schedule.Wednesday)
	assert.Equal(t, schedule.NewWeekdaySet(schedule.Monday, schedule.Tuesday, schedule.Wednesday), a.Union(b))
	assert.Equal(t, schedule.NewWeekdaySet(schedule.Tuesday), a.Intersect(b))
}

func TestWeekdaySet_StringRoundTrip(t *testing.T) {
	s := schedule.NewWeekdaySet(schedule.Monday, schedule.Wednesday, schedule.Friday, schedule.Sunday)
	str := s.String()
	assert.Equal(t, "M-W-F-S", str)

	parsed, err := schedule.ParseWeekdaySet(str)
	require.NoError(t, err)
	assert.Equal(t, s, parsed)

	_, err = schedule.ParseWeekdaySet("bad")
	assert.Error(t, err)

	_, err = schedule.ParseWeekdaySet("SMTWTFS")
	assert.Error(t, err)
}
