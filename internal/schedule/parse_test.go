package schedule_test

import (
	"testing"

	"github.com/corax26/servoscheduler/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_WithAndWithoutYear(t *testing.T) {
	today := schedule.Date{Year: 2024, Month: 6, Day: 1}

	d, err := schedule.ParseDate("08/05/2017", today)
	require.NoError(t, err)
	assert.Equal(t, schedule.Date{Year: 2017, Month: 5, Day: 8}, d)

	d2, err := schedule.ParseDate("25/12", today)
	require.NoError(t, err)
	assert.Equal(t, schedule.Date{Year: 2024, Month: 12, Day: 25}, d2)

	_, err = schedule.ParseDate("31/02/2024", today)
	assert.Error(t, err)
}

func TestDate_StringRoundTrip(t *testing.T) {
	d := schedule.Date{Year: 2017, Month: 5, Day: 8}
	assert.Equal(t, "08/05/2017", d.String())

	parsed, err := schedule.ParseDate(d.String(), schedule.Date{Year: 2000, Month: 1, Day: 1})
	require.NoError(t, err)
	assert.Equal(t, d, parsed)
}
