package schedule

import "time"

// Instant is a wall-clock instant expressed in the scheduler's own
// vocabulary: the scheduling Date (which, per §9, rolls over at 04:00 real
// time rather than midnight) and the Time of day within it.
type Instant struct {
	Date Date
	Time Time
}

// InstantFromTime converts a real wall-clock time.Time into the scheduling
// Instant that governs it: hours before 04:00 still belong to the
// previous scheduling day.
func InstantFromTime(t time.Time) Instant {
	d := Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
	h, m, _ := t.Clock()
	if h < 4 {
		d = d.AddDays(-1)
	}
	return Instant{Date: d, Time: Time{Hour: h, Minute: m}}
}

// NextScheduleDay returns the instant at 04:00 on the day after i: the
// start of the next scheduling day, used when the engine worker rolls over
// a day that ended in "no more slots today" (ActiveSlot.EndTime ==
// TimeMAX).
func (i Instant) NextScheduleDay() Instant {
	return Instant{Date: i.Date.AddDays(1), Time: Time{Hour: 4, Minute: 0}}
}

// At returns the instant on the same scheduling day at time t.
func (i Instant) At(t Time) Instant {
	return Instant{Date: i.Date, Time: t}
}
