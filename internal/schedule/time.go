package schedule

import "fmt"

// Time is a time-of-day: Hour in [0,24), Minute in [0,60).
//
// Time is ordered under the shifted order: a scheduling day is defined to
// run from 04:00 to the next day's 04:00, so for comparison purposes hours
// are rotated by -4 mod 24 before comparing. Consequently
// 05:00 < 23:00 < 02:00 < 03:59, with 04:00 the smallest value of the day
// and 03:59 the largest.
type Time struct {
	Hour   int
	Minute int
}

// TimeEmpty is the invalid sentinel used only in partial-update payloads.
var TimeEmpty = Time{Hour: 25}

// TimeMAX is not a real time of day; it is used by ActiveSlot.EndTime to
// mean "until the day rolls over", because no slot starts at or after it.
var TimeMAX = Time{Hour: 24}

// IsEmpty reports whether t is the TimeEmpty sentinel.
func (t Time) IsEmpty() bool {
	return t == TimeEmpty
}

// Valid reports whether t is a real time of day.
func (t Time) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

// shift rotates an hour so that 04:00 sorts least and 03:59 sorts
// greatest: shift(h) = (h + 20) mod 24.
func shift(h int) int {
	return (h + 20) % 24
}

// shiftedKey returns a sortable key consistent with the shifted order.
// TimeMAX sorts after every real time of day.
func (t Time) shiftedKey() int {
	if t == TimeMAX {
		return 24*60 + 1
	}
	return shift(t.Hour)*60 + t.Minute
}

// Compare returns -1, 0 or 1 as t is less than, equal to, or greater than
// other under the shifted order.
func (t Time) Compare(other Time) int {
	return cmpInt(t.shiftedKey(), other.shiftedKey())
}

func (t Time) Before(other Time) bool { return t.Compare(other) < 0 }
func (t Time) After(other Time) bool  { return t.Compare(other) > 0 }

// AddMinutes shifts t forward (or backward, for a negative delta) by a
// number of minutes, wrapping within the 24-hour clock. It does not
// understand TimeMAX.
func (t Time) AddMinutes(delta int) Time {
	total := t.Hour*60 + t.Minute + delta
	total = ((total % 1440) + 1440) % 1440
	return Time{Hour: total / 60, Minute: total % 60}
}

// shiftedMinutesUntil returns, under the shifted order, how many minutes
// separate t from other (other - t), always in [0, 1440) for two real
// times of day; used for sleep-duration math in the engine worker.
func (t Time) shiftedMinutesUntil(other Time) int {
	delta := other.shiftedKey() - t.shiftedKey()
	if delta < 0 {
		delta += 24 * 60
	}
	return delta
}

// MinutesUntil returns, under the shifted order, how many minutes separate
// t from other (other - t), never negative for two real times of day (zero
// when t equals other);
// other may be TimeMAX, in which case the result already accounts for the
// "until the day rolls over" adjustment. Used for engine worker
// sleep-duration math (§4.6).
func (t Time) MinutesUntil(other Time) int {
	return t.shiftedMinutesUntil(other)
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTime parses the "hh:mm" format used by the CLI collaborator.
func ParseTime(s string) (Time, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return Time{}, fmt.Errorf("schedule: invalid time %q: %w", s, err)
	}
	t := Time{Hour: h, Minute: m}
	if !t.Valid() {
		return Time{}, fmt.Errorf("schedule: invalid time %q", s)
	}
	return t, nil
}

// TimeInterval is an exclusive [Start, End) interval over Time in shifted
// order: 23:00-03:00 is valid and represents a 4-hour window crossing
// midnight.
type TimeInterval struct {
	Start Time
	End   Time
}

// Valid reports whether Start < End under the shifted order.
func (iv TimeInterval) Valid() bool {
	return iv.Start.Valid() && iv.End.Valid() && iv.Start.Compare(iv.End) < 0
}

// Overlaps reports whether iv and other share any instant.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.Start.Compare(other.End) < 0 && other.Start.Compare(iv.End) < 0
}

// Contains reports whether t falls in [Start, End).
func (iv TimeInterval) Contains(t Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

func (iv TimeInterval) String() string {
	return fmt.Sprintf("%s-%s", iv.Start, iv.End)
}

// ParseTimeInterval parses the "hh:mm-hh:mm" format used by the CLI
// collaborator.
func ParseTimeInterval(s string) (TimeInterval, error) {
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			start, err := ParseTime(s[:i])
			if err != nil {
				return TimeInterval{}, err
			}
			end, err := ParseTime(s[i+1:])
			if err != nil {
				return TimeInterval{}, err
			}
			iv := TimeInterval{Start: start, End: end}
			if !iv.Valid() {
				return TimeInterval{}, fmt.Errorf("schedule: invalid time interval %q", s)
			}
			return iv, nil
		}
	}
	return TimeInterval{}, fmt.Errorf("schedule: invalid time interval %q", s)
}
