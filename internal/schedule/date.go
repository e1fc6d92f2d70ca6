// Package schedule implements the per-actuator scheduling engine: the
// overlapping time-slot data model, the mutation API and its invariants,
// and the schedule algebra used to derive the slot that is active at a
// given instant.
package schedule

import "math"

// Weekday is a day of the week, ordered Monday first so that WeekdaySet's
// bit positions line up with its MTWTFSS text representation.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Date is a calendar date in the proleptic Gregorian calendar.
//
// Date deliberately does not wrap time.Time: DateMIN/DateMAX need to sit far
// outside the ~292-year range time.Time can represent without losing
// precision, so ordering and day arithmetic are implemented directly against
// the (Year, Month, Day) triple.
type Date struct {
	Year  int
	Month int
	Day   int
}

// DateMIN and DateMAX are the open-ended range endpoints used by DateRange.
// DateEmpty is the invalid sentinel used only in partial-update payloads.
var (
	DateMIN   = Date{Year: math.MinInt32, Month: 1, Day: 1}
	DateMAX   = Date{Year: math.MaxInt32, Month: 12, Day: 31}
	DateEmpty = Date{}
)

var daysInMonthTable = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func daysInMonth(y, m int) int {
	if m == 2 && isLeapYear(y) {
		return 29
	}
	return daysInMonthTable[m-1]
}

// IsEmpty reports whether d is the DateEmpty sentinel.
func (d Date) IsEmpty() bool {
	return d.Month == 0
}

// Valid reports whether d is a real calendar date (or one of the MIN/MAX
// sentinels). DateEmpty is not valid.
func (d Date) Valid() bool {
	if d.IsEmpty() {
		return false
	}
	if d == DateMIN || d == DateMAX {
		return true
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	return d.Day >= 1 && d.Day <= daysInMonth(d.Year, d.Month)
}

// Compare returns -1, 0 or 1 as d is chronologically before, equal to, or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(d.Month, other.Month)
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// toOrdinal converts a (possibly far-future/far-past) calendar date to a
// day count using Howard Hinnant's days_from_civil algorithm, which is
// exact for the entire proleptic Gregorian calendar and safe from the
// overflow that plagues time.Time at extreme years.
func toOrdinal(y int64, m, d int) int64 {
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400 // [0, 399]
	var monthIndex int64
	if m > 2 {
		monthIndex = int64(m) - 3
	} else {
		monthIndex = int64(m) + 9
	}
	doy := (153*monthIndex+2)/5 + int64(d) - 1 // [0, 365]
	doe := yoe*365 + yoe/4 - yoe/100 + doy      // [0, 146096]
	return era*146097 + doe - 719468
}

// fromOrdinal is the inverse of toOrdinal.
func fromOrdinal(z int64) (y int64, m, d int) {
	z += 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097                                     // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365     // [0, 399]
	y = yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100) // [0, 365]
	mp := (5*doy + 2) / 153                  // [0, 11]
	d = int(doy-(153*mp+2)/5) + 1
	if mp < 10 {
		m = int(mp) + 3
	} else {
		m = int(mp) - 9
	}
	if m <= 2 {
		y++
	}
	return y, m, d
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int64) Date {
	z := toOrdinal(int64(d.Year), d.Month, d.Day) + n
	y, m, day := fromOrdinal(z)
	return Date{Year: int(y), Month: m, Day: day}
}

// DaysUntil returns the number of days from d to other (negative if other
// is before d).
func (d Date) DaysUntil(other Date) int64 {
	return toOrdinal(int64(other.Year), other.Month, other.Day) - toOrdinal(int64(d.Year), d.Month, d.Day)
}

// Weekday returns the day of the week for d.
func (d Date) Weekday() Weekday {
	z := toOrdinal(int64(d.Year), d.Month, d.Day)
	// toOrdinal is 0 at 1970-01-01, a Thursday (our Monday=0..Sunday=6 scale
	// puts Thursday at index 3).
	wd := ((z+3)%7 + 7) % 7
	return Weekday(wd)
}

// DateRange is an inclusive [Start, End] range over Date.
type DateRange struct {
	Start Date
	End   Date
}

// Valid reports whether both endpoints are valid and Start <= End.
func (r DateRange) Valid() bool {
	return r.Start.Valid() && r.End.Valid() && !r.Start.After(r.End)
}

// Contains reports whether d falls within the inclusive range.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Overlaps reports whether r and other share at least one date.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.End.Before(other.Start) && !other.End.Before(r.Start)
}

// Intersect returns the overlapping sub-range of r and other, if any.
func (r DateRange) Intersect(other DateRange) (DateRange, bool) {
	if !r.Overlaps(other) {
		return DateRange{}, false
	}
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := r.End
	if other.End.Before(end) {
		end = other.End
	}
	return DateRange{Start: start, End: end}, true
}

// spanDays returns the number of calendar days the range covers, capped at
// 7 once that is established (the range endpoints may be the MIN/MAX
// sentinels, whose exact span is astronomically large but never needs to be
// computed exactly: anything spanning 7+ days touches every weekday).
func (r DateRange) spanDays() int64 {
	const wide = 7
	// Guard against extreme sentinel endpoints: if either bound is a
	// sentinel the range certainly spans at least `wide` days.
	if r.Start == DateMIN || r.End == DateMAX {
		return wide
	}
	days := r.Start.DaysUntil(r.End) + 1
	if days > wide {
		return wide
	}
	return days
}

// WeekdaySetSpanned returns the set of weekdays that appear at least once in the
// range: if the range spans 7 or more days every weekday occurs, otherwise
// the weekdays between Start's and End's weekday (inclusive, wrapping past
// Sunday) are set.
func (r DateRange) WeekdaySetSpanned() WeekdaySet {
	span := r.spanDays()
	if span >= 7 {
		return AllWeekdays
	}
	var set WeekdaySet
	d := r.Start
	for i := int64(0); i < span; i++ {
		set = set.Add(d.Weekday())
		d = d.AddDays(1)
	}
	return set
}

// ContainsAnyWeekday reports whether some date within the range falls on a
// weekday present in ws.
func (r DateRange) ContainsAnyWeekday(ws WeekdaySet) bool {
	if ws.IsEmpty() {
		return false
	}
	return r.WeekdaySetSpanned().Intersect(ws) != 0
}
