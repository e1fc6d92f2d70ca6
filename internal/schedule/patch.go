package schedule

// TimePeriodPatch is a partial update to a TimePeriod. Each field uses its
// type's EMPTY sentinel to mean "leave unchanged": TimeEmpty for the
// interval endpoints, DateEmpty for the date-range endpoints, NoWeekdays
// for the weekday set. §9 flags the sentinel-empty encoding as a redesign
// target in favor of an explicit optional-field record; this repo keeps
// the sentinel form because it is what the RPC wire payload in §4.4
// actually carries, and the semantics are identical either way.
type TimePeriodPatch struct {
	IntervalStart Time
	IntervalEnd   Time
	DateStart     Date
	DateEnd       Date
	Days          WeekdaySet
}

// Apply builds the candidate period obtained by replacing base's non-empty
// patch components. It performs no validation; callers check Valid() on
// the result.
func (p TimePeriodPatch) Apply(base TimePeriod) TimePeriod {
	candidate := base
	if !p.IntervalStart.IsEmpty() {
		candidate.Interval.Start = p.IntervalStart
	}
	if !p.IntervalEnd.IsEmpty() {
		candidate.Interval.End = p.IntervalEnd
	}
	if !p.DateStart.IsEmpty() {
		candidate.Dates.Start = p.DateStart
	}
	if !p.DateEnd.IsEmpty() {
		candidate.Dates.End = p.DateEnd
	}
	if !p.Days.IsEmpty() {
		candidate.Days = p.Days
	}
	return candidate
}
