package model

// Interval is a half-open [Start, End) range of minutes within one day.
// Both endpoints are anchored to the same reference date.
type Interval struct {
	Start ClockMinutes
	End   ClockMinutes
}

// NewInterval builds the interval covering the given number of minutes
// starting at start.
func NewInterval(start ClockMinutes, minutes int) Interval {
	return Interval{Start: start, End: start.Add(minutes)}
}

// Overlaps reports whether two half-open intervals share any point:
// [s1,e1) and [s2,e2) overlap iff s1 < e2 and e1 > s2. Adjacent
// intervals (e1 == s2) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// Contains reports whether the interval fully encloses other.
func (i Interval) Contains(other Interval) bool {
	return other.Start >= i.Start && other.End <= i.End
}
