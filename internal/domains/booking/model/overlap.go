package model

import "time"

// Interval is a half-open stay period [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Padded widens the interval by the turnover buffer on both sides.
func (i Interval) Padded() Interval {
	return Interval{Start: i.Start.Add(-TurnoverBuffer), End: i.End.Add(TurnoverBuffer)}
}

func (i Interval) overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

func (i Interval) contains(other Interval) bool {
	return !i.Start.After(other.Start) && !i.End.Before(other.End)
}

// Conflicts reports whether the two stays cannot share a room. A gap of exactly
// TurnoverBuffer between them is allowed.
func (i Interval) Conflicts(other Interval) bool {
	return i.overlaps(other) ||
		i.contains(other) ||
		other.contains(i) ||
		i.overlaps(other.Padded()) ||
		i.Padded().overlaps(other)
}

// Conflicts checks candidate against the bookings of one room. Bookings that do not
// block (inactive, cancelled, completed) and the booking with excludeID are ignored.
// An empty or inverted candidate always conflicts.
func Conflicts(candidate Interval, existing []Booking, excludeID string) bool {
	if !candidate.Valid() {
		return true
	}

	for _, booking := range existing {
		if excludeID != "" && booking.ID == excludeID {
			continue
		}

		if !booking.Blocking() {
			continue
		}

		other, ok := booking.Interval()
		if !ok {
			continue
		}

		if candidate.Conflicts(other) {
			return true
		}
	}

	return false
}
