package model

import (
	bookingModel "hotel/internal/domains/booking/model"
	"time"
)

// Projection is the room state derived from its bookings.
type Projection struct {
	Status   Status
	Upcoming bool
}

// Project derives the state of a room at now. A room under maintenance is left
// alone and ok is false. A room is in use while an active InUse booking covers
// now; otherwise it is empty, flagged upcoming when an active Booked stay that
// has not ended starts within window.
func Project(current Status, bookings []bookingModel.Booking, now time.Time, window time.Duration) (res Projection, ok bool) {
	if current == StatusMaintenance {
		return res, false
	}

	res.Status = StatusEmpty

	for _, booking := range bookings {
		if !booking.Active {
			continue
		}

		stay, hasStay := booking.Interval()
		if !hasStay {
			continue
		}

		switch booking.Status {
		case bookingModel.StatusInUse:
			if !now.Before(stay.Start) && now.Before(stay.End) {
				return Projection{Status: StatusInUse}, true
			}
		case bookingModel.StatusBooked:
			if stay.End.After(now) && !stay.Start.After(now.Add(window)) {
				res.Upcoming = true
			}
		}
	}

	return res, true
}

func (r Room) Projection() Projection {
	return Projection{Status: r.Status, Upcoming: r.Upcoming}
}
