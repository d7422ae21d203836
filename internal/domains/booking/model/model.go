package model

import (
	"hotel/shared/model"
	"time"
)

const (
	TableName  = "room_bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldStaffID     = "staff_id"
	FieldGuestID     = "guest_id"
	FieldRoomID      = "room_id"
	FieldBookingDate = "booking_date"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldOccupants   = "occupants"
	FieldSurcharge   = "surcharge"
	FieldStatus      = "status"
	FieldTotalCharge = "total_charge"
	FieldActive      = "active"
)

const (
	CacheKeyGet    = "booking:get"
	CacheKeyGetAll = "booking:gets"
	CacheKeyCount  = "booking:count"
)

// TurnoverBuffer is the cleaning time required between two stays in the same room.
const TurnoverBuffer = 2 * time.Hour

type Booking struct {
	ID          string     `db:"id"`
	StaffID     *string    `db:"staff_id"`
	GuestID     *string    `db:"guest_id"`
	RoomID      string     `db:"room_id"`
	BookingDate time.Time  `db:"booking_date"`
	CheckIn     *time.Time `db:"check_in"`
	CheckOut    *time.Time `db:"check_out"`
	Occupants   int        `db:"occupants"`
	Surcharge   float64    `db:"surcharge"`
	Status      Status     `db:"status"`
	TotalCharge float64    `db:"total_charge"`
	Active      bool       `db:"active"`
	model.Metadata
}

// Interval reports the stay period, false while either bound is unset.
func (b Booking) Interval() (Interval, bool) {
	if b.CheckIn == nil || b.CheckOut == nil {
		return Interval{}, false
	}

	return Interval{Start: *b.CheckIn, End: *b.CheckOut}, true
}

// Blocking reports whether the booking still holds its room.
func (b Booking) Blocking() bool {
	return b.Active && b.Status.Blocking()
}

// Fields lists every column an update may rewrite.
func (b Booking) Fields() map[string]any {
	return map[string]any{
		FieldStaffID:     b.StaffID,
		FieldGuestID:     b.GuestID,
		FieldRoomID:      b.RoomID,
		FieldBookingDate: b.BookingDate,
		FieldCheckIn:     b.CheckIn,
		FieldCheckOut:    b.CheckOut,
		FieldOccupants:   b.Occupants,
		FieldSurcharge:   b.Surcharge,
		FieldStatus:      b.Status,
		FieldTotalCharge: b.TotalCharge,
	}
}
