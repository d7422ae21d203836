package model

import "time"

const (
	EventCreated       = "booking.created"
	EventUpdated       = "booking.updated"
	EventStatusChanged = "booking.status_changed"
	EventDeleted       = "booking.deleted"
)

// Event is published after a booking mutation commits.
type Event struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	BookingID  string     `json:"booking_id"`
	RoomID     string     `json:"room_id"`
	Status     Status     `json:"status"`
	CheckIn    *time.Time `json:"check_in,omitempty"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	Active     bool       `json:"active"`
	OccurredAt time.Time  `json:"occurred_at"`
}
