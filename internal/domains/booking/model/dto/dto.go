package dto

import (
	"hotel/internal/domains/booking/model"
	guestDto "hotel/internal/domains/guest/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateBookingsRequest struct {
	Bookings []CreateBookingRequest `json:"bookings"  validate:"required,min=1,dive"`
	GuestIDs []string               `json:"guest_ids" validate:"required,min=1,dive,uuid"`
}

type CreateBookingRequest struct {
	StaffID     *string    `json:"staff_id"     validate:"omitempty,uuid"`
	GuestID     *string    `json:"guest_id"     validate:"omitempty,uuid"`
	RoomID      string     `json:"room_id"      validate:"required,notblank,max=20"`
	BookingDate *string    `json:"booking_date" validate:"omitempty,day"`
	CheckIn     *time.Time `json:"check_in"     validate:"required"`
	CheckOut    *time.Time `json:"check_out"    validate:"required"`
	Occupants   int        `json:"occupants"    validate:"gt=0"`
	Surcharge   float64    `json:"surcharge"    validate:"gte=0"`
	TotalCharge float64    `json:"total_charge" validate:"gte=0"`
	Status      string     `json:"status"       validate:"omitempty"`
}

// ToModel builds a new booking. An empty status defaults to Booked; an unknown
// one is kept as StatusUnknown for the validator to reject.
func (c *CreateBookingRequest) ToModel(user string, now time.Time) model.Booking {
	status := model.StatusBooked
	if strings.TrimSpace(c.Status) != "" {
		status, _ = model.ParseStatus(c.Status)
	}

	bookingDate := timezone.StartOfDay(now)
	if c.BookingDate != nil {
		if day, err := time.ParseInLocation(constant.DayFormat, *c.BookingDate, timezone.GetLocation()); err == nil {
			bookingDate = day
		}
	}

	return model.Booking{
		ID:          uuid.NewString(),
		StaffID:     c.StaffID,
		GuestID:     c.GuestID,
		RoomID:      strings.TrimSpace(c.RoomID),
		BookingDate: bookingDate,
		CheckIn:     c.CheckIn,
		CheckOut:    c.CheckOut,
		Occupants:   c.Occupants,
		Surcharge:   c.Surcharge,
		Status:      status,
		TotalCharge: c.TotalCharge,
		Active:      true,
		Metadata:    gModel.NewMetadata(user, now),
	}
}

type CreateBookingsResponse struct {
	IDs []string `json:"ids"`
}

// UpdateBookingRequest is a partial update: nil fields keep their stored value.
// A non-empty GuestIDs replaces the guest list of the booking.
type UpdateBookingRequest struct {
	StaffID     *string    `json:"staff_id"     validate:"omitempty,uuid"`
	GuestID     *string    `json:"guest_id"     validate:"omitempty,uuid"`
	RoomID      *string    `json:"room_id"      validate:"omitempty,max=20"`
	BookingDate *string    `json:"booking_date" validate:"omitempty,day"`
	CheckIn     *time.Time `json:"check_in"`
	CheckOut    *time.Time `json:"check_out"`
	Occupants   *int       `json:"occupants"`
	Surcharge   *float64   `json:"surcharge"    validate:"omitempty,gte=0"`
	TotalCharge *float64   `json:"total_charge" validate:"omitempty,gte=0"`
	Status      *string    `json:"status"`
	GuestIDs    []string   `json:"guest_ids"    validate:"omitempty,dive,uuid"`
}

func (u *UpdateBookingRequest) IsEmpty() bool {
	return u.StaffID == nil && u.GuestID == nil && u.RoomID == nil && u.BookingDate == nil &&
		u.CheckIn == nil && u.CheckOut == nil && u.Occupants == nil && u.Surcharge == nil &&
		u.TotalCharge == nil && u.Status == nil && len(u.GuestIDs) == 0
}

// Apply returns current with the present fields overwritten.
func (u *UpdateBookingRequest) Apply(current model.Booking, user string, now time.Time) model.Booking {
	next := current

	if u.StaffID != nil {
		next.StaffID = u.StaffID
	}

	if u.GuestID != nil {
		next.GuestID = u.GuestID
	}

	if u.RoomID != nil {
		next.RoomID = strings.TrimSpace(*u.RoomID)
	}

	if u.BookingDate != nil {
		if day, err := time.ParseInLocation(constant.DayFormat, *u.BookingDate, timezone.GetLocation()); err == nil {
			next.BookingDate = day
		}
	}

	if u.CheckIn != nil {
		next.CheckIn = u.CheckIn
	}

	if u.CheckOut != nil {
		next.CheckOut = u.CheckOut
	}

	if u.Occupants != nil {
		next.Occupants = *u.Occupants
	}

	if u.Surcharge != nil {
		next.Surcharge = *u.Surcharge
	}

	if u.TotalCharge != nil {
		next.TotalCharge = *u.TotalCharge
	}

	if u.Status != nil {
		next.Status, _ = model.ParseStatus(*u.Status)
	}

	next.ModifiedAt = now
	next.ModifiedBy = user

	return next
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,notblank"`
}

type AvailabilityRequest struct {
	RoomID string    `json:"room_id" validate:"required,notblank"`
	Start  time.Time `json:"start"   validate:"required"`
	End    time.Time `json:"end"     validate:"required"`
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

type BookingResponse struct {
	ID          string  `json:"id"`
	StaffID     *string `json:"staff_id"`
	GuestID     *string `json:"guest_id"`
	RoomID      string  `json:"room_id"`
	BookingDate string  `json:"booking_date"`
	CheckIn     *string `json:"check_in"`
	CheckOut    *string `json:"check_out"`
	Occupants   int     `json:"occupants"`
	Surcharge   float64 `json:"surcharge"`
	Status      string  `json:"status"`
	TotalCharge float64 `json:"total_charge"`
	Active      bool    `json:"active"`
	gDto.Metadata
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.StaffID = model.StaffID
	r.GuestID = model.GuestID
	r.RoomID = model.RoomID
	r.BookingDate = timezone.Format(model.BookingDate, constant.DayFormat)
	r.CheckIn = formatTime(model.CheckIn)
	r.CheckOut = formatTime(model.CheckOut)
	r.Occupants = model.Occupants
	r.Surcharge = model.Surcharge
	r.Status = model.Status.String()
	r.TotalCharge = model.TotalCharge
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type BookingDetailResponse struct {
	BookingResponse
	Guests []guestDto.GuestResponse `json:"guests"`
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
