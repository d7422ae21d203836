package model

import "hotel/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID             = "id"
	FieldFullName       = "full_name"
	FieldIdentityNumber = "identity_number"
	FieldPhone          = "phone"
	FieldNationality    = "nationality"
	FieldNote           = "note"
	FieldBookingID      = "booking_id"
	FieldActive         = "active"
)

type Guest struct {
	ID             string  `db:"id"`
	FullName       string  `db:"full_name"`
	IdentityNumber string  `db:"identity_number"`
	Phone          string  `db:"phone"`
	Nationality    string  `db:"nationality"`
	Note           string  `db:"note"`
	BookingID      *string `db:"booking_id"`
	Active         bool    `db:"active"`
	model.Metadata
}
