package service

import (
	"context"
	"fmt"
	"hotel/internal/domains/booking/model"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	staffModel "hotel/internal/domains/staff/model"
	staffRepo "hotel/internal/domains/staff/repository"
	"hotel/shared"
	"hotel/shared/failure"

	"github.com/jmoiron/sqlx"
)

type bookingValidator struct {
	roomRepo  roomRepo.Room
	guestRepo guestRepo.Guest
	staffRepo staffRepo.Staff
}

// validate checks the shape of booking and the records it references.
func (v *bookingValidator) validate(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error {
	if booking.RoomID == "" {
		return failure.BadRequestFromString("room code is required") // nolint:wrapcheck
	}

	if booking.CheckIn == nil || booking.CheckOut == nil {
		return failure.BadRequestFromString("check-in and check-out are required") // nolint:wrapcheck
	}

	if !booking.CheckIn.Before(*booking.CheckOut) {
		return failure.BadRequestFromString("check-in must be before check-out") // nolint:wrapcheck
	}

	if booking.Occupants <= 0 {
		return failure.BadRequestFromString("occupants must be greater than zero") // nolint:wrapcheck
	}

	if !booking.Status.Valid() {
		return failure.BadRequestFromString("invalid booking status") // nolint:wrapcheck
	}

	room, err := v.roomRepo.GetTx(ctx, tx, shared.FilterActiveByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == "" {
		return failure.BadRequestf("room %s does not exist", booking.RoomID) // nolint:wrapcheck
	}

	if room.Status == roomModel.StatusMaintenance && booking.Status != model.StatusCancelled {
		return failure.BadRequestf("room %s is under maintenance", booking.RoomID) // nolint:wrapcheck
	}

	if booking.GuestID != nil {
		exist, err := v.guestRepo.ExistTx(ctx, tx, shared.FilterActiveByID(*booking.GuestID, guestModel.FieldID, guestModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to check if guest exists: %w", err)
		}

		if !exist {
			return failure.BadRequestf("guest %s does not exist", *booking.GuestID) // nolint:wrapcheck
		}
	}

	if booking.StaffID != nil {
		exist, err := v.staffRepo.ExistTx(ctx, tx, shared.FilterActiveByID(*booking.StaffID, staffModel.FieldID, staffModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to check if staff exists: %w", err)
		}

		if !exist {
			return failure.BadRequestf("staff %s does not exist", *booking.StaffID) // nolint:wrapcheck
		}
	}

	return nil
}

// validateGuests requires every id to resolve to an active guest.
func (v *bookingValidator) validateGuests(ctx context.Context, tx *sqlx.Tx, ids []string) error {
	if len(ids) == 0 {
		return failure.BadRequestFromString("at least one guest is required") // nolint:wrapcheck
	}

	count, err := v.guestRepo.CountActiveTx(ctx, tx, ids)
	if err != nil {
		return fmt.Errorf("failed to count guests: %w", err)
	}

	if count != len(ids) {
		return failure.BadRequestFromString("one or more guests do not exist") // nolint:wrapcheck
	}

	return nil
}
