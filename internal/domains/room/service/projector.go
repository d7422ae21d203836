package service

//go:generate go run go.uber.org/mock/mockgen -source=./projector.go -destination=../mocks/projector_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Projector keeps a room's stored status in line with its bookings.
type Projector interface {
	// RecomputeTx must run in the transaction that changed the bookings of roomID.
	RecomputeTx(ctx context.Context, tx *sqlx.Tx, roomID string) error
}

type projectorImpl struct {
	repo        repository.Room
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	otel        otel.Otel
}

func NewProjector(repo repository.Room, bookingRepo bookingRepo.Booking, cfg *config.Config, otel otel.Otel) Projector {
	return &projectorImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		otel:        otel,
	}
}

func (p *projectorImpl) window() time.Duration {
	if hours := p.cfg.Reservation.UpcomingWindowHours; hours > 0 {
		return time.Duration(hours) * time.Hour
	}

	return constant.OperationsDay
}

func (p *projectorImpl) RecomputeTx(ctx context.Context, tx *sqlx.Tx, roomID string) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.RecomputeTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("room.id", roomID)

	room, err := p.repo.GetTx(ctx, tx, shared.FilterByID(roomID, model.FieldID, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		log.Warn().Str("room", roomID).Msg("skipping projection of unknown room")

		return nil
	}

	bookings, err := p.bookingRepo.GetBlockingByRoomTx(ctx, tx, roomID)
	if err != nil {
		return fmt.Errorf("failed to get bookings of room: %w", err)
	}

	now := timezone.Now()

	projection, ok := model.Project(room.Status, bookings, now, p.window())
	if !ok || projection == room.Projection() {
		return nil
	}

	mod := map[string]any{
		model.FieldStatus:        projection.Status,
		model.FieldUpcoming:      projection.Upcoming,
		constant.FieldModifiedAt: now,
	}

	if _, err = p.repo.UpdateTx(ctx, tx, mod, shared.FilterByID(roomID, model.FieldID, model.TableName)); err != nil {
		return fmt.Errorf("failed to update room status: %w", err)
	}

	log.Debug().Str("room", roomID).Str("status", projection.Status.String()).Bool("upcoming", projection.Upcoming).Msg("room status projected")

	return nil
}
