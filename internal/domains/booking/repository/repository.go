package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, booking model.Booking) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter gDto.FilterGroup) (int64, error)
	GetBlockingByRoom(ctx context.Context, roomID string) ([]model.Booking, error)
	GetBlockingByRoomTx(ctx context.Context, sqltx *sqlx.Tx, roomID string) ([]model.Booking, error)
	GetDueForCheckIn(ctx context.Context, now time.Time) ([]model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FilterBlockingByRoom matches the active Booked and InUse bookings of a room.
func FilterBlockingByRoom(roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    []model.Status{model.StatusBooked, model.StatusInUse},
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}
}

func blockingParams() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.FieldCheckIn, SortDir: gDto.SortDirAsc}
}

func (r *repositoryImpl) GetBlockingByRoom(ctx context.Context, roomID string) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetBlockingByRoom")
	defer scope.End()

	bookings, err := r.GetAll(ctx, blockingParams(), FilterBlockingByRoom(roomID))
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get blocking bookings of room %s: %w", roomID, err)
	}

	return bookings, nil
}

// GetBlockingByRoomTx sees rows inserted earlier in the same transaction.
func (r *repositoryImpl) GetBlockingByRoomTx(ctx context.Context, sqltx *sqlx.Tx, roomID string) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetBlockingByRoomTx")
	defer scope.End()

	bookings, err := r.GetAllTx(ctx, sqltx, blockingParams(), FilterBlockingByRoom(roomID))
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get blocking bookings of room %s: %w", roomID, err)
	}

	return bookings, nil
}

// GetDueForCheckIn returns active Booked bookings whose stay covers now.
func (r *repositoryImpl) GetDueForCheckIn(ctx context.Context, now time.Time) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetDueForCheckIn")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusBooked, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCheckIn, ArgName: "due_from", Value: now, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCheckOut, ArgName: "due_until", Value: now, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
		},
	}

	bookings, err := r.GetAll(ctx, blockingParams(), filter)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get bookings due for check-in: %w", err)
	}

	return bookings, nil
}
