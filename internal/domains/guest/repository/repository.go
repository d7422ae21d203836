package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/guest/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Guest interface {
	GetByBooking(ctx context.Context, bookingID string) ([]model.Guest, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	// CountActiveTx counts how many of ids belong to active guests.
	CountActiveTx(ctx context.Context, sqltx *sqlx.Tx, ids []string) (int, error)
	// AttachTx links ids to bookingID and returns the other bookings they were taken from.
	AttachTx(ctx context.Context, sqltx *sqlx.Tx, ids []string, bookingID, user string) ([]string, error)
	// DetachTx unlinks the guests of bookingID that are not in keep.
	DetachTx(ctx context.Context, sqltx *sqlx.Tx, bookingID string, keep []string, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Guest]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Guest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Guest](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) scopeName(method string) string {
	return fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, model.EntityName, method)
}

func activeFilter() gDto.Filter {
	return gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName}
}

func (r *repositoryImpl) GetByBooking(ctx context.Context, bookingID string) ([]model.Guest, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, r.scopeName("GetByBooking"))
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			activeFilter(),
		},
	}

	guests, err := r.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldFullName, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get guests of booking %s: %w", bookingID, err)
	}

	return guests, nil
}

func (r *repositoryImpl) CountActiveTx(ctx context.Context, sqltx *sqlx.Tx, ids []string) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, r.scopeName("CountActiveTx"))
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
			activeFilter(),
		},
	}

	count, err := r.CountTx(ctx, sqltx, filter)
	if err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count active guests: %w", err)
	}

	return count, nil
}

func (r *repositoryImpl) AttachTx(ctx context.Context, sqltx *sqlx.Tx, ids []string, bookingID, user string) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, r.scopeName("AttachTx"))
	defer scope.End()

	if len(ids) == 0 {
		return nil, nil
	}

	previous, err := r.previousBookingsTx(ctx, sqltx, ids, bookingID)
	if err != nil {
		scope.TraceError(err)

		return nil, err
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}

	mod := map[string]any{
		model.FieldBookingID:     bookingID,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if _, err := r.UpdateTx(ctx, sqltx, mod, filter); err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to attach guests to booking %s: %w", bookingID, err)
	}

	return previous, nil
}

// previousBookingsTx locks the guest rows and reads the bookings they point at
// other than bookingID.
func (r *repositoryImpl) previousBookingsTx(ctx context.Context, sqltx *sqlx.Tx, ids []string, bookingID string) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT %[1]s FROM %[2]s WHERE %[3]s = ANY($1) AND %[1]s IS NOT NULL AND %[1]s <> $2 FOR UPDATE",
		model.FieldBookingID, model.TableName, model.FieldID,
	)

	var previous []string
	if err := sqltx.SelectContext(ctx, &previous, query, pq.Array(ids), bookingID); err != nil {
		return nil, fmt.Errorf("failed to read previous bookings of guests: %w", err)
	}

	return slices.Compact(slices.Sorted(slices.Values(previous))), nil
}

func (r *repositoryImpl) DetachTx(ctx context.Context, sqltx *sqlx.Tx, bookingID string, keep []string, user string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, r.scopeName("DetachTx"))
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "where_booking_id",
				Field:    model.FieldBookingID,
				Value:    bookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{Field: model.FieldID, Value: keep, Operator: gDto.FilterOperatorNotIn, Table: model.TableName},
		},
	}

	mod := map[string]any{
		model.FieldBookingID:     nil,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if _, err := r.UpdateTx(ctx, sqltx, mod, filter); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to detach guests from booking %s: %w", bookingID, err)
	}

	return nil
}
