package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Room interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateRoomStatusRequest) error
	Delete(ctx context.Context, id string) error
	// RecomputeAll re-projects every active room, one transaction per room.
	RecomputeAll(ctx context.Context) error
}

type serviceImpl struct {
	repo        repository.Room
	bookingRepo bookingRepo.Booking
	projector   Projector
	transactor  postgres.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Room, bookingRepo bookingRepo.Booking, projector Projector, transactor postgres.Transactor,
	cfg *config.Config, cache cache.RedisCache, otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		projector:   projector,
		transactor:  transactor,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheKeyGetAll, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheKeyCount, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheKeyGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

// lockActive locks the room and loads it, failing with not found when it is archived or missing.
func (s *serviceImpl) lockActive(ctx context.Context, tx *sqlx.Tx, id string) (model.Room, error) {
	if err := s.transactor.Lock(ctx, tx, model.LockKey(id)); err != nil {
		return model.Room{}, fmt.Errorf("failed to lock room: %w", err)
	}

	room, err := s.repo.GetTx(ctx, tx, shared.FilterActiveByID(id, model.FieldID, model.TableName))
	if err != nil {
		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

// UpdateStatus puts a room under maintenance or releases it. Any status other
// than maintenance hands the room back to the projector.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateRoomStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	status, err := model.ParseStatus(req.Status)
	if err != nil {
		return failure.BadRequestf("invalid room status %q", req.Status) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := s.lockActive(ctx, tx, id); err != nil {
			return err
		}

		next := model.StatusEmpty
		if status == model.StatusMaintenance {
			next = model.StatusMaintenance
		}

		mod := map[string]any{
			model.FieldStatus:        next,
			model.FieldUpcoming:      false,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if _, err := s.repo.UpdateTx(ctx, tx, mod, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		if next == model.StatusMaintenance {
			return nil
		}

		return s.projector.RecomputeTx(ctx, tx, id)
	})
	if err != nil {
		log.Error().Err(err).Str("room", id).Msg("failed to update room status")

		return err
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete archives the room. Rooms holding bookings that have not ended cannot be archived.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := s.lockActive(ctx, tx, id); err != nil {
			return err
		}

		bookings, err := s.bookingRepo.GetBlockingByRoomTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to get bookings of room: %w", err)
		}

		now := timezone.Now()

		for _, booking := range bookings {
			if booking.CheckOut == nil || booking.CheckOut.After(now) {
				return failure.BadRequestf("room %s still has active bookings", id) // nolint:wrapcheck
			}
		}

		mod := map[string]any{
			model.FieldActive:        false,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		if _, err := s.repo.UpdateTx(ctx, tx, mod, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to archive room: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room", id).Msg("failed to delete room")

		return err
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) RecomputeAll(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.RecomputeAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ids, err := s.repo.GetActiveIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}

	var errs []error

	for _, id := range ids {
		txErr := s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			if err := s.transactor.Lock(ctx, tx, model.LockKey(id)); err != nil {
				return fmt.Errorf("failed to lock room: %w", err)
			}

			return s.projector.RecomputeTx(ctx, tx, id)
		})
		if txErr != nil {
			log.Error().Err(txErr).Str("room", id).Msg("failed to recompute room status")

			errs = append(errs, fmt.Errorf("room %s: %w", id, txErr))
		}
	}

	if len(ids) > 0 {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CacheKeyGet)
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CacheKeyGetAll)
	}

	return errors.Join(errs...)
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheKeyGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheKeyGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheKeyCount)
	}()
}
