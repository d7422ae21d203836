package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	guestDto "hotel/internal/domains/guest/model/dto"
	guestRepo "hotel/internal/domains/guest/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	staffRepo "hotel/internal/domains/staff/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingsRequest) (dto.CreateBookingsResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingDetailResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateBookingRequest) error
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) error
	Delete(ctx context.Context, id string) error
	IsRoomAvailable(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	// PromoteDue checks in every Booked booking whose stay has started and
	// returns how many were promoted.
	PromoteDue(ctx context.Context, now time.Time) (int, error)
}

type serviceImpl struct {
	repo       repository.Booking
	guestRepo  guestRepo.Guest
	validator  bookingValidator
	projector  roomService.Projector
	transactor postgres.Transactor
	kafka      kafka.Client
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	guestRepo guestRepo.Guest,
	staffRepo staffRepo.Staff,
	projector roomService.Projector,
	transactor postgres.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		guestRepo: guestRepo,
		validator: bookingValidator{
			roomRepo:  roomRepo,
			guestRepo: guestRepo,
			staffRepo: staffRepo,
		},
		projector:  projector,
		transactor: transactor,
		kafka:      kafka,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func lockKey(id string) string {
	return model.EntityName + ":" + id
}

func uniqueIDs(ids []string) []string {
	return slices.Compact(slices.Sorted(slices.Values(ids)))
}

// storeError turns an exclusion constraint violation into the same validation
// error the overlap check reports.
func storeError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeExclusionViolation {
		return failure.BadRequestFromString("room is already booked for an overlapping period") // nolint:wrapcheck
	}

	return err
}

func overlapError(booking model.Booking) error {
	return failure.BadRequestf( // nolint:wrapcheck
		"room %s is already booked between %s and %s or within the %s turnover buffer",
		booking.RoomID,
		timezone.Format(*booking.CheckIn, constant.DateFormat),
		timezone.Format(*booking.CheckOut, constant.DateFormat),
		model.TurnoverBuffer,
	)
}

// checkOverlap runs against the current state of the room inside tx.
func (s *serviceImpl) checkOverlap(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error {
	candidate, _ := booking.Interval()

	existing, err := s.repo.GetBlockingByRoomTx(ctx, tx, booking.RoomID)
	if err != nil {
		return fmt.Errorf("failed to get bookings of room: %w", err)
	}

	if model.Conflicts(candidate, existing, booking.ID) {
		return overlapError(booking)
	}

	return nil
}

// loadActive locks the booking and reads it, failing with not found when it is missing or deleted.
func (s *serviceImpl) loadActive(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	if err := s.transactor.Lock(ctx, tx, lockKey(id)); err != nil {
		return model.Booking{}, fmt.Errorf("failed to lock booking: %w", err)
	}

	booking, err := s.repo.GetTx(ctx, tx, shared.FilterActiveByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingsRequest) (res dto.CreateBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(req.Bookings) == 0 {
		return res, failure.BadRequestFromString("at least one booking is required") // nolint:wrapcheck
	}

	if len(req.GuestIDs) == 0 {
		return res, failure.BadRequestFromString("at least one guest is required") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()
	guestIDs := uniqueIDs(req.GuestIDs)

	bookings := make([]model.Booking, len(req.Bookings))
	roomKeys := make([]string, len(req.Bookings))

	for i := range req.Bookings {
		bookings[i] = req.Bookings[i].ToModel(user, now)
		roomKeys[i] = roomModel.LockKey(bookings[i].RoomID)
	}

	var moved []string

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		moved = nil

		if err := s.transactor.Lock(ctx, tx, roomKeys...); err != nil {
			return fmt.Errorf("failed to lock rooms: %w", err)
		}

		if err := s.validator.validateGuests(ctx, tx, guestIDs); err != nil {
			return err
		}

		for i, booking := range bookings {
			if err := s.validator.validate(ctx, tx, booking); err != nil {
				return failure.Wrapf(err, "booking %d", i+1)
			}

			if booking.Status.Blocking() {
				if err := s.checkOverlap(ctx, tx, booking); err != nil {
					return failure.Wrapf(err, "booking %d", i+1)
				}
			}

			if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
				return fmt.Errorf("failed to insert booking: %w", err)
			}

			previous, err := s.guestRepo.AttachTx(ctx, tx, guestIDs, booking.ID, user)
			if err != nil {
				return fmt.Errorf("failed to attach guests: %w", err)
			}

			moved = append(moved, previous...)

			if err := s.projector.RecomputeTx(ctx, tx, booking.RoomID); err != nil {
				return fmt.Errorf("failed to project room status: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create bookings")

		return res, storeError(err)
	}

	res.IDs = make([]string, len(bookings))
	events := make([]model.Event, len(bookings))

	for i, booking := range bookings {
		res.IDs[i] = booking.ID
		events[i] = newEvent(model.EventCreated, booking, now)
	}

	s.afterCommit(ctx, events, staleEntries{bookings: moved})

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheKeyGetAll, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheKeyCount, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheKeyGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterActiveByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	guests, err := s.guestRepo.GetByBooking(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests of booking")

		return res, fmt.Errorf("failed to get guests of booking: %w", err)
	}

	res.FromModel(booking)
	res.Guests = guestDto.FromModels(guests)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	var (
		current, next model.Booking
		moved         []string
	)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error

		current, err = s.loadActive(ctx, tx, id)
		if err != nil {
			return err
		}

		next = req.Apply(current, user, now)

		if err = s.transactor.Lock(ctx, tx, roomModel.LockKey(current.RoomID), roomModel.LockKey(next.RoomID)); err != nil {
			return fmt.Errorf("failed to lock rooms: %w", err)
		}

		if err = s.validator.validate(ctx, tx, next); err != nil {
			return err
		}

		if !current.Status.CanTransitionTo(next.Status) {
			return failure.BadRequestf("cannot change booking status from %s to %s", current.Status, next.Status) // nolint:wrapcheck
		}

		if next.Status.Blocking() && movedOrResized(current, next) {
			if err = s.checkOverlap(ctx, tx, next); err != nil {
				return err
			}
		}

		mod := next.Fields()
		mod[constant.FieldModifiedAt] = next.ModifiedAt
		mod[constant.FieldModifiedBy] = next.ModifiedBy

		if _, err = s.repo.UpdateTx(ctx, tx, mod, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		if len(req.GuestIDs) > 0 {
			if moved, err = s.reconcileGuests(ctx, tx, id, uniqueIDs(req.GuestIDs), user); err != nil {
				return err
			}
		}

		return s.reproject(ctx, tx, current.RoomID, next.RoomID)
	})
	if err != nil {
		log.Error().Err(err).Str("booking", id).Msg("failed to update booking")

		return storeError(err)
	}

	s.afterCommit(ctx, []model.Event{newEvent(model.EventUpdated, next, now)}, staleEntries{bookings: moved, rooms: []string{current.RoomID}})

	return nil
}

func movedOrResized(current, next model.Booking) bool {
	return current.RoomID != next.RoomID ||
		!equalTime(current.CheckIn, next.CheckIn) ||
		!equalTime(current.CheckOut, next.CheckOut) ||
		!current.Status.Blocking()
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Equal(*b)
}

// reconcileGuests makes ids the guest list of the booking and returns the
// bookings guests were taken from.
func (s *serviceImpl) reconcileGuests(ctx context.Context, tx *sqlx.Tx, bookingID string, ids []string, user string) ([]string, error) {
	if err := s.validator.validateGuests(ctx, tx, ids); err != nil {
		return nil, err
	}

	if err := s.guestRepo.DetachTx(ctx, tx, bookingID, ids, user); err != nil {
		return nil, fmt.Errorf("failed to detach guests: %w", err)
	}

	moved, err := s.guestRepo.AttachTx(ctx, tx, ids, bookingID, user)
	if err != nil {
		return nil, fmt.Errorf("failed to attach guests: %w", err)
	}

	return moved, nil
}

func (s *serviceImpl) reproject(ctx context.Context, tx *sqlx.Tx, roomIDs ...string) error {
	for _, roomID := range uniqueIDs(roomIDs) {
		if err := s.projector.RecomputeTx(ctx, tx, roomID); err != nil {
			return fmt.Errorf("failed to project room status: %w", err)
		}
	}

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	status, err := model.ParseStatus(req.Status)
	if err != nil {
		return failure.BadRequestf("invalid booking status %q", req.Status) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	var booking model.Booking

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error

		booking, err = s.loadActive(ctx, tx, id)
		if err != nil {
			return err
		}

		if err = s.transactor.Lock(ctx, tx, roomModel.LockKey(booking.RoomID)); err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if !booking.Status.CanTransitionTo(status) {
			return failure.BadRequestf("cannot change booking status from %s to %s", booking.Status, status) // nolint:wrapcheck
		}

		booking.Status = status

		mod := map[string]any{
			model.FieldStatus:        status,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		if _, err = s.repo.UpdateTx(ctx, tx, mod, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		return s.reproject(ctx, tx, booking.RoomID)
	})
	if err != nil {
		log.Error().Err(err).Str("booking", id).Msg("failed to update booking status")

		return storeError(err)
	}

	s.afterCommit(ctx, []model.Event{newEvent(model.EventStatusChanged, booking, now)}, staleEntries{})

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	var booking model.Booking

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var err error

		booking, err = s.loadActive(ctx, tx, id)
		if err != nil {
			return err
		}

		if err = s.transactor.Lock(ctx, tx, roomModel.LockKey(booking.RoomID)); err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		booking.Active = false

		mod := map[string]any{
			model.FieldActive:        false,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		if _, err = s.repo.UpdateTx(ctx, tx, mod, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}

		return s.reproject(ctx, tx, booking.RoomID)
	})
	if err != nil {
		log.Error().Err(err).Str("booking", id).Msg("failed to delete booking")

		return err
	}

	s.afterCommit(ctx, []model.Event{newEvent(model.EventDeleted, booking, now)}, staleEntries{})

	return nil
}

// IsRoomAvailable never writes. An empty or inverted interval is never available.
func (s *serviceImpl) IsRoomAvailable(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.IsRoomAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res.RoomID = req.RoomID
	res.Start = timezone.Format(req.Start, constant.DateFormat)
	res.End = timezone.Format(req.End, constant.DateFormat)

	candidate := model.Interval{Start: req.Start, End: req.End}
	if !candidate.Valid() {
		return res, nil
	}

	existing, err := s.repo.GetBlockingByRoom(ctx, req.RoomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings of room")

		return res, fmt.Errorf("failed to get bookings of room: %w", err)
	}

	res.Available = !model.Conflicts(candidate, existing, "")

	return res, nil
}

func (s *serviceImpl) PromoteDue(ctx context.Context, now time.Time) (promoted int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.PromoteDue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	due, err := s.repo.GetDueForCheckIn(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to get bookings due for check-in: %w", err)
	}

	var errs []error

	for _, booking := range due {
		err := s.UpdateStatus(ctx, booking.ID, dto.UpdateStatusRequest{Status: model.StatusInUse.String()})
		if err != nil {
			// Another writer may have changed the booking since it was listed.
			if failure.Is(err, http.StatusBadRequest) || failure.Is(err, http.StatusNotFound) {
				log.Warn().Err(err).Str("booking", booking.ID).Msg("skipping check-in promotion")

				continue
			}

			errs = append(errs, fmt.Errorf("booking %s: %w", booking.ID, err))

			continue
		}

		promoted++
	}

	return promoted, errors.Join(errs...)
}

func newEvent(eventType string, booking model.Booking, now time.Time) model.Event {
	return model.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		Status:     booking.Status,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		Active:     booking.Active,
		OccurredAt: now,
	}
}

// staleEntries names cached bookings and rooms a mutation changed besides the
// ones its events name.
type staleEntries struct {
	bookings []string
	rooms    []string
}

// afterCommit drops the detail entries of every touched booking and room before
// returning, then clears the list caches and publishes events in the background.
func (s *serviceImpl) afterCommit(ctx context.Context, events []model.Event, stale staleEntries) {
	c := context.WithoutCancel(ctx)

	bookings := slices.Clone(stale.bookings)
	rooms := slices.Clone(stale.rooms)
	messages := make([]kafka.Message, len(events))

	for i, event := range events {
		bookings = append(bookings, event.BookingID)
		rooms = append(rooms, event.RoomID)
		messages[i] = kafka.Message{Key: event.RoomID, Value: event}
	}

	for _, bookingID := range uniqueIDs(bookings) {
		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheKeyGet, bookingID)); err != nil {
			log.Error().Err(err).Str("booking", bookingID).Msg("failed to delete booking from cache")
		}
	}

	for _, roomID := range uniqueIDs(rooms) {
		if err := s.cache.Delete(c, shared.BuildCacheKey(roomModel.CacheKeyGet, roomID)); err != nil {
			log.Error().Err(err).Str("room", roomID).Msg("failed to delete room from cache")
		}
	}

	go func() {
		shared.InvalidateCaches(c, s.cache, model.CacheKeyGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheKeyCount)
		shared.InvalidateCaches(c, s.cache, roomModel.CacheKeyGetAll)

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Booking, messages...); err != nil {
			log.Error().Err(err).Msg("failed to publish booking events")
		}
	}()
}
