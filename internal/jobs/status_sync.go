package jobs

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	bookingService "hotel/internal/domains/booking/service"
	roomService "hotel/internal/domains/room/service"
	"hotel/shared/constant"
	"hotel/shared/timezone"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// SystemUser is recorded as the modifier of rows the scheduler changes.
const SystemUser = "system"

// StatusSync checks in bookings whose stay has started and refreshes every
// room projection, so time-dependent room state does not wait for a write.
type StatusSync struct {
	booking bookingService.Booking
	room    roomService.Room
	cfg     *config.Config
	otel    otel.Otel
	cron    *cron.Cron
}

func NewStatusSync(booking bookingService.Booking, room roomService.Room, cfg *config.Config, otel otel.Otel) *StatusSync {
	logger := cron.PrintfLogger(&log.Logger)

	return &StatusSync{
		booking: booking,
		room:    room,
		cfg:     cfg,
		otel:    otel,
		cron:    cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
	}
}

// Start schedules the sync when enabled. It does not block.
func (s *StatusSync) Start() error {
	if !s.cfg.Reservation.SyncEnable {
		log.Info().Msg("room status sync disabled")

		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Reservation.SyncSchedule, func() {
		if err := s.Run(context.Background()); err != nil {
			log.Error().Err(err).Msg("room status sync finished with errors")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", s.cfg.Reservation.SyncSchedule, err)
	}

	s.cron.Start()

	log.Info().Str("schedule", s.cfg.Reservation.SyncSchedule).Msg("room status sync scheduled")

	return nil
}

// Stop waits for a running sync to finish.
func (s *StatusSync) Stop() {
	<-s.cron.Stop().Done()
}

// Run performs one sync. Projections are refreshed even when promotion fails.
func (s *StatusSync) Run(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".StatusSync")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ctx = context.WithValue(ctx, constant.ContextKeyUserID, SystemUser)

	promoted, promoteErr := s.booking.PromoteDue(ctx, timezone.Now())
	if promoteErr != nil {
		promoteErr = fmt.Errorf("failed to promote due bookings: %w", promoteErr)
	}

	var recomputeErr error
	if err := s.room.RecomputeAll(ctx); err != nil {
		recomputeErr = fmt.Errorf("failed to recompute room status: %w", err)
	}

	log.Debug().Int("promoted", promoted).Msg("room status sync done")

	return errors.Join(promoteErr, recomputeErr)
}
