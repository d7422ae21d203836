package config_test

import (
	"testing"

	"hotel/config"

	"github.com/stretchr/testify/assert"
)

func TestGet_AppliesReservationDefaults(t *testing.T) {
	cfg := config.Get()

	assert.NotNil(t, cfg)
	assert.Equal(t, 24, cfg.Reservation.UpcomingWindowHours)
	assert.Equal(t, "@every 1m", cfg.Reservation.SyncSchedule)
	assert.Equal(t, "hotel.booking.events", cfg.Kafka.Topics.Booking)
}

func TestGet_ReturnsSameInstance(t *testing.T) {
	assert.Same(t, config.Get(), config.Get())
}
