package model_test

import (
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/room/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func stay(status bookingModel.Status, active bool, start, end time.Duration) bookingModel.Booking {
	in := now.Add(start)
	out := now.Add(end)

	return bookingModel.Booking{ID: "B", RoomID: "R1", Status: status, Active: active, CheckIn: &in, CheckOut: &out}
}

func TestProject(t *testing.T) {
	const window = 24 * time.Hour

	tests := []struct {
		name     string
		current  model.Status
		bookings []bookingModel.Booking
		want     model.Projection
		wantOK   bool
	}{
		{
			name:    "no bookings",
			current: model.StatusInUse,
			want:    model.Projection{Status: model.StatusEmpty},
			wantOK:  true,
		},
		{
			name:     "in use booking covering now",
			current:  model.StatusEmpty,
			bookings: []bookingModel.Booking{stay(bookingModel.StatusInUse, true, -time.Hour, time.Hour)},
			want:     model.Projection{Status: model.StatusInUse},
			wantOK:   true,
		},
		{
			name:     "in use booking starting exactly now",
			current:  model.StatusEmpty,
			bookings: []bookingModel.Booking{stay(bookingModel.StatusInUse, true, 0, time.Hour)},
			want:     model.Projection{Status: model.StatusInUse},
			wantOK:   true,
		},
		{
			name:     "in use booking already ended",
			current:  model.StatusInUse,
			bookings: []bookingModel.Booking{stay(bookingModel.StatusInUse, true, -3*time.Hour, 0)},
			want:     model.Projection{Status: model.StatusEmpty},
			wantOK:   true,
		},
		{
			name:     "booked stay starting tomorrow morning",
			current:  model.StatusEmpty,
			bookings: []bookingModel.Booking{stay(bookingModel.StatusBooked, true, 20*time.Hour, 30*time.Hour)},
			want:     model.Projection{Status: model.StatusEmpty, Upcoming: true},
			wantOK:   true,
		},
		{
			name:     "booked stay next week",
			current:  model.StatusEmpty,
			bookings: []bookingModel.Booking{stay(bookingModel.StatusBooked, true, 7*window, 8*window)},
			want:     model.Projection{Status: model.StatusEmpty},
			wantOK:   true,
		},
		{
			name:     "booked stay in progress but not checked in",
			current:  model.StatusEmpty,
			bookings: []bookingModel.Booking{stay(bookingModel.StatusBooked, true, -time.Hour, time.Hour)},
			want:     model.Projection{Status: model.StatusEmpty, Upcoming: true},
			wantOK:   true,
		},
		{
			name:    "cancelled and deleted bookings ignored",
			current: model.StatusInUse,
			bookings: []bookingModel.Booking{
				stay(bookingModel.StatusCancelled, true, -time.Hour, time.Hour),
				stay(bookingModel.StatusInUse, false, -time.Hour, time.Hour),
				stay(bookingModel.StatusBooked, false, time.Hour, 2*time.Hour),
			},
			want:   model.Projection{Status: model.StatusEmpty},
			wantOK: true,
		},
		{
			name:     "in use wins over upcoming",
			current:  model.StatusEmpty,
			bookings: []bookingModel.Booking{stay(bookingModel.StatusBooked, true, 5*time.Hour, 6*time.Hour), stay(bookingModel.StatusInUse, true, -time.Hour, time.Hour)},
			want:     model.Projection{Status: model.StatusInUse},
			wantOK:   true,
		},
		{
			name:     "maintenance is untouched",
			current:  model.StatusMaintenance,
			bookings: []bookingModel.Booking{stay(bookingModel.StatusInUse, true, -time.Hour, time.Hour)},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := model.Project(tt.current, tt.bookings, now, window)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	got, err := model.ParseStatus(" bảo TRÌ ")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusMaintenance, got)

	got, err = model.ParseStatus("trống")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusEmpty, got)

	_, err = model.ParseStatus("Bao tri")
	assert.ErrorIs(t, err, model.ErrUnknownStatus)
}
