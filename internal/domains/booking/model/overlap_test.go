package model_test

import (
	"hotel/internal/domains/booking/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var day = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func interval(startHour, startMinute, endHour, endMinute int) model.Interval {
	return model.Interval{Start: at(startHour, startMinute), End: at(endHour, endMinute)}
}

func booking(id string, status model.Status, active bool, in model.Interval) model.Booking {
	return model.Booking{
		ID:       id,
		RoomID:   "R1",
		CheckIn:  &in.Start,
		CheckOut: &in.End,
		Status:   status,
		Active:   active,
	}
}

func TestConflicts_TurnoverBuffer(t *testing.T) {
	existing := []model.Booking{booking("X", model.StatusBooked, true, interval(10, 0, 12, 0))}

	tests := []struct {
		name      string
		candidate model.Interval
		want      bool
	}{
		{"direct overlap", interval(11, 0, 13, 0), true},
		{"candidate inside existing", interval(10, 30, 11, 30), true},
		{"candidate contains existing", interval(9, 0, 13, 0), true},
		{"identical interval", interval(10, 0, 12, 0), true},
		{"gap of ninety minutes after", interval(13, 30, 15, 0), true},
		{"gap of ninety minutes before", interval(6, 0, 8, 30), true},
		{"gap of exactly two hours after", interval(14, 0, 16, 0), false},
		{"gap of exactly two hours before", interval(6, 0, 8, 0), false},
		{"far away", interval(20, 0, 23, 0), false},
		{"inverted candidate", interval(16, 0, 14, 0), true},
		{"empty candidate", interval(16, 0, 16, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Conflicts(tt.candidate, existing, ""))
		})
	}
}

func TestConflicts_IgnoresNonBlockingBookings(t *testing.T) {
	candidate := interval(10, 0, 12, 0)

	tests := []struct {
		name     string
		existing model.Booking
		want     bool
	}{
		{"booked blocks", booking("A", model.StatusBooked, true, candidate), true},
		{"in use blocks", booking("A", model.StatusInUse, true, candidate), true},
		{"cancelled frees the room", booking("A", model.StatusCancelled, true, candidate), false},
		{"completed frees the room", booking("A", model.StatusCompleted, true, candidate), false},
		{"soft deleted frees the room", booking("A", model.StatusBooked, false, candidate), false},
		{"missing dates are skipped", model.Booking{ID: "A", Status: model.StatusBooked, Active: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Conflicts(candidate, []model.Booking{tt.existing}, ""))
		})
	}
}

func TestConflicts_ExcludesSelf(t *testing.T) {
	existing := []model.Booking{
		booking("A", model.StatusBooked, true, interval(10, 0, 12, 0)),
		booking("B", model.StatusBooked, true, interval(18, 0, 20, 0)),
	}

	assert.False(t, model.Conflicts(interval(10, 30, 12, 30), existing, "A"))
	assert.True(t, model.Conflicts(interval(10, 30, 17, 0), existing, "A"))
	assert.True(t, model.Conflicts(interval(10, 30, 12, 30), existing, ""))
}

func TestInterval_ConflictsIsSymmetric(t *testing.T) {
	pairs := [][2]model.Interval{
		{interval(10, 0, 12, 0), interval(13, 30, 15, 0)},
		{interval(10, 0, 12, 0), interval(14, 0, 16, 0)},
		{interval(1, 0, 23, 0), interval(5, 0, 6, 0)},
		{interval(10, 0, 11, 0), interval(12, 59, 14, 0)},
	}

	for _, pair := range pairs {
		assert.Equal(t, pair[0].Conflicts(pair[1]), pair[1].Conflicts(pair[0]))
	}
}

func TestInterval_BufferedOverlapProperty(t *testing.T) {
	// Any two stays whose padded spans overlap must conflict, and vice versa.
	base := interval(10, 0, 12, 0)

	for offset := -8 * time.Hour; offset <= 8*time.Hour; offset += 15 * time.Minute {
		other := model.Interval{Start: base.Start.Add(offset), End: base.End.Add(offset)}

		bufferedOverlap := base.End.Add(model.TurnoverBuffer).After(other.Start) &&
			other.End.Add(model.TurnoverBuffer).After(base.Start)

		assert.Equal(t, bufferedOverlap, base.Conflicts(other), "offset %s", offset)
	}
}
