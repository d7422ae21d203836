package model_test

import (
	"encoding/json"
	"hotel/internal/domains/booking/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    model.Status
		wantErr bool
	}{
		{raw: "Đã đặt", want: model.StatusBooked},
		{raw: "  đang sử dụng ", want: model.StatusInUse},
		{raw: "HỦY", want: model.StatusCancelled},
		{raw: "hoàn thành", want: model.StatusCompleted},
		{raw: norm.NFD.String("Hoàn thành"), want: model.StatusCompleted},
		{raw: "Da dat", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "confirmed", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := model.ParseStatus(tt.raw)

			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrUnknownStatus)
				assert.Equal(t, model.StatusUnknown, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_CanonicalPersistence(t *testing.T) {
	status, err := model.ParseStatus("  ĐÃ ĐẶT")
	require.NoError(t, err)

	value, err := status.Value()
	require.NoError(t, err)
	assert.Equal(t, "Đã đặt", value)

	_, err = model.StatusUnknown.Value()
	assert.Error(t, err)

	var scanned model.Status
	require.NoError(t, scanned.Scan([]byte("Hủy")))
	assert.Equal(t, model.StatusCancelled, scanned)
	assert.Error(t, scanned.Scan(42))
}

func TestStatus_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Status model.Status `json:"status"`
	}{model.StatusInUse})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"Đang sử dụng"}`, string(raw))

	var decoded struct {
		Status model.Status `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"hoàn thành"}`), &decoded))
	assert.Equal(t, model.StatusCompleted, decoded.Status)
}

func TestStatus_Classification(t *testing.T) {
	assert.True(t, model.StatusBooked.Blocking())
	assert.True(t, model.StatusInUse.Blocking())
	assert.False(t, model.StatusCancelled.Blocking())
	assert.False(t, model.StatusCompleted.Blocking())

	assert.True(t, model.StatusCancelled.Terminal())
	assert.True(t, model.StatusCompleted.Terminal())
	assert.False(t, model.StatusUnknown.Valid())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[model.Status][]model.Status{
		model.StatusBooked:    {model.StatusBooked, model.StatusInUse, model.StatusCancelled},
		model.StatusInUse:     {model.StatusInUse, model.StatusCompleted, model.StatusCancelled},
		model.StatusCancelled: {model.StatusCancelled},
		model.StatusCompleted: {model.StatusCompleted},
	}

	for from, targets := range allowed {
		for _, to := range model.Statuses() {
			assert.Equal(t, contains(targets, to), from.CanTransitionTo(to), "%s -> %s", from, to)
		}

		assert.False(t, from.CanTransitionTo(model.StatusUnknown))
	}
}

func contains(list []model.Status, status model.Status) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}

	return false
}
