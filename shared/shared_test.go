package shared_test

import (
	"context"
	"errors"
	"hotel/shared"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("maybe"))
	assert.True(t, *shared.ConvertStringToBool("true"))
	assert.False(t, *shared.ConvertStringToBool("0"))
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, expected int
	}{
		{0, 10, 1},
		{100, 0, 1},
		{100, -5, 1},
		{100, 10, 10},
		{101, 10, 11},
		{5, 10, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
	}
}

func TestTransformFields(t *testing.T) {
	type patch struct {
		Name      string  `db:"name"`
		Occupants *int    `db:"occupants"`
		Skipped   string  `db:"-"`
		Untagged  string
		Empty     *string `db:"note"`
	}

	zero := 0
	result := shared.TransformFields(patch{Name: "Deluxe", Occupants: &zero, Skipped: "x", Untagged: "y"}, "staff-1")

	assert.Equal(t, "Deluxe", result["name"])
	assert.Equal(t, &zero, result["occupants"])
	assert.NotContains(t, result, "-")
	assert.NotContains(t, result, "note")
	assert.Equal(t, "staff-1", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
}

func TestFilterByID(t *testing.T) {
	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: "R101", Operator: dto.FilterOperatorEq, Table: "rooms"},
		},
	}

	assert.Equal(t, expected, shared.FilterByID("R101", "id", "rooms"))
}

func TestFilterActiveByID(t *testing.T) {
	filter := shared.FilterActiveByID("b-1", "id", "room_bookings")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(room_bookings.id = :id AND room_bookings.active = :active)", where)
	assert.Equal(t, map[string]any{"id": "b-1", "active": true}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get:b-1", shared.BuildCacheKey("booking:get", "b-1"))
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room:gets"))

	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: "Trống", Operator: dto.FilterOperatorEq}}}

	first := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	other := shared.BuildCacheKeyWithQuery("room:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "room:gets:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "booking:gets:").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "booking:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets:").Return(errors.New("redis down"))
	assert.NotPanics(t, func() { shared.InvalidateCaches(context.Background(), mockCache, "room:gets") })
}
