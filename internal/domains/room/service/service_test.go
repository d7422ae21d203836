package service_test

import (
	"context"
	"errors"
	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	txMocks "hotel/infras/postgres/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mocks struct {
	repo        *roomMocks.MockRoom
	bookingRepo *bookingMocks.MockBooking
	projector   *roomMocks.MockProjector
	transactor  *txMocks.MockTransactor
	cache       *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Room, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := mocks{
		repo:        roomMocks.NewMockRoom(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		projector:   roomMocks.NewMockProjector(ctrl),
		transactor:  txMocks.NewMockTransactor(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	m.transactor.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn postgres.TxFunc) error {
			return fn(ctx, nil)
		}).
		AnyTimes()
	m.transactor.EXPECT().Lock(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(m.repo, m.bookingRepo, m.projector, m.transactor, cfg, m.cache, otelMocks.NewOtel()), m
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m mocks)
		want      dto.RoomResponse
		wantCode  int
	}{
		{
			name: "cache miss",
			setupMock: func(m mocks) {
				m.cache.EXPECT().Get(gomock.Any(), "room:get:R1", gomock.Any()).Return(errors.New("miss"))
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: "R1", Name: "101", Status: model.StatusInUse, Active: true}, nil)
			},
			want: dto.RoomResponse{ID: "R1", Name: "101", Status: "Đang sử dụng", Active: true},
		},
		{
			name: "not found",
			setupMock: func(m mocks) {
				m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func(m mocks) {
				m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			res, err := svc.Get(userContext(), "R1")
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.ID, res.ID)
			assert.Equal(t, tt.want.Name, res.Name)
			assert.Equal(t, tt.want.Status, res.Status)
			assert.Equal(t, tt.want.Active, res.Active)
		})
	}
}

func TestRoomService_UpdateStatus(t *testing.T) {
	active := model.Room{ID: "R1", Status: model.StatusEmpty, Active: true}

	t.Run("maintenance skips projection", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(active, nil)
		m.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, mod map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusMaintenance, mod[model.FieldStatus])

				return 1, nil
			})

		assert.NoError(t, svc.UpdateStatus(userContext(), "R1", dto.UpdateRoomStatusRequest{Status: "bảo trì"}))
	})

	t.Run("release hands the room back to the projector", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "R1", Status: model.StatusMaintenance, Active: true}, nil)
		m.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, mod map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusEmpty, mod[model.FieldStatus])

				return 1, nil
			})
		m.projector.EXPECT().RecomputeTx(gomock.Any(), gomock.Any(), "R1").Return(nil)

		assert.NoError(t, svc.UpdateStatus(userContext(), "R1", dto.UpdateRoomStatusRequest{Status: "Trống"}))
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.UpdateStatus(userContext(), "R1", dto.UpdateRoomStatusRequest{Status: "closed"})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("archived room", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		err := svc.UpdateStatus(userContext(), "R1", dto.UpdateRoomStatusRequest{Status: "Bảo trì"})
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	ended := past.Add(2 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	t.Run("only finished bookings", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Room{ID: "R1", Active: true}, nil)
		m.bookingRepo.EXPECT().GetBlockingByRoomTx(gomock.Any(), gomock.Any(), "R1").
			Return([]bookingModel.Booking{{ID: "B1", RoomID: "R1", CheckIn: &past, CheckOut: &ended, Status: bookingModel.StatusInUse, Active: true}}, nil)
		m.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, mod map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, false, mod[model.FieldActive])

				return 1, nil
			})

		assert.NoError(t, svc.Delete(userContext(), "R1"))
	})

	t.Run("upcoming booking", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Room{ID: "R1", Active: true}, nil)
		m.bookingRepo.EXPECT().GetBlockingByRoomTx(gomock.Any(), gomock.Any(), "R1").
			Return([]bookingModel.Booking{{ID: "B1", RoomID: "R1", CheckIn: &past, CheckOut: &future, Status: bookingModel.StatusBooked, Active: true}}, nil)

		err := svc.Delete(userContext(), "R1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestRoomService_RecomputeAll(t *testing.T) {
	svc, m := newService(t)

	m.repo.EXPECT().GetActiveIDs(gomock.Any()).Return([]string{"R1", "R2", "R3"}, nil)
	m.projector.EXPECT().RecomputeTx(gomock.Any(), gomock.Any(), "R1").Return(nil)
	m.projector.EXPECT().RecomputeTx(gomock.Any(), gomock.Any(), "R2").Return(errors.New("database error"))
	m.projector.EXPECT().RecomputeTx(gomock.Any(), gomock.Any(), "R3").Return(nil)

	err := svc.RecomputeAll(userContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "room R2")
	assert.NotContains(t, err.Error(), "room R1")
}
