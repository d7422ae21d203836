package booking_test

import (
	"encoding/json"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	svcMocks "hotel/internal/domains/booking/service/mocks"
	"hotel/internal/handlers/booking"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (http.Handler, *svcMocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := svcMocks.NewMockBooking(ctrl)

	handler := booking.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return router, svc
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	return recorder
}

func TestHandler_CreateBookings(t *testing.T) {
	const valid = `{
		"bookings": [{"room_id": "101", "check_in": "2026-11-02T10:00:00Z", "check_out": "2026-11-02T12:00:00Z", "occupants": 2}],
		"guest_ids": ["7b1e2f3a-3c5d-4e6f-8a9b-0c1d2e3f4a5b"]
	}`

	tests := []struct {
		name       string
		body       string
		setupMock  func(svc *svcMocks.MockBooking)
		wantStatus int
		wantBody   string
	}{
		{
			name: "created",
			body: valid,
			setupMock: func(svc *svcMocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, req dto.CreateBookingsRequest) (dto.CreateBookingsResponse, error) {
						assert.Equal(t, "101", req.Bookings[0].RoomID)

						return dto.CreateBookingsResponse{IDs: []string{"B1"}}, nil
					})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"B1"`,
		},
		{
			name:       "missing guests",
			body:       `{"bookings": [{"room_id": "101", "check_in": "2026-11-02T10:00:00Z", "check_out": "2026-11-02T12:00:00Z", "occupants": 2}]}`,
			setupMock:  func(*svcMocks.MockBooking) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"bookings": [`,
			setupMock:  func(*svcMocks.MockBooking) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "overlap",
			body: valid,
			setupMock: func(svc *svcMocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(dto.CreateBookingsResponse{}, failure.BadRequestFromString("room 101 is already booked"))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "already booked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setupMock(svc)

			recorder := serve(router, http.MethodPost, "/v1/bookings/", tt.body)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_GetBookings_Filters(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
			assert.Equal(t, 2, params.Page)
			require.Len(t, filter.Filters, 3)

			status, ok := filter.Filters[1].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, model.StatusInUse, status.Value)

			return dto.GetBookingsResponse{TotalData: 1, TotalPage: 1}, nil
		})

	recorder := serve(router, http.MethodGet, "/v1/bookings/?page=2&room_id=101&status=%C4%91ang+s%E1%BB%AD+d%E1%BB%A5ng&active=true", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_GetBookings_ActiveByDefault(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantActive bool
	}{
		{name: "no query", target: "/v1/bookings", wantActive: true},
		{name: "explicit active", target: "/v1/bookings/?active=true", wantActive: true},
		{name: "soft-deleted requested", target: "/v1/bookings/?active=false", wantActive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)

			svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ any, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
					where, args := filter.GetWhereClause()

					assert.Equal(t, "(room_bookings.active = :active)", where)
					assert.Equal(t, tt.wantActive, args[model.FieldActive])

					return dto.GetBookingsResponse{}, nil
				})

			recorder := serve(router, http.MethodGet, tt.target, "")

			assert.Equal(t, http.StatusOK, recorder.Code)
		})
	}
}

func TestHandler_GetBookings_UnknownStatus(t *testing.T) {
	router, _ := newRouter(t)

	recorder := serve(router, http.MethodGet, "/v1/bookings/?status=pending", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_GetAvailability(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().IsRoomAvailable(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error) {
				assert.Equal(t, "101", req.RoomID)
				assert.True(t, req.Start.Equal(time.Date(2026, 11, 2, 14, 0, 0, 0, time.UTC)))

				return dto.AvailabilityResponse{RoomID: "101", Available: true}, nil
			})

		recorder := serve(router, http.MethodGet, "/v1/bookings/availability?room_id=101&start=2026-11-02T14:00:00Z&end=2026-11-02T16:00:00Z", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Data dto.AvailabilityResponse `json:"data"`
		}

		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.True(t, body.Data.Available)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		router, _ := newRouter(t)

		recorder := serve(router, http.MethodGet, "/v1/bookings/availability?room_id=101&start=tomorrow&end=2026-11-02T16:00:00Z", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "RFC3339")
	})

	t.Run("missing room", func(t *testing.T) {
		router, _ := newRouter(t)

		recorder := serve(router, http.MethodGet, "/v1/bookings/availability?start=2026-11-02T14:00:00Z&end=2026-11-02T16:00:00Z", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

const bookingUUID = "3f2c9a1e-5b7d-4c8e-9f01-23456789abcd"

func TestHandler_UpdateBookingStatus(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().UpdateStatus(gomock.Any(), bookingUUID, dto.UpdateStatusRequest{Status: "Hủy"}).Return(nil)

	recorder := serve(router, http.MethodPut, "/v1/bookings/"+bookingUUID+"/status", `{"status": "Hủy"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_DeleteBooking_NotFound(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Delete(gomock.Any(), bookingUUID).Return(failure.NotFound("booking not found"))

	recorder := serve(router, http.MethodDelete, "/v1/bookings/"+bookingUUID, "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_MalformedBookingID(t *testing.T) {
	tests := []struct {
		method string
		target string
		body   string
	}{
		{method: http.MethodGet, target: "/v1/bookings/B1"},
		{method: http.MethodPatch, target: "/v1/bookings/B1", body: `{"occupants": 3}`},
		{method: http.MethodPut, target: "/v1/bookings/not-a-uuid/status", body: `{"status": "Hủy"}`},
		{method: http.MethodDelete, target: "/v1/bookings/12345"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			// the service mock has no expectations, so any call fails the test
			router, _ := newRouter(t)

			recorder := serve(router, tt.method, tt.target, tt.body)

			assert.Equal(t, http.StatusNotFound, recorder.Code)
			assert.Contains(t, recorder.Body.String(), "booking not found")
		})
	}
}
