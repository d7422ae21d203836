package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	const key = "hotel:ratelimit:10.0.0.7:front-desk-1"

	tests := []struct {
		name          string
		setupMock     func(m *cacheMocks.MockRedisCache)
		wantStatus    int
		wantRemaining string
		wantRetry     string
	}{
		{
			name: "first request in window",
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(fmt.Errorf("miss: %w", cache.Nil))
				m.EXPECT().Save(gomock.Any(), key, 1, 60).Return(nil)
			},
			wantStatus:    http.StatusOK,
			wantRemaining: "1",
		},
		{
			name: "limit exceeded",
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), key, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*int) = 2

						return nil
					})
			},
			wantStatus: http.StatusTooManyRequests,
			wantRetry:  "60",
		},
		{
			name: "redis down lets request through",
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(errors.New("connection refused"))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(redisCache)

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = true
			cfg.App.RateLimiter.MaxRequests = 2
			cfg.App.RateLimiter.WindowSeconds = 60

			limit := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, redisCache).RateLimit()
			handler := limit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			request := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
			request.RemoteAddr = "10.0.0.7:53122"
			request.Header.Set(constant.RequestHeaderUserAgent, "front-desk-1")

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantRemaining, recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
			assert.Equal(t, tt.wantRetry, recorder.Header().Get(constant.RequestHeaderRetryAfter))
		})
	}
}
