package middleware_test

import (
	"hotel/config"
	hotelJWT "hotel/infras/jwt"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secret = "test-secret"
	apiKey = "internal-key"
)

func newProtectedRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.AccessSecret = secret
	cfg.App.APIKey = apiKey

	perms := permissions.Get()
	require.NotNil(t, perms)

	auth := middleware.NewAuthRoleMiddleware(hotelJWT.New(cfg), otelMocks.NewOtel(), perms, cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		w.Header().Set("X-User", user)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(auth.APIKey)
		r.Use(auth.Auth)
		r.Use(auth.RBAC)

		r.Route("/v1/bookings", func(r chi.Router) {
			r.Get("/{id}", ok)
			r.Delete("/{id}", ok)
		})
	})

	return router
}

func token(t *testing.T, role string, expiresIn time.Duration) string {
	t.Helper()

	claims := hotelJWT.Claims{
		UserID: "staff-1",
		Email:  "frontdesk@hotel.test",
		Role:   role,
		Type:   hotelJWT.AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return "Bearer " + signed
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		headers    map[string]string
		wantStatus int
		wantUser   string
	}{
		{
			name:       "missing token",
			method:     http.MethodGet,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			method:     http.MethodGet,
			headers:    map[string]string{constant.RequestHeaderAuthorization: token(t, "staff", -time.Minute)},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "staff reads booking",
			method:     http.MethodGet,
			headers:    map[string]string{constant.RequestHeaderAuthorization: token(t, "staff", time.Hour)},
			wantStatus: http.StatusOK,
			wantUser:   "staff-1",
		},
		{
			name:       "staff cannot delete booking",
			method:     http.MethodDelete,
			headers:    map[string]string{constant.RequestHeaderAuthorization: token(t, "staff", time.Hour)},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "manager deletes booking",
			method:     http.MethodDelete,
			headers:    map[string]string{constant.RequestHeaderAuthorization: token(t, "manager", time.Hour)},
			wantStatus: http.StatusOK,
			wantUser:   "staff-1",
		},
		{
			name:       "internal api key skips token",
			method:     http.MethodDelete,
			headers:    map[string]string{constant.RequestHeaderAPIKey: apiKey},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong api key",
			method:     http.MethodGet,
			headers:    map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantStatus: http.StatusForbidden,
		},
	}

	router := newProtectedRouter(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, "/v1/bookings/B1", nil)
			for key, value := range tt.headers {
				request.Header.Set(key, value)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantUser, recorder.Header().Get("X-User"))
		})
	}
}
