package jwt_test

import (
	"hotel/config"
	hotelJWT "hotel/infras/jwt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, claims hotelJWT.Claims, key string) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)

	return token
}

func TestService_ValidateToken(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = secret

	svc := hotelJWT.New(cfg)
	now := time.Now()

	valid := hotelJWT.Claims{
		UserID: "staff-1",
		Email:  "frontdesk@hotel.test",
		Role:   "staff",
		Type:   hotelJWT.AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}

	expired := valid
	expired.RegisteredClaims = jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour))}

	refresh := valid
	refresh.Type = "refresh"

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"valid access token", sign(t, valid, secret), nil},
		{"expired token", sign(t, expired, secret), hotelJWT.ErrExpiredToken},
		{"wrong secret", sign(t, valid, "other"), hotelJWT.ErrInvalidToken},
		{"wrong token type", sign(t, refresh, secret), hotelJWT.ErrInvalidClaim},
		{"garbage", "not-a-token", hotelJWT.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "staff-1", claims.UserID)
			assert.Equal(t, "staff", claims.Role)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := hotelJWT.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = hotelJWT.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = hotelJWT.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)

	_, err = hotelJWT.ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)
}
