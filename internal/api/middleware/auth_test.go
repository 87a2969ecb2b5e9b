package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/api/middleware"
	"github.com/shelterplus/shelterplus-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, secret, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseUserID(t *testing.T) {
	cfg := testutil.TestConfig()
	userID := uuid.New()

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name:  "valid token",
			token: mintToken(t, cfg.JWTSecret, userID.String()),
		},
		{
			name:    "wrong secret",
			token:   mintToken(t, "some-other-secret", userID.String()),
			wantErr: true,
		},
		{
			name:    "subject is not a uuid",
			token:   mintToken(t, cfg.JWTSecret, "discord-user-42"),
			wantErr: true,
		},
		{
			name:    "empty subject",
			token:   mintToken(t, cfg.JWTSecret, ""),
			wantErr: true,
		},
		{
			name:    "garbage token",
			token:   "not.a.token",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := middleware.ParseUserID(cfg.JWTSecret, tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, got)
		})
	}
}

func TestAuth(t *testing.T) {
	cfg := testutil.TestConfig()
	userID := uuid.New()

	handler := middleware.Auth(cfg.JWTSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := middleware.GetUserID(r.Context())
		require.True(t, ok)
		assert.Equal(t, userID, got)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg.JWTSecret, userID.String()))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
