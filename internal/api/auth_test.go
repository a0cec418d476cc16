package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserId(t *testing.T) {
	userId := uuid.New()

	tcases := []struct {
		name     string
		ctx      context.Context
		userId   uuid.UUID
		expected bool
	}{
		{
			name:     "no user ID",
			ctx:      context.Background(),
			userId:   uuid.Nil,
			expected: false,
		},
		{
			name:     "user ID set",
			ctx:      WithIdentity(context.Background(), Identity{UserId: userId, Email: "a@example.com"}),
			userId:   userId,
			expected: true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := UserId(tc.ctx)
			assert.Equal(t, tc.expected, ok, "expected UserId to return %v", tc.expected)
			assert.Equal(t, tc.userId, got, "expected UserId to return %s", tc.userId)
		})
	}
}

func Test_bearerToken(t *testing.T) {
	tcases := []struct {
		name    string
		path    string
		header  string
		upgrade bool
		token   string
		err     error
	}{
		{
			name: "no credentials",
			path: "/api/users/profile",
			err:  errNoToken,
		},
		{
			name:   "bearer token",
			path:   "/api/users/profile",
			header: "Bearer abc.def.ghi",
			token:  "abc.def.ghi",
		},
		{
			name:   "scheme is case insensitive",
			path:   "/api/users/profile",
			header: "bearer abc.def.ghi",
			token:  "abc.def.ghi",
		},
		{
			name:   "wrong scheme",
			path:   "/api/users/profile",
			header: "Basic dXNlcjpwYXNz",
			err:    errInvalidToken,
		},
		{
			name:   "empty token",
			path:   "/api/users/profile",
			header: "Bearer ",
			err:    errInvalidToken,
		},
		{
			name: "query token ignored on plain requests",
			path: "/api/users/profile?access_token=abc",
			err:  errNoToken,
		},
		{
			name:    "query token on websocket upgrade",
			path:    "/ws/assistant?access_token=abc",
			upgrade: true,
			token:   "abc",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.upgrade {
				req.Header.Set("Connection", "Upgrade")
				req.Header.Set("Upgrade", "websocket")
			}

			token, err := bearerToken(req)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.token, token)
		})
	}
}

func TestApp_verifyToken(t *testing.T) {
	app := &App{signingKey: testSigningKey}
	userId := uuid.New()
	exp := time.Now().Add(time.Hour).Unix()

	tcases := []struct {
		name  string
		token string
		email string
		err   bool
	}{
		{
			name:  "valid token",
			token: signToken(t, testSigningKey, jwt.MapClaims{"sub": userId.String(), "email": "tenant@example.com", "exp": exp}),
			email: "tenant@example.com",
		},
		{
			name:  "valid token without email",
			token: signToken(t, testSigningKey, jwt.MapClaims{"sub": userId.String(), "exp": exp}),
		},
		{
			name:  "wrong signing key",
			token: signToken(t, []byte("other-key"), jwt.MapClaims{"sub": userId.String(), "exp": exp}),
			err:   true,
		},
		{
			name:  "expired token",
			token: signToken(t, testSigningKey, jwt.MapClaims{"sub": userId.String(), "exp": time.Now().Add(-time.Minute).Unix()}),
			err:   true,
		},
		{
			name:  "subject is not a uuid",
			token: signToken(t, testSigningKey, jwt.MapClaims{"sub": "42", "exp": exp}),
			err:   true,
		},
		{
			name:  "missing subject",
			token: signToken(t, testSigningKey, jwt.MapClaims{"exp": exp}),
			err:   true,
		},
		{
			name:  "garbage",
			token: "not-a-token",
			err:   true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := app.verifyToken(tc.token)
			if tc.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, userId, id.UserId)
			assert.Equal(t, tc.email, id.Email)
		})
	}
}
