package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/shelterrights/shelterrights-api/internal/config"
	"github.com/shelterrights/shelterrights-api/internal/database"
	"github.com/shelterrights/shelterrights-api/internal/ratelimit"
	"github.com/shelterrights/shelterrights-api/internal/stats"
	"github.com/shelterrights/shelterrights-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLimiter struct {
	decision ratelimit.Decision
	err      error
	keys     []string
}

func (l *stubLimiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	l.keys = append(l.keys, key)
	return l.decision, l.err
}

func TestErrorHandler_PanicRecovery(t *testing.T) {
	logger, logs := testutil.ObservedLogger()
	app := &App{log: logger}

	// handler that panics
	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("test panic"))
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	handler := app.errorHandler(panicHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "close", rr.Header().Get("Connection"))
	entries := logs.FilterMessage("panic").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "test panic", entries[0].ContextMap()["error"])
}

func Test_errorHandler_NoPanic(t *testing.T) {
	app := &App{log: zap.NewNop()}

	called := false
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	handler := app.errorHandler(okHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.True(t, called, "expected handler to be called")
}

func TestApp_authMiddleware(t *testing.T) {
	app := &App{log: zap.NewNop(), signingKey: testSigningKey}
	userId := uuid.New()

	tcases := []struct {
		name       string
		optional   bool
		token      string
		statusCode int
		identified bool
	}{
		{
			name:       "required without token",
			token:      "",
			statusCode: http.StatusUnauthorized,
		},
		{
			name:       "required with invalid token",
			token:      "invalid",
			statusCode: http.StatusUnauthorized,
		},
		{
			name:       "required with valid token",
			token:      userToken(t, userId),
			statusCode: http.StatusOK,
			identified: true,
		},
		{
			name:       "optional without token",
			optional:   true,
			token:      "",
			statusCode: http.StatusOK,
		},
		{
			name:       "optional with invalid token",
			optional:   true,
			token:      "invalid",
			statusCode: http.StatusUnauthorized,
		},
		{
			name:       "optional with valid token",
			optional:   true,
			token:      userToken(t, userId),
			statusCode: http.StatusOK,
			identified: true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			var (
				called     bool
				identified bool
				gotId      uuid.UUID
			)
			next := func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotId, identified = UserId(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			handler := app.requireAuth(next)
			if tc.optional {
				handler = app.optionalAuth(next)
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tc.statusCode, rr.Code)
			assert.Equal(t, tc.statusCode == http.StatusOK, called)
			assert.Equal(t, tc.identified, identified)
			if tc.identified {
				assert.Equal(t, userId, gotId)
				assert.Equal(t, "no-store, no-cache, must-revalidate, private", rr.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestApp_rateLimit(t *testing.T) {
	tcases := []struct {
		name       string
		limiter    *stubLimiter
		statusCode int
		limit      string
		remaining  string
		retryAfter string
	}{
		{
			name:       "allowed",
			limiter:    &stubLimiter{decision: ratelimit.Decision{Allowed: true, Limit: 20, Remaining: 19, ResetIn: 30 * time.Second}},
			statusCode: http.StatusOK,
			limit:      "20",
			remaining:  "19",
		},
		{
			name:       "limited",
			limiter:    &stubLimiter{decision: ratelimit.Decision{Allowed: false, Limit: 20, Remaining: 0, ResetIn: 12 * time.Second}},
			statusCode: http.StatusTooManyRequests,
			limit:      "20",
			remaining:  "0",
			retryAfter: "12",
		},
		{
			name:       "unlimited",
			limiter:    &stubLimiter{decision: ratelimit.Decision{Allowed: true}},
			statusCode: http.StatusOK,
		},
		{
			name:       "limiter down fails open",
			limiter:    &stubLimiter{err: errors.New("connection refused")},
			statusCode: http.StatusOK,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockStats := &stats.MockStatsUpdater{}
			defer mockStats.AssertExpectations(t)
			if tc.statusCode == http.StatusTooManyRequests {
				mockStats.On("Incr", stats.RateLimited).Once()
			}

			app := &App{log: zap.NewNop(), limiter: tc.limiter, stats: mockStats}
			handler := app.rateLimit(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/renter/chat", nil)
			req.RemoteAddr = "203.0.113.7:51234"
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tc.statusCode, rr.Code)
			assert.Equal(t, tc.limit, rr.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, tc.remaining, rr.Header().Get("X-RateLimit-Remaining"))
			assert.Equal(t, tc.retryAfter, rr.Header().Get("Retry-After"))
			assert.Equal(t, []string{"ip:203.0.113.7"}, tc.limiter.keys)
		})
	}
}

func TestApp_rateLimit_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := ratelimit.NewRedisClient(config.RedisConfig{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	mockRepo := &database.MockRepository{}
	app := newTestApp(t, mockRepo, nil, ratelimit.NewRedisLimiter(client, 5, time.Minute))

	rr := doRequest(t, app.Handler(), http.MethodPost, "/api/renter/chat",
		ChatRequest{Message: "Can my landlord keep my deposit?", State: "CA"}, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "5", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", rr.Header().Get("X-RateLimit-Remaining"))
	assert.Len(t, mr.Keys(), 1)
}

func Test_clientKey(t *testing.T) {
	userId := uuid.New()

	tcases := []struct {
		name       string
		ctx        context.Context
		remoteAddr string
		expected   string
	}{
		{
			name:       "authenticated user",
			ctx:        WithIdentity(context.Background(), Identity{UserId: userId}),
			remoteAddr: "203.0.113.7:51234",
			expected:   "user:" + userId.String(),
		},
		{
			name:       "anonymous caller",
			ctx:        context.Background(),
			remoteAddr: "203.0.113.7:51234",
			expected:   "ip:203.0.113.7",
		},
		{
			name:       "remote address without port",
			ctx:        context.Background(),
			remoteAddr: "203.0.113.7",
			expected:   "ip:203.0.113.7",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(tc.ctx)
			req.RemoteAddr = tc.remoteAddr
			assert.Equal(t, tc.expected, clientKey(req))
		})
	}
}
