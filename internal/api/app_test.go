package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/shelterrights/shelterrights-api/internal/config"
	"github.com/shelterrights/shelterrights-api/internal/database"
	"github.com/shelterrights/shelterrights-api/internal/genai"
	"github.com/shelterrights/shelterrights-api/internal/ratelimit"
	"github.com/shelterrights/shelterrights-api/internal/stats"
	"github.com/shelterrights/shelterrights-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSigningKey = []byte("test-signing-key")

type stubGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

func (g *stubGenerator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

func newTestAdvisor(gen genai.Generator) *genai.Advisor {
	if gen == nil {
		return genai.NewAdvisorWithGenerator(nil, false, zap.NewNop(), stats.Nop{})
	}
	return genai.NewAdvisorWithGenerator(gen, true, zap.NewNop(), stats.Nop{})
}

func newTestApp(t *testing.T, db database.Repository, advisor *genai.Advisor, limiter ratelimit.Limiter) *App {
	t.Helper()
	if advisor == nil {
		advisor = newTestAdvisor(&stubGenerator{text: "generated text"})
	}
	cfg := &config.Config{
		ServerAddr:     ":0",
		SigningKey:     testSigningKey,
		AllowedOrigins: []string{"http://localhost:5173"},
	}
	return NewApp(http.NewServeMux(), testutil.TestLogger(t), nil, db, nil, advisor, limiter, cfg)
}

func signToken(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func userToken(t *testing.T, userId uuid.UUID) string {
	return signToken(t, testSigningKey, jwt.MapClaims{
		"sub":   userId.String(),
		"email": "tenant@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func Test_health(t *testing.T) {
	app := newTestApp(t, &database.MockRepository{}, nil, nil)
	app.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	rr := doRequest(t, app.Handler(), http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody[map[string]string](t, rr)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ShelterRights API is running", body["message"])
	assert.Equal(t, "2025-06-01T12:00:00Z", body["timestamp"])
}

func Test_healthCheck(t *testing.T) {
	tcases := []struct {
		name    string
		mockErr error
	}{
		{
			name:    "successful health check",
			mockErr: nil,
		},
		{
			name:    "failed health check",
			mockErr: errors.New("db error"),
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockRepository{}
			defer mockRepo.AssertExpectations(t)
			mockRepo.On("Ping", mock.Anything).Return(tc.mockErr).Once()

			app := newTestApp(t, mockRepo, nil, nil)
			rr := doRequest(t, app.Handler(), http.MethodGet, "/healthz", nil, "")

			if tc.mockErr != nil {
				assert.Equal(t, http.StatusInternalServerError, rr.Code, "expected status code to be 500")
			} else {
				assert.Equal(t, http.StatusOK, rr.Code, "expected status code to be 200")
				assert.Equal(t, "OK", rr.Body.String(), "expected response body to be 'OK'")
			}
		})
	}
}

func TestApp_writeJson(t *testing.T) {
	tcases := []struct {
		name       string
		value      any
		statusCode int
		body       string
	}{
		{
			name:       "encodable value",
			value:      map[string]float64{"burden": 30},
			statusCode: http.StatusOK,
			body:       `{"burden":30}`,
		},
		{
			name:       "infinite value",
			value:      map[string]float64{"burden": math.Inf(1)},
			statusCode: http.StatusInternalServerError,
			body:       `{"status_code":500,"error":"internal server error"}`,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t, &database.MockRepository{}, nil, nil)
			rr := httptest.NewRecorder()

			app.writeJson(rr, http.StatusOK, tc.value)

			assert.Equal(t, tc.statusCode, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.body, rr.Body.String())
		})
	}
}

func TestApp_RouteNotFound(t *testing.T) {
	app := newTestApp(t, &database.MockRepository{}, nil, nil)

	for _, path := range []string{"/api/unknown", "/", "/api/renter"} {
		t.Run(path, func(t *testing.T) {
			rr := doRequest(t, app.Handler(), http.MethodGet, path, nil, "")

			assert.Equal(t, http.StatusNotFound, rr.Code)
			body := decodeBody[ApiError](t, rr)
			assert.Equal(t, "route not found", body.Message)
			assert.Equal(t, http.StatusNotFound, body.StatusCode)
		})
	}
}

func TestApp_CORS(t *testing.T) {
	app := newTestApp(t, &database.MockRepository{}, nil, nil)

	tcases := []struct {
		name   string
		origin string
		allow  string
	}{
		{
			name:   "allowed origin",
			origin: "http://localhost:5173",
			allow:  "http://localhost:5173",
		},
		{
			name:   "unknown origin",
			origin: "http://evil.example",
			allow:  "",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/renter/calculate-rent", nil)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rr := httptest.NewRecorder()

			app.Handler().ServeHTTP(rr, req)

			assert.Equal(t, tc.allow, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestApp_RequiresAuth(t *testing.T) {
	app := newTestApp(t, &database.MockRepository{}, nil, nil)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/property/search"},
		{http.MethodGet, "/api/renter/calculations"},
		{http.MethodGet, "/api/renter/calculations/export"},
		{http.MethodGet, "/api/renter/chat-history"},
		{http.MethodPost, "/api/renter/campaigns"},
		{http.MethodPost, "/api/renter/campaigns/abc/sign"},
		{http.MethodGet, "/api/users/profile"},
		{http.MethodPut, "/api/users/profile"},
		{http.MethodPost, "/api/users/setup"},
		{http.MethodPost, "/api/users/switch-mode"},
		{http.MethodGet, "/ws/assistant"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rr := doRequest(t, app.Handler(), route.method, route.path, nil, "")
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "unauthorized", decodeBody[ApiError](t, rr).Message)
		})
	}
}

func TestApp_Shutdown(t *testing.T) {
	app := newTestApp(t, &database.MockRepository{}, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, app.Shutdown(ctx))
	assert.NoError(t, app.Start(), "a closed server returns no error from Start")
}
