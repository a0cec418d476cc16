package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/shelterrights/shelterrights-api/internal/stats"
	"go.uber.org/zap"
)

func (s *App) errorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				var panicError error
				switch e := err.(type) {
				case error:
					panicError = e
				default:
					panicError = fmt.Errorf("%v", e)
				}
				s.log.Error("panic", zap.Error(panicError), zap.String("path", r.URL.Path))
				errResp := NewInternalServerError(panicError)
				w.Header().Set("Connection", "close")
				s.writeJson(w, errResp.StatusCode, errResp)
				return
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requireAuth rejects requests without a valid bearer token.
func (s *App) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.identify(r)
		if err != nil {
			s.log.Debug("rejecting unauthenticated request", zap.String("path", r.URL.Path), zap.Error(err))
			errResp := NewUnauthorizedError()
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		ctx := WithIdentity(r.Context(), id)
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")

		next(w, r.WithContext(ctx))
	}
}

// optionalAuth lets anonymous callers through. A token that is present but
// invalid is still rejected.
func (s *App) optionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.identify(r)
		switch {
		case errors.Is(err, errNoToken):
			next(w, r)
		case err != nil:
			s.log.Debug("rejecting invalid token", zap.String("path", r.URL.Path), zap.Error(err))
			errResp := NewUnauthorizedError()
			s.writeJson(w, errResp.StatusCode, errResp)
		default:
			w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
			next(w, r.WithContext(WithIdentity(r.Context(), id)))
		}
	}
}

// rateLimit applies the limiter to AI-backed routes. It must run inside the
// auth middleware so callers are keyed by user when known. Limiter errors
// let the request through.
func (s *App) rateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		d, err := s.limiter.Allow(r.Context(), key)
		if err != nil {
			s.log.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			next(w, r)
			return
		}

		if d.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		}
		if !d.Allowed {
			s.stats.Incr(stats.RateLimited)
			w.Header().Set("Retry-After", strconv.Itoa(int(d.ResetIn.Seconds()+0.5)))
			errResp := NewTooManyRequestsError()
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		next(w, r)
	}
}

func clientKey(r *http.Request) string {
	if userId, ok := UserId(r.Context()); ok {
		return "user:" + userId.String()
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func (s *App) notFound(w http.ResponseWriter, r *http.Request) {
	errResp := NewNotFoundError().WithMessage("route not found")
	s.writeJson(w, errResp.StatusCode, errResp)
}
