package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shelterrights/shelterrights-api/internal/server"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// writeJson encodes v before writing the header so an unencodable value
// becomes a 500 rather than an empty 200.
func (s *App) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if v == nil {
		w.WriteHeader(statusCode)
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		s.log.Error("json encode", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		body, _ = json.Marshal(NewInternalServerError(err))
	} else {
		w.WriteHeader(statusCode)
	}

	body = append(body, '\n')
	if _, err := w.Write(body); err != nil {
		s.log.Error("write response", zap.Error(err))
	}
}

// decodeJson reads a JSON body into v. An empty body decodes as {}.
func decodeJson(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *App) writeError(w http.ResponseWriter, errResp *ApiError) {
	if errResp.StatusCode >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(errResp))
	}
	s.writeJson(w, errResp.StatusCode, errResp)
}

func (s *App) health(w http.ResponseWriter, r *http.Request) {
	s.writeJson(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"message":   "ShelterRights API is running",
		"timestamp": s.now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *App) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.log.Error("database ping failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *App) serveWs(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			return slices.Contains(s.allowedOrigins, origin)
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("error upgrading connection", zap.Error(err))
		return
	}

	client := server.NewClient(userId, conn, s.hub, s.log)
	if !s.hub.RegisterClient(client) {
		conn.Close()
		return
	}
	go client.Write()
	go client.Read()
}
