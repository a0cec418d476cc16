package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	errNoToken      = errors.New("no bearer token")
	errInvalidToken = errors.New("invalid token")
)

const (
	subjectClaim = "sub"
	emailClaim   = "email"

	// Browsers cannot set headers on websocket handshakes, so the session
	// endpoint also accepts the token as a query parameter.
	tokenQueryParam = "access_token"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the caller as asserted by the auth provider's token.
type Identity struct {
	UserId uuid.UUID
	Email  string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func UserId(ctx context.Context) (uuid.UUID, bool) {
	id, ok := IdentityFrom(ctx)
	return id.UserId, ok
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		if websocket.IsWebSocketUpgrade(r) {
			if t := r.URL.Query().Get(tokenQueryParam); t != "" {
				return t, nil
			}
		}
		return "", errNoToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errInvalidToken
	}
	return strings.TrimSpace(token), nil
}

func (s *App) verifyToken(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, errInvalidToken
	}

	sub, _ := claims[subjectClaim].(string)
	userId, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, fmt.Errorf("invalid subject claim: %w", err)
	}
	email, _ := claims[emailClaim].(string)

	return Identity{UserId: userId, Email: email}, nil
}

// identify resolves the caller. It returns errNoToken when the request
// carries no credentials at all.
func (s *App) identify(r *http.Request) (Identity, error) {
	tokenString, err := bearerToken(r)
	if err != nil {
		return Identity{}, err
	}
	return s.verifyToken(tokenString)
}
