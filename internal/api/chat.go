package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shelterrights/shelterrights-api/internal/database"
	"github.com/shelterrights/shelterrights-api/internal/genai"
	"go.uber.org/zap"
)

// TenantChat answers tenant-rights questions for both the HTTP chat route
// and websocket sessions, and appends the turn to the caller's transcript.
type TenantChat struct {
	db      database.Repository
	advisor *genai.Advisor
	log     *zap.Logger
	now     func() time.Time
}

func NewTenantChat(db database.Repository, advisor *genai.Advisor, logger *zap.Logger) *TenantChat {
	return &TenantChat{
		db:      db,
		advisor: advisor,
		log:     logger,
		now:     time.Now,
	}
}

// Answer never fails: the advisor falls back to fixed text and the
// transcript write is best-effort. uuid.Nil means an anonymous caller
// whose turn is not stored.
func (c *TenantChat) Answer(ctx context.Context, userId uuid.UUID, state, message string) (string, error) {
	response := c.advisor.ChatTenantRights(ctx, message, state)

	if userId != uuid.Nil {
		now := c.now().UTC()
		msgs := []database.ChatMessage{
			{Role: "user", Content: message, Timestamp: now},
			{Role: "assistant", Content: response, Timestamp: now},
		}
		if err := c.db.AppendChatMessages(ctx, userId, state, msgs); err != nil {
			c.log.Warn("failed to save chat history",
				zap.String("user_id", userId.String()),
				zap.String("state", state),
				zap.Error(err))
		}
	}

	return response, nil
}
