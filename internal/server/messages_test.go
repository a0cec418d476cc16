package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoErrOk(t *testing.T) {
	result := NoErrOK(1, map[string]any{
		"response": "testvalue",
	})

	assert.NotNil(t, result.Response, "expected response to be non-nil")
	assert.Equal(t, 1, result.Id, "expected Id to match")
	assert.WithinDuration(t, Now(), result.Timestamp, time.Second, "expected Timestamp to be within 1 second")
	assert.Equal(t, http.StatusOK, result.Response.ResponseCode, "expected ResponseCode to match")
	assert.Equal(t, map[string]any{"response": "testvalue"}, result.Response.Data, "expected Data to match")
	assert.Empty(t, result.Response.Error)
}

func TestErrorMessages(t *testing.T) {
	tcases := []struct {
		name    string
		msg     *ServerMessage
		code    int
		errText string
		id      int
	}{
		{
			name:    "bad request",
			msg:     ErrBadRequest(3, "message and state are required"),
			code:    http.StatusBadRequest,
			errText: "message and state are required",
			id:      3,
		},
		{
			name:    "internal error",
			msg:     ErrInternalError(4),
			code:    http.StatusInternalServerError,
			errText: "internal server error",
			id:      4,
		},
		{
			name:    "service unavailable",
			msg:     ErrServiceUnavailable(5),
			code:    http.StatusServiceUnavailable,
			errText: "service unavailable",
			id:      5,
		},
		{
			name:    "invalid message with id",
			msg:     ErrInvalidMessage(6),
			code:    http.StatusBadRequest,
			errText: "invalid message format",
			id:      6,
		},
		{
			name:    "invalid message without id",
			msg:     ErrInvalidMessage(-1),
			code:    http.StatusBadRequest,
			errText: "invalid message format",
			id:      0,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.id, tc.msg.Id)
			assert.Equal(t, tc.code, tc.msg.Response.ResponseCode)
			assert.Equal(t, tc.errText, tc.msg.Response.Error)
			assert.Nil(t, tc.msg.Response.Data)
		})
	}
}

func TestNow(t *testing.T) {
	now := Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Equal(t, now, now.Round(time.Millisecond), "expected millisecond precision")
}
