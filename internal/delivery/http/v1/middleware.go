package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDCtxKey = "request_id"
)

// HandleRequestID tags every request with an id, echoing a
// caller-provided one or generating a fresh uuid.
func (h *handlerImpl) HandleRequestID(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	c.Set(requestIDCtxKey, requestID)
	c.Header(requestIDHeader, requestID)
	c.Next()
}

func (h *handlerImpl) requestLogger(c *gin.Context) zerolog.Logger {
	requestID := c.GetString(requestIDCtxKey)
	if requestID == "" {
		return h.logger
	}
	return h.logger.With().
		Str("request_id", requestID).
		Logger()
}
