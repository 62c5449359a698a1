package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"support-chat-api/internal/utils/platformerrors"
)

const requestIDHeader = "X-Request-Id"

// RequestID injects an X-Request-Id header when missing and makes it
// available via the gin context and the request context, so errors built in
// lower layers carry the id back into the response body.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(requestIDHeader, requestID)
		}
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Set("request_id", requestID)
		c.Request = c.Request.WithContext(
			platformerrors.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}
