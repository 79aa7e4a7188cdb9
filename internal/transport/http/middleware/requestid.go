package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// KeyRequestID doubles as the HTTP header name and the gin context key.
const KeyRequestID = "X-Request-ID"

// RequestID keeps an inbound X-Request-ID and mints a uuid otherwise,
// echoing it back so clients can correlate access-log lines.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Request.Header.Get(KeyRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(KeyRequestID, id)
		c.Set(KeyRequestID, id)
		c.Next()
	}
}
