package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID carries the correlation id between the widget,
	// this API and the notifier logs.
	HeaderRequestID = "X-Request-ID"

	// ContextRequestID is the gin context key the access logger and
	// recovery middleware read.
	ContextRequestID = "request_id"
)

// RequestID propagates the caller's correlation id, minting one when
// the header is absent. The id is echoed back so the widget can quote
// it in support requests.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
