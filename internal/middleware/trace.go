package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"calboss/pkg/log"
)

// HeaderRequestID carries the trace id in and out of the API.
const HeaderRequestID = "X-Request-ID"

// Trace attaches a trace id to the request context, echoing an incoming
// X-Request-ID or minting a new one, and logs each request on completion.
func (mw Middleware) Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := log.WithTraceID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, id)

		start := time.Now()
		c.Next()

		mw.l.Infof(ctx, "%s %s %d %s", c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
