package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/ksuid"
)

type CtxKey string

const CtxKeyTraceID CtxKey = "trace_id"

const HeaderTraceID = "X-Trace-Id"

// TraceID tags every request with a ksuid, or reuses the one sent by the
// caller, and echoes it back in the response headers.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(HeaderTraceID)
		if traceID == "" {
			traceID = ksuid.New().String()
		}

		ctx := context.WithValue(c.Request.Context(), CtxKeyTraceID, traceID)
		c.Request = c.Request.Clone(ctx)
		c.Header(HeaderTraceID, traceID)

		c.Next()
	}
}

func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(CtxKeyTraceID).(string)
	return traceID
}
