package middleware

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Logger logs every inbound request once it has been served. Response bodies
// are only logged in debug mode.
func Logger(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		t0 := time.Now()

		c.Next()

		// Ofuscate credentials if they were sent.
		q := c.Request.URL.Query()
		for _, k := range []string{"access_token", "access_key"} {
			if q.Has(k) {
				q.Set(k, "*****")
			}
		}

		body := "<redacted>"
		if debug {
			body = w.body.String()
		}

		logFields := []any{
			slog.Group("http",
				slog.Group("request",
					"duration_ms", time.Since(t0).Milliseconds(),
					"method", c.Request.Method,
					"route", c.FullPath(),
					"content_length", c.Request.ContentLength,
					slog.Group("url",
						"path", c.Request.URL.Path,
						"query_params", q,
					),
				),
				slog.Group("response",
					"status", c.Writer.Status(),
					"size", c.Writer.Size(),
					"body", body,
				),
			),
		}

		slog.InfoContext(c.Request.Context(), "inbound request", logFields...)
	}
}
