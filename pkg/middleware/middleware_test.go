package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/manzanit0/mapboxgeo/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger(true))
	r.GET("/", handler)
	return r
}

func TestTraceID(t *testing.T) {
	testCases := []struct {
		desc     string
		incoming string
	}{
		{desc: "when the caller sends no trace id, one is generated"},
		{desc: "when the caller sends a trace id, it is reused", incoming: "my-trace"},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			var seen string
			r := newRouter(func(c *gin.Context) {
				seen = middleware.TraceIDFromContext(c.Request.Context())
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tC.incoming != "" {
				req.Header.Set(middleware.HeaderTraceID, tC.incoming)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.NotEmpty(t, seen)
			assert.Equal(t, seen, w.Header().Get(middleware.HeaderTraceID))
			if tC.incoming != "" {
				assert.Equal(t, tC.incoming, seen)
			} else {
				assert.Len(t, seen, 27)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?access_token=pk.secret", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
