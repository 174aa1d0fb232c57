package whttp

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const redacted = "*****"

// secretParams are query parameters that must never reach the logs.
var secretParams = []string{"access_token", "access_key", "appid"}

type LoggingRoundTripper struct {
	Proxied http.RoundTripper
}

func (lrt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	t0 := time.Now()

	res, err := lrt.Proxied.RoundTrip(req)
	if err != nil {
		slog.ErrorContext(ctx, "outbound request failed",
			"method", req.Method,
			"url", RedactURL(req.URL),
			"error", err.Error())
		return res, err
	}

	b := bytes.NewBuffer(make([]byte, 0))
	reader := io.TeeReader(res.Body, b)

	body, _ := io.ReadAll(reader)
	_ = res.Body.Close()

	slog.InfoContext(ctx, "outbound request",
		slog.Group("http",
			slog.Group("request",
				"duration_ms", time.Since(t0).Milliseconds(),
				"method", req.Method,
				"url", RedactURL(req.URL),
			),
			slog.Group("response",
				"status", res.StatusCode,
				"body", string(body),
			),
		),
	)

	res.Body = io.NopCloser(b)

	return res, nil
}

// RedactURL renders u with every secret query parameter masked.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	q := u.Query()
	var found bool
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, redacted)
			found = true
		}
	}

	if !found {
		return u.String()
	}

	c := *u
	c.RawQuery = q.Encode()
	return c.String()
}

func NewLoggingClient() *http.Client {
	return &http.Client{
		Transport: LoggingRoundTripper{Proxied: http.DefaultTransport},
		Timeout:   10 * time.Second,
	}
}
