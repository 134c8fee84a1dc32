package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

func TestGlobalRateLimit(t *testing.T) {
	app, _ := newTestApp(t, func(c *config.Config) { c.RateLimitMax = 3 })

	for i := 0; i < 3; i++ {
		resp, _ := do(t, app, "GET", "/api/products", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i)
	}
	resp, raw := do(t, app, "GET", "/api/products", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, string(raw), "rate limit exceeded")

	// Probes are never throttled.
	resp, _ = do(t, app, "GET", "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBodySizeLimit(t *testing.T) {
	app, _ := newTestApp(t)

	big := bytes.Repeat([]byte("a"), (1<<20)+1024)
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	// fasthttp may reject the body before fiber runs; app.Test then reports an error.
	if err != nil {
		assert.Contains(t, err.Error(), "body size exceeds")
		return
	}
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}
