package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
	"storefront/internal/http/handlers"
	"storefront/internal/repos"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:        "test",
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
	}
}

// newTestApp returns the full application over a seeded in-memory database.
func newTestApp(t *testing.T, tweak ...func(*config.Config)) (*fiber.App, *sqlx.DB) {
	t.Helper()
	cfg := testConfig()
	for _, f := range tweak {
		f(&cfg)
	}
	db, err := repos.OpenDB(repos.DriverSQLite, ":memory:")
	require.NoError(t, err, "open db")
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repos.Seed(context.Background(), db), "seed")
	return handlers.NewApp(cfg, db), db
}

func do(t *testing.T, app *fiber.App, method, path string, body any, cookies ...*http.Cookie) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), "body=%s", raw)
	return v
}

func cookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func login(t *testing.T, app *fiber.App, email string) *http.Cookie {
	t.Helper()
	resp, raw := do(t, app, "POST", "/api/auth/login", map[string]string{"email": email, "password": repos.DemoPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode, "login %s: %s", email, raw)
	c := cookie(resp, "sid")
	require.NotNil(t, c, "sid cookie missing")
	return c
}

type errBody struct {
	Error string `json:"error"`
}

func newJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func stringsReader(s string) io.Reader { return bytes.NewBufferString(s) }
