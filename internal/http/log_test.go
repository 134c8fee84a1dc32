package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	applog "storefront/internal/log"
	"storefront/internal/repos"
)

// captureLogs routes the process logger into an in-memory observer for the test.
func captureLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	applog.Set(zap.New(core))
	t.Cleanup(func() { applog.Set(nil) })
	return logs
}

func fieldsOf(t *testing.T, e observer.LoggedEntry) map[string]any {
	t.Helper()
	f, ok := e.ContextMap()["fields"].(map[string]any)
	require.True(t, ok, "entry %q has no fields map", e.Message)
	return f
}

func TestAdminInventoryLogs(t *testing.T) {
	app, _ := newTestApp(t)
	admin := login(t, app, repos.DemoAdminEmail)
	logs := captureLogs(t)

	resp, _ := do(t, app, "PUT", "/api/admin/inventory", map[string]any{"productId": "prod-roller", "stock": 9}, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entries := logs.FilterMessage("admin.inventory.save").All()
	require.Len(t, entries, 1)
	f := fieldsOf(t, entries[0])
	assert.Equal(t, "prod-roller", f["product"])
	assert.EqualValues(t, 9, f["stock"])
	assert.Equal(t, "audit", f["kind"])
	assert.Equal(t, "u-admin", entries[0].ContextMap()["user_id"])
	assert.NotEmpty(t, entries[0].ContextMap()["req_id"])
}

func TestAuthLogs(t *testing.T) {
	app, _ := newTestApp(t)
	logs := captureLogs(t)

	do(t, app, "POST", "/api/auth/login", map[string]string{"email": repos.DemoUserEmail, "password": "Wrong123!"})
	fails := logs.FilterMessage("auth.login.fail").All()
	require.Len(t, fails, 1)
	assert.Equal(t, zapcore.WarnLevel, fails[0].Level)
	assert.Equal(t, repos.DemoUserEmail, fieldsOf(t, fails[0])["email"])

	login(t, app, repos.DemoUserEmail)
	ok := logs.FilterMessage("auth.login.success").All()
	require.Len(t, ok, 1)
	assert.Equal(t, "audit", fieldsOf(t, ok[0])["kind"])

	for _, e := range logs.All() {
		for k, v := range e.ContextMap() {
			assert.NotContains(t, k, "password")
			if s, isStr := v.(string); isStr {
				assert.NotContains(t, s, repos.DemoPassword)
			}
		}
	}
}

func TestAccessDeniedIsLogged(t *testing.T) {
	app, _ := newTestApp(t)
	sid := login(t, app, repos.DemoUserEmail)
	logs := captureLogs(t)

	resp, _ := do(t, app, "GET", "/api/admin/stats", nil, sid)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	denied := logs.FilterMessage("access.denied").All()
	require.Len(t, denied, 1)
	assert.Equal(t, "user", fieldsOf(t, denied[0])["role"])
}

func TestAccessLogEmitted(t *testing.T) {
	app, _ := newTestApp(t)
	logs := captureLogs(t)

	do(t, app, "GET", "/api/products", nil)
	access := logs.FilterMessage("http.access").All()
	require.NotEmpty(t, access)
	assert.Contains(t, access[0].ContextMap()["line"], "/api/products")
}

func TestOrderPlacementAudited(t *testing.T) {
	app, _ := newTestApp(t)
	sid := login(t, app, repos.DemoUserEmail)
	do(t, app, "POST", "/api/cart", map[string]any{"productId": "prod-satin-blue"}, sid)
	logs := captureLogs(t)

	resp, _ := do(t, app, "POST", "/api/orders", nil, sid)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	placed := logs.FilterMessage("order.place").All()
	require.Len(t, placed, 1)
	assert.EqualValues(t, 1, fieldsOf(t, placed[0])["lines"])
}
