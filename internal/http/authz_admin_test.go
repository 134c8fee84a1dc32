package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/repos"
)

var adminRoutes = []struct {
	method, path string
	body         any
}{
	{"GET", "/api/admin/inventory", nil},
	{"PUT", "/api/admin/inventory", map[string]any{"productId": "prod-roller", "stock": 3}},
	{"GET", "/api/admin/orders", nil},
	{"PUT", "/api/admin/orders/some-order", map[string]any{"status": "shipped"}},
	{"DELETE", "/api/admin/orders/some-order", nil},
	{"GET", "/api/admin/stats", nil},
	{"GET", "/api/admin/unknown", nil},
	{"POST", "/api/products", map[string]any{"name": "X", "price": 1, "categoryId": "cat-tools"}},
	{"PUT", "/api/products/prod-roller", map[string]any{"price": 1}},
	{"DELETE", "/api/products/prod-roller", nil},
	{"POST", "/api/categories", map[string]any{"name": "Brushes"}},
}

func TestAdminRoutesRejectAnonymous(t *testing.T) {
	app, _ := newTestApp(t)
	for _, r := range adminRoutes {
		resp, _ := do(t, app, r.method, r.path, r.body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", r.method, r.path)
	}
}

func TestAdminRoutesForbidUsers(t *testing.T) {
	app, _ := newTestApp(t)
	sid := login(t, app, repos.DemoUserEmail)
	for _, r := range adminRoutes {
		resp, raw := do(t, app, r.method, r.path, r.body, sid)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s", r.method, r.path)
		assert.Equal(t, "forbidden: admin only", decode[errBody](t, raw).Error)
	}
}

func TestAdminRoutesAllowAdmins(t *testing.T) {
	app, _ := newTestApp(t)
	sid := login(t, app, repos.DemoAdminEmail)
	for _, path := range []string{"/api/admin/inventory", "/api/admin/orders", "/api/admin/stats"} {
		resp, raw := do(t, app, "GET", path, nil, sid)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "%s: %s", path, raw)
	}
}

func TestUserRoutesRequireSession(t *testing.T) {
	app, _ := newTestApp(t)
	for _, r := range []struct{ method, path string }{
		{"GET", "/api/cart"},
		{"POST", "/api/cart"},
		{"PATCH", "/api/cart"},
		{"DELETE", "/api/cart?productId=prod-roller"},
		{"POST", "/api/orders"},
		{"GET", "/api/orders"},
	} {
		resp, _ := do(t, app, r.method, r.path, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", r.method, r.path)
	}
}
