package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

func TestStatsEmptyWindow(t *testing.T) {
	app, _ := newTestApp(t)
	admin := login(t, app, repos.DemoAdminEmail)

	resp, raw := do(t, app, "GET", "/api/admin/stats?month=1999-01", nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.JSONEq(t, `{
		"productCount": 3, "categoryCount": 2, "orderCount": 0, "totalRevenue": 0,
		"pendingOrders": 0, "dailyRevenue": [], "rangeLabel": "January 1999"
	}`, string(raw))
}

func TestStatsCountsPlacedOrders(t *testing.T) {
	app, _ := newTestApp(t)
	alice := login(t, app, repos.DemoUserEmail)
	admin := login(t, app, repos.DemoAdminEmail)

	do(t, app, "POST", "/api/cart", map[string]any{"productId": "prod-satin-blue", "quantity": 2}, alice)
	do(t, app, "POST", "/api/orders", nil, alice)
	do(t, app, "POST", "/api/cart", map[string]any{"productId": "prod-matte-white", "quantity": 1}, alice)
	_, raw := do(t, app, "POST", "/api/orders", nil, alice)
	second := decode[domain.Order](t, raw)
	do(t, app, "PUT", "/api/admin/orders/"+second.ID, map[string]any{"status": "confirmed"}, admin)

	for _, q := range []string{"", "?range=all", "?range=7d", "?range=30d", "?month=" + time.Now().UTC().Format("2006-01")} {
		resp, raw := do(t, app, "GET", "/api/admin/stats"+q, nil, admin)
		require.Equal(t, http.StatusOK, resp.StatusCode, q)
		st := decode[domain.Stats](t, raw)
		assert.Equal(t, 2, st.OrderCount, q)
		assert.Equal(t, 1, st.PendingOrders, q)
		assert.InDelta(t, 39.0+49.9, st.TotalRevenue, 1e-9, q)
		require.Len(t, st.DailyRevenue, 1, q)
		assert.Equal(t, time.Now().UTC().Format("2006-01-02"), st.DailyRevenue[0].Date, q)
	}

	// Soft-deleted orders drop out.
	do(t, app, "DELETE", "/api/admin/orders/"+second.ID, nil, admin)
	_, raw = do(t, app, "GET", "/api/admin/stats", nil, admin)
	assert.Equal(t, 1, decode[domain.Stats](t, raw).OrderCount)
}

func TestStatsRejectsBadSelectors(t *testing.T) {
	app, _ := newTestApp(t)
	admin := login(t, app, repos.DemoAdminEmail)

	for _, q := range []string{"?range=1y", "?month=2024-13", "?month=May"} {
		resp, _ := do(t, app, "GET", "/api/admin/stats"+q, nil, admin)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
	// month takes precedence over an invalid range.
	resp, _ := do(t, app, "GET", "/api/admin/stats?range=1y&month=2024-05", nil, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
