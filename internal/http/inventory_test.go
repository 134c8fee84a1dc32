package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

func stockOf(t *testing.T, rows []domain.InventoryRow, productID string) int {
	t.Helper()
	for _, r := range rows {
		if r.ProductID == productID {
			return r.Stock
		}
	}
	t.Fatalf("no inventory row for %s", productID)
	return 0
}

func TestInventoryListAndUpdate(t *testing.T) {
	app, _ := newTestApp(t)
	admin := login(t, app, repos.DemoAdminEmail)

	_, raw := do(t, app, "GET", "/api/admin/inventory", nil, admin)
	rows := decode[[]domain.InventoryRow](t, raw)
	require.Len(t, rows, 3)
	assert.Equal(t, "Matte White 5L", rows[0].Product.Name, "ordered by product name")
	assert.Equal(t, "Interior Paint", rows[0].Product.Category.Name)

	resp, raw := do(t, app, "PUT", "/api/admin/inventory", map[string]any{"productId": "prod-roller", "stock": 7}, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 7, decode[domain.Inventory](t, raw).Stock)

	_, raw = do(t, app, "GET", "/api/admin/inventory", nil, admin)
	assert.Equal(t, 7, stockOf(t, decode[[]domain.InventoryRow](t, raw), "prod-roller"))
}

func TestNegativeStockLeavesPriorValue(t *testing.T) {
	app, _ := newTestApp(t)
	admin := login(t, app, repos.DemoAdminEmail)

	resp, raw := do(t, app, "PUT", "/api/admin/inventory", map[string]any{"productId": "prod-satin-blue", "stock": -4}, admin)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "stock must not be negative", decode[errBody](t, raw).Error)

	resp, _ = do(t, app, "PUT", "/api/admin/inventory", map[string]any{"productId": "prod-satin-blue"}, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "stock is required")

	_, raw = do(t, app, "GET", "/api/admin/inventory", nil, admin)
	assert.Equal(t, 20, stockOf(t, decode[[]domain.InventoryRow](t, raw), "prod-satin-blue"))
}

func TestInventoryUpdateNeedsLiveProduct(t *testing.T) {
	app, _ := newTestApp(t)
	admin := login(t, app, repos.DemoAdminEmail)

	resp, _ := do(t, app, "PUT", "/api/admin/inventory", map[string]any{"productId": "ghost", "stock": 1}, admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	do(t, app, "DELETE", "/api/products/prod-roller", nil, admin)
	resp, _ = do(t, app, "PUT", "/api/admin/inventory", map[string]any{"productId": "prod-roller", "stock": 1}, admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
