package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/metrics"
	"storefront/internal/services"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// POST /api/orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	o, err := h.Orders.Place(c.UserContext(), identity(c).UserID)
	if err != nil {
		return fail(c, "order.place.fail", err)
	}
	metrics.RecordOrder(o.Total)
	applog.Audit(c, "order.place", map[string]any{"order": o.ID, "total": o.Total, "lines": len(o.Items)})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GET /api/orders
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Orders.ListMine(c.UserContext(), identity(c).UserID)
	if err != nil {
		return fail(c, "order.history.fail", err)
	}
	return c.JSON(orders)
}
