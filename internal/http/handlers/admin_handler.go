package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type AdminHandler struct {
	Orders *services.OrderService
	Stats  *services.StatsService
	Now    func() time.Time
}

type updateOrderReq struct {
	Status      *domain.OrderStatus `json:"status" validate:"omitempty,orderstatus"`
	ShippingFee *float64            `json:"shippingFee" validate:"omitempty,gte=0"`
}

func orderID(c *fiber.Ctx) (string, error) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return "", domain.NotFound("order not found")
	}
	return id, nil
}

// GET /api/admin/orders
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.ListAll(c.UserContext())
	if err != nil {
		return fail(c, "admin.orders.list.fail", err)
	}
	return c.JSON(orders)
}

// PUT /api/admin/orders/:id
func (h *AdminHandler) UpdateOrder(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return fail(c, "admin.orders.update", err)
	}
	var req updateOrderReq
	if err := bind(c, &req); err != nil {
		return fail(c, "admin.orders.update", err)
	}
	o, err := h.Orders.Update(c.UserContext(), id, repos.OrderPatch{
		Status:      req.Status,
		ShippingFee: req.ShippingFee,
		UpdatedBy:   identity(c).UserID,
	})
	if err != nil {
		return fail(c, "admin.orders.update.fail", err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order": id, "status": string(o.Status), "shipping_fee": o.ShippingFee})
	return c.JSON(o)
}

// DELETE /api/admin/orders/:id
func (h *AdminHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return fail(c, "admin.orders.delete", err)
	}
	if err := h.Orders.Delete(c.UserContext(), id, identity(c).UserID); err != nil {
		return fail(c, "admin.orders.delete.fail", err)
	}
	applog.Audit(c, "admin.orders.delete", map[string]any{"order": id})
	return ok(c)
}

// GET /api/admin/stats?range=7d|30d|all&month=YYYY-MM
func (h *AdminHandler) ShowStats(c *fiber.Ctx) error {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	w, err := services.ParseWindow(c.Query("range"), c.Query("month"), now())
	if err != nil {
		return fail(c, "admin.stats", err)
	}
	st, err := h.Stats.Compute(c.UserContext(), w)
	if err != nil {
		return fail(c, "admin.stats.fail", err)
	}
	return c.JSON(st)
}
