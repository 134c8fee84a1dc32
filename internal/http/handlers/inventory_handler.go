package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

type setStockReq struct {
	ProductID string `json:"productId" validate:"required,entityid"`
	Stock     *int   `json:"stock" validate:"required"`
}

// GET /api/admin/inventory
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	rows, err := h.Inv.List(c.UserContext())
	if err != nil {
		return fail(c, "admin.inventory.list.fail", err)
	}
	return c.JSON(rows)
}

// PUT /api/admin/inventory
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var req setStockReq
	if err := bind(c, &req); err != nil {
		return fail(c, "admin.inventory.save", err)
	}
	inv, err := h.Inv.SetStock(c.UserContext(), req.ProductID, *req.Stock)
	if err != nil {
		return fail(c, "admin.inventory.save.fail", err)
	}
	applog.Audit(c, "admin.inventory.save", map[string]any{"product": req.ProductID, "stock": inv.Stock})
	return c.JSON(inv)
}
