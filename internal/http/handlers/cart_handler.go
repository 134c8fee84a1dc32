package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/metrics"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type addItemReq struct {
	ProductID string `json:"productId" validate:"required,entityid"`
	Quantity  *int   `json:"quantity" validate:"omitempty,gt=0"`
}

type setQtyReq struct {
	ProductID string `json:"productId" validate:"required,entityid"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// GET /api/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	view, err := h.Cart.Get(c.UserContext(), identity(c).UserID)
	if err != nil {
		return fail(c, "cart.view.fail", err)
	}
	return c.JSON(view)
}

// POST /api/cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addItemReq
	if err := bind(c, &req); err != nil {
		return fail(c, "cart.add", err)
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	item, created, err := h.Cart.Add(c.UserContext(), identity(c).UserID, req.ProductID, qty)
	if err != nil {
		metrics.RecordCartAdd("rejected")
		return fail(c, "cart.add.fail", err)
	}
	applog.Info(c, "cart.add", map[string]any{"product": req.ProductID, "qty": qty, "line_qty": item.Quantity})
	if created {
		metrics.RecordCartAdd("created")
		return c.Status(fiber.StatusCreated).JSON(item)
	}
	metrics.RecordCartAdd("merged")
	return c.JSON(item)
}

// PATCH /api/cart
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var req setQtyReq
	if err := bind(c, &req); err != nil {
		return fail(c, "cart.update", err)
	}
	if err := h.Cart.UpdateQuantity(c.UserContext(), identity(c).UserID, req.ProductID, req.Quantity); err != nil {
		return fail(c, "cart.update.fail", err)
	}
	return ok(c)
}

// DELETE /api/cart?productId=
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	pid, valid := validate.ID(c.Query("productId"))
	if !valid {
		return fail(c, "cart.remove", domain.Validation("productId is required"))
	}
	if err := h.Cart.Remove(c.UserContext(), identity(c).UserID, pid); err != nil {
		return fail(c, "cart.remove.fail", err)
	}
	return ok(c)
}
