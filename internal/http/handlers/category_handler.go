package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/log"
	"storefront/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

type createCategoryReq struct {
	Name string `json:"name" validate:"required,max=80"`
}

// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return fail(c, "category.list.fail", err)
	}
	return c.JSON(cats)
}

// POST /api/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req createCategoryReq
	if err := bind(c, &req); err != nil {
		return fail(c, "admin.category.create", err)
	}
	cat, err := h.Catalog.CreateCategory(c.UserContext(), req.Name)
	if err != nil {
		return fail(c, "admin.category.create.fail", err)
	}
	log.Audit(c, "admin.category.create", map[string]any{"category": cat.ID, "name": cat.Name})
	return c.Status(fiber.StatusCreated).JSON(cat)
}
