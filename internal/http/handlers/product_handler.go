package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

type createProductReq struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Colors      []string `json:"colors" validate:"omitempty,max=20,dive,required,max=40"`
	CategoryID  string   `json:"categoryId" validate:"required,entityid"`
}

type updateProductReq struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Colors      []string `json:"colors" validate:"omitempty,max=20,dive,required,max=40"`
	CategoryID  *string  `json:"categoryId" validate:"omitempty,entityid"`
}

func productID(c *fiber.Ctx) (string, error) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return "", domain.NotFound("product not found")
	}
	return id, nil
}

// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.Catalog.ListProducts(c.UserContext())
	if err != nil {
		return fail(c, "product.list.fail", err)
	}
	return c.JSON(ps)
}

// GET /api/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return fail(c, "product.detail", err)
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return fail(c, "product.detail.fail", err)
	}
	return c.JSON(p)
}

// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req createProductReq
	if err := bind(c, &req); err != nil {
		return fail(c, "admin.product.create", err)
	}
	name, valid := validate.Name(req.Name, 120)
	if !valid {
		return fail(c, "admin.product.create", domain.Validation("name is required"))
	}
	p, err := h.Catalog.CreateProduct(c.UserContext(), services.ProductInput{
		Name:        name,
		Description: req.Description,
		Price:       *req.Price,
		Colors:      req.Colors,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return fail(c, "admin.product.create.fail", err)
	}
	log.Audit(c, "admin.product.create", map[string]any{"product": p.ID, "name": p.Name, "price": p.Price})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return fail(c, "admin.product.update", err)
	}
	var req updateProductReq
	if err := bind(c, &req); err != nil {
		return fail(c, "admin.product.update", err)
	}
	if req.Name != nil {
		name, valid := validate.Name(*req.Name, 120)
		if !valid {
			return fail(c, "admin.product.update", domain.Validation("name must not be blank"))
		}
		req.Name = &name
	}
	p, err := h.Catalog.UpdateProduct(c.UserContext(), id, services.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Colors:      req.Colors,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return fail(c, "admin.product.update.fail", err)
	}
	log.Audit(c, "admin.product.update", map[string]any{"product": p.ID})
	return c.JSON(p)
}

// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return fail(c, "admin.product.delete", err)
	}
	p, err := h.Catalog.DeleteProduct(c.UserContext(), id)
	if err != nil {
		return fail(c, "admin.product.delete.fail", err)
	}
	log.Audit(c, "admin.product.delete", map[string]any{"product": id})
	return c.JSON(p)
}
