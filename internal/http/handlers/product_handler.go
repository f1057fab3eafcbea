package handlers

import (
	"smartx/internal/domain"
	applog "smartx/internal/log"
	"smartx/internal/repos"
	"smartx/internal/services"
	"smartx/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/products?status=&userId=&category=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f := services.ProductFilter{
		Status:   domain.ProductStatus(c.Query("status")),
		UserID:   c.Query("userId"),
		Category: c.Query("category"),
	}
	return withETag(c, h.Catalog.List(f))
}

// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in repos.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "malformed body")
	}
	p, res, err := h.Catalog.Create(in)
	if err != nil {
		applog.Warn(c, "products.create.invalid", err, nil)
		return fail(c, err)
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID, "slug": p.Slug, "persisted": res.Persisted})
	return written(c, fiber.StatusCreated, p, res)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, services.ErrProductNotFound.Error())
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

// GET /api/products/slug/:slug
func (h *ProductHandler) BySlug(c *fiber.Ctx) error {
	sl, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, services.ErrProductNotFound.Error())
	}
	p, err := h.Catalog.GetBySlug(sl)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

// PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, services.ErrProductNotFound.Error())
	}
	var patch repos.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "malformed body")
	}
	p, res, err := h.Catalog.Update(id, patch)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": p.ID, "persisted": res.Persisted})
	return written(c, fiber.StatusOK, p, res)
}

// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, services.ErrProductNotFound.Error())
	}
	res, err := h.Catalog.Delete(id)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id, "persisted": res.Persisted})
	return written(c, fiber.StatusOK, fiber.Map{"id": id}, res)
}
