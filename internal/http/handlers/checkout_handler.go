package handlers

import (
	applog "smartx/internal/log"
	"smartx/internal/repos"
	"smartx/internal/services"
	"smartx/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

// GET /api/checkouts/:productId
func (h *CheckoutHandler) GetCheckout(c *fiber.Ctx) error {
	cfg := h.Checkout.Checkout(c.Params("productId"))
	if cfg == nil {
		return jsonError(c, fiber.StatusNotFound, "checkout not found")
	}
	return c.JSON(cfg)
}

// PUT /api/checkouts/:productId
func (h *CheckoutHandler) SaveCheckout(c *fiber.Ctx) error {
	// the id is stored, so it must not alias the request buffer
	pid, ok := validate.ID(utils.CopyString(c.Params("productId")))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, services.ErrProductNotFound.Error())
	}
	var in repos.CheckoutInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "malformed body")
	}
	in.ProductID = pid
	cfg, res, err := h.Checkout.SaveCheckout(in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "checkouts.save", map[string]any{"product_id": pid, "elements": len(cfg.Elements), "persisted": res.Persisted})
	return written(c, fiber.StatusOK, cfg, res)
}

// GET /api/product-settings/:productId
func (h *CheckoutHandler) GetSettings(c *fiber.Ctx) error {
	ps := h.Checkout.ProductSettings(c.Params("productId"))
	if ps == nil {
		return jsonError(c, fiber.StatusNotFound, "settings not found")
	}
	return c.JSON(ps)
}

// PUT /api/product-settings/:productId
func (h *CheckoutHandler) SaveSettings(c *fiber.Ctx) error {
	pid, ok := validate.ID(utils.CopyString(c.Params("productId")))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, services.ErrProductNotFound.Error())
	}
	var in repos.SettingsInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "malformed body")
	}
	in.ProductID = pid
	ps, res, err := h.Checkout.SaveSettings(in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "settings.save", map[string]any{"product_id": pid, "persisted": res.Persisted})
	return written(c, fiber.StatusOK, ps, res)
}
