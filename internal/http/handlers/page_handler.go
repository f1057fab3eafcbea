package handlers

import (
	"smartx/internal/services"
	"smartx/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PageHandler struct {
	Checkout *services.CheckoutService
}

// GET /p/:slug?offer=
func (h *PageHandler) Product(c *fiber.Ctx) error {
	sl, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return notFoundPage(c, "Produto não encontrado")
	}
	page, err := h.Checkout.Page(sl, c.Query("offer"))
	if err != nil {
		return notFoundPage(c, "Produto não encontrado")
	}
	return render(c, "product", fiber.Map{
		"P":        page.Product,
		"Offer":    page.Offer,
		"Checkout": page.Checkout,
		"Settings": page.Settings,
	})
}
