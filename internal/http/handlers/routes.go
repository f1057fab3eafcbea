package handlers

import "github.com/gofiber/fiber/v2"

// Register mounts the JSON API and the public pages.
func (d *Deps) Register(app fiber.Router) {
	api := app.Group("/api")

	api.Get("/products", d.ProductHandler.List)
	api.Post("/products", d.ProductHandler.Create)
	api.Get("/products/slug/:slug", d.ProductHandler.BySlug)
	api.Get("/products/:id", d.ProductHandler.Get)
	api.Put("/products/:id", d.ProductHandler.Update)
	api.Delete("/products/:id", d.ProductHandler.Delete)

	api.Get("/checkouts/:productId", d.CheckoutHandler.GetCheckout)
	api.Put("/checkouts/:productId", d.CheckoutHandler.SaveCheckout)
	api.Get("/product-settings/:productId", d.CheckoutHandler.GetSettings)
	api.Put("/product-settings/:productId", d.CheckoutHandler.SaveSettings)

	api.Get("/users", d.UserHandler.List)
	api.Get("/users/by-email", d.UserHandler.ByEmail)
	api.Get("/users/:id", d.UserHandler.Get)

	api.Get("/store/status", d.StoreHandler.Status)
	api.Post("/store/sync", d.StoreHandler.Sync)
	api.Post("/store/flush", d.StoreHandler.Flush)

	app.Get("/p/:slug", d.PageHandler.Product)
}
