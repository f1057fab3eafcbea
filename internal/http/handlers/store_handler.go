package handlers

import (
	applog "smartx/internal/log"
	"smartx/internal/store"

	"github.com/gofiber/fiber/v2"
)

// StoreHandler exposes the store internals for operators.
type StoreHandler struct {
	Cache *store.Cache
}

// GET /api/store/status
func (h *StoreHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.Cache.Status())
}

// POST /api/store/sync
func (h *StoreHandler) Sync(c *fiber.Ctx) error {
	counts := h.Cache.Sync()
	applog.Audit(c, "store.sync", map[string]any{"products": counts.Products, "users": counts.Users})
	return c.JSON(fiber.Map{"counts": counts})
}

// POST /api/store/flush
func (h *StoreHandler) Flush(c *fiber.Ctx) error {
	res := h.Cache.Flush()
	applog.Audit(c, "store.flush", map[string]any{"persisted": res.Persisted})
	return c.JSON(res)
}
