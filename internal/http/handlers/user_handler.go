package handlers

import (
	"smartx/internal/repos"
	"smartx/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Users *repos.UserRepo
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.Users.FindAll())
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	u := h.Users.FindByID(c.Params("id"))
	if u == nil {
		return jsonError(c, fiber.StatusNotFound, "user not found")
	}
	return c.JSON(u)
}

// GET /api/users/by-email?email=
func (h *UserHandler) ByEmail(c *fiber.Ctx) error {
	email, ok := validate.Email(c.Query("email"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "enter a valid email")
	}
	u := h.Users.FindByEmail(email)
	if u == nil {
		return jsonError(c, fiber.StatusNotFound, "user not found")
	}
	return c.JSON(u)
}
