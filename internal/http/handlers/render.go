package handlers

import (
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/blake2b"

	applog "smartx/internal/log"
	"smartx/internal/repos"
	"smartx/internal/services"
	"smartx/internal/store"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if rid, ok := c.Locals("requestid").(string); ok {
		data["RequestID"] = rid
	}
	return c.Render(tmpl, data)
}

func notFoundPage(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg})
}

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// ErrorHandler is the app-wide fallback: the error is logged with the
// request, the client only gets a generic message. Status codes carried by a
// *fiber.Error other than 5xx are kept.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		applog.Warn(c, "server.client_error", err, nil)
		return jsonError(c, fe.Code, fe.Message)
	}
	applog.Error(c, "server.error", err, nil)
	return jsonError(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
}

// written answers a write with the stored record and its durability.
func written(c *fiber.Ctx, status int, data any, res store.Result) error {
	return c.Status(status).JSON(fiber.Map{
		"data":      data,
		"accepted":  res.Accepted,
		"persisted": res.Persisted,
	})
}

// fail maps service and repo errors onto status codes.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return jsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, repos.ErrInvalidProduct),
		errors.Is(err, repos.ErrMissingProductID):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return err
}

// withETag sends v as JSON tagged with a BLAKE2b digest of the body and
// answers 304 when the client already has it.
func withETag(c *fiber.Ctx, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	sum := blake2b.Sum256(b)
	tag := `"` + hex.EncodeToString(sum[:16]) + `"`
	c.Set(fiber.HeaderETag, tag)
	if c.Get(fiber.HeaderIfNoneMatch) == tag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(b)
}
