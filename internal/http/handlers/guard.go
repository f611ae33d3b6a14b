package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"posledger/internal/domain"
	applog "posledger/internal/log"
)

// Serialize runs one store request at a time.
func (d *Deps) Serialize() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d.mu.Lock()
		defer d.mu.Unlock()
		return c.Next()
	}
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidArgument):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// fail writes a recoverable failure as JSON. Anything else goes to the error handler.
func fail(c *fiber.Ctx, action string, err error) error {
	if !domain.IsUserError(err) {
		return err
	}
	c.Status(statusFor(err))
	body := fiber.Map{"error": err.Error()}
	var se *domain.StockError
	if errors.As(err, &se) {
		body["code"] = se.Code
		body["requested"] = se.Requested
		body["available"] = se.Available
	}
	applog.Security(c, action, map[string]any{"error": err.Error()})
	return c.JSON(body)
}

func badRequest(c *fiber.Ctx, field, msg string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// ErrorHandler logs unexpected failures and hides their details from clients.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong. Please try again."})
}
