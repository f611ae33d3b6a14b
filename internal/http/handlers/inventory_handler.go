package handlers

import (
	"github.com/gofiber/fiber/v2"

	"posledger/internal/store"
	"posledger/internal/validate"
)

type InventoryHandler struct {
	Store *store.Store
}

// GET /api/v1/availability?code=N
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	code, ok := validate.Code(c.Query("code"))
	if !ok {
		return badRequest(c, "code", "enter a valid product code")
	}
	avail, err := h.Store.Availability(code)
	if err != nil {
		return fail(c, "api.availability.fail", err)
	}
	return c.JSON(avail)
}
