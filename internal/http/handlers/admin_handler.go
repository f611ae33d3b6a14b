package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "posledger/internal/log"
)

type AdminHandler struct {
	Save func() error
}

// GET /healthz
func (h *AdminHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true, "session": applog.Session()})
}

// POST /api/v1/save
func (h *AdminHandler) SaveNow(c *fiber.Ctx) error {
	if h.Save == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "persistence is off"})
	}
	if err := h.Save(); err != nil {
		return err
	}
	applog.Audit(c, "api.save", nil)
	return c.JSON(fiber.Map{"ok": true})
}
