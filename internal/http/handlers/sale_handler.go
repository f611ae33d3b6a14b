package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "posledger/internal/log"
	"posledger/internal/money"
	"posledger/internal/services"
	"posledger/internal/store"
)

type SaleHandler struct {
	Store *store.Store
}

type saleRequest struct {
	Items    []services.LineRequest `json:"items"`
	Discount *money.Money           `json:"discount"`
}

// POST /api/v1/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var req saleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid sale body")
	}
	pct := money.Zero()
	if req.Discount != nil {
		pct = *req.Discount
	}
	sale, err := h.Store.ExecuteSale(req.Items, pct)
	if err != nil {
		return fail(c, "api.sale.place.fail", err)
	}
	applog.Audit(c, "api.sale.place", map[string]any{"sale_id": sale.ID, "total": sale.Total.Text()})
	return c.Status(fiber.StatusCreated).JSON(viewSale(sale))
}

// GET /api/v1/sales?today=true
func (h *SaleHandler) List(c *fiber.Ctx) error {
	sales, revenue := h.Store.Sales(c.QueryBool("today", false))
	out := make([]saleView, len(sales))
	for i, s := range sales {
		out[i] = viewSale(s)
	}
	return c.JSON(fiber.Map{"sales": out, "revenue": revenue})
}
