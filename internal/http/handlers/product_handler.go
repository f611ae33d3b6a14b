package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "posledger/internal/log"
	"posledger/internal/money"
	"posledger/internal/store"
	"posledger/internal/validate"
)

type ProductHandler struct {
	Store *store.Store
}

type addProductRequest struct {
	Name  string       `json:"name"`
	Price *money.Money `json:"price"`
	Stock int          `json:"stock"`
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

// GET /api/v1/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products := h.Store.Products()
	out := make([]productView, len(products))
	for i, p := range products {
		out[i] = viewProduct(p)
	}
	return c.JSON(out)
}

// POST /api/v1/products
func (h *ProductHandler) Add(c *fiber.Ctx) error {
	var req addProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid product body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "name", "name must be 1-60 characters")
	}
	if req.Price == nil {
		return badRequest(c, "price", "price is required")
	}
	p, err := h.Store.AddProduct(name, *req.Price, req.Stock)
	if err != nil {
		return fail(c, "api.product.add.fail", err)
	}
	applog.Audit(c, "api.product.add", map[string]any{"code": p.Code})
	return c.Status(fiber.StatusCreated).JSON(viewProduct(p))
}

// POST /api/v1/products/:code/restock
func (h *ProductHandler) Restock(c *fiber.Ctx) error {
	code, ok := validate.Code(c.Params("code"))
	if !ok {
		return badRequest(c, "code", "invalid product code")
	}
	var req restockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid restock body")
	}
	p, err := h.Store.Restock(code, req.Quantity)
	if err != nil {
		return fail(c, "api.product.restock.fail", err)
	}
	applog.Audit(c, "api.product.restock", map[string]any{"code": code, "quantity": req.Quantity})
	return c.JSON(viewProduct(p))
}
