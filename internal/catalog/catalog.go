// Package catalog owns the product set, allocates product codes and adjusts stock.
package catalog

import (
	"fmt"
	"math"

	"posledger/internal/domain"
	"posledger/internal/money"
)

type Catalog struct {
	products []domain.Product
	index    map[int]int // code -> position in products
	nextCode int
}

func New() *Catalog {
	return &Catalog{index: make(map[int]int), nextCode: 1}
}

// Restore rebuilds a catalog from persisted products, keeping their order.
// The next code is max(code)+1.
func Restore(products []domain.Product) (*Catalog, error) {
	c := New()
	for _, p := range products {
		if p.Code <= 0 {
			return nil, &domain.ValidationError{Field: "code", Message: fmt.Sprintf("must be positive, got %d", p.Code)}
		}
		if _, dup := c.index[p.Code]; dup {
			return nil, &domain.ValidationError{Field: "code", Message: fmt.Sprintf("duplicate product code %d", p.Code)}
		}
		if p.Stock < 0 || p.Price.IsNegative() {
			return nil, &domain.ValidationError{Field: "product", Message: fmt.Sprintf("product %d has negative price or stock", p.Code)}
		}
		c.index[p.Code] = len(c.products)
		c.products = append(c.products, p)
		if p.Code >= c.nextCode {
			c.nextCode = p.Code + 1
		}
	}
	return c, nil
}

// Add appends a product under the next sequential code.
func (c *Catalog) Add(name string, price money.Money, stock int) (domain.Product, error) {
	if price.IsNegative() {
		return domain.Product{}, &domain.ValidationError{Field: "price", Message: "cannot be negative"}
	}
	if stock < 0 {
		return domain.Product{}, &domain.ValidationError{Field: "stock", Message: fmt.Sprintf("cannot be negative, got %d", stock)}
	}
	p := domain.Product{Code: c.nextCode, Name: name, Price: money.New(price.Decimal()), Stock: stock}
	c.nextCode++
	c.index[p.Code] = len(c.products)
	c.products = append(c.products, p)
	return p, nil
}

func (c *Catalog) Find(code int) (domain.Product, bool) {
	i, ok := c.index[code]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Restock adds quantity units to a product's stock.
func (c *Catalog) Restock(code, quantity int) (domain.Product, error) {
	i, ok := c.index[code]
	if !ok {
		return domain.Product{}, &domain.NotFoundError{Code: code}
	}
	if quantity <= 0 {
		return domain.Product{}, &domain.ValidationError{Field: "quantity", Message: fmt.Sprintf("must be positive, got %d", quantity)}
	}
	if stock := c.products[i].Stock; quantity > math.MaxInt-stock {
		return domain.Product{}, &domain.ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("restocking %d on top of %d overflows stock", quantity, stock),
		}
	}
	c.products[i].Stock += quantity
	return c.products[i], nil
}

// Withdraw removes stock for several products at once. Every entry is
// checked before any stock moves, so a failure leaves the catalog untouched.
func (c *Catalog) Withdraw(quantities map[int]int) error {
	for code, qty := range quantities {
		i, ok := c.index[code]
		if !ok {
			return &domain.NotFoundError{Code: code}
		}
		if qty <= 0 {
			return &domain.ValidationError{Field: "quantity", Message: fmt.Sprintf("must be positive, got %d", qty)}
		}
		if p := c.products[i]; qty > p.Stock {
			return &domain.StockError{Code: code, Name: p.Name, Requested: qty, Available: p.Stock}
		}
	}
	for code, qty := range quantities {
		c.products[c.index[code]].Stock -= qty
	}
	return nil
}

// List returns a copy of the products in insertion order.
func (c *Catalog) List() []domain.Product {
	return append([]domain.Product(nil), c.products...)
}

func (c *Catalog) Len() int { return len(c.products) }

// NextCode is the code the next Add will assign.
func (c *Catalog) NextCode() int { return c.nextCode }
