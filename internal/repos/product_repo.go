package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"posledger/internal/domain"
)

func listProducts(q sqlx.Queryer) ([]domain.Product, error) {
	out := []domain.Product{}
	if err := sqlx.Select(q, &out, `
		SELECT code, name, price, stock
		FROM products
		ORDER BY position
	`); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return out, nil
}

func insertProducts(x sqlx.Execer, products []domain.Product) error {
	for i, p := range products {
		if _, err := x.Exec(`
			INSERT INTO products(code, position, name, price, stock)
			VALUES(?, ?, ?, ?, ?)
		`, p.Code, i, p.Name, p.Price, p.Stock); err != nil {
			return fmt.Errorf("save product %d: %w", p.Code, err)
		}
	}
	return nil
}
