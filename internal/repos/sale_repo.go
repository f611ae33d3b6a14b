package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"posledger/internal/domain"
	"posledger/internal/money"
)

type saleRow struct {
	ID              int         `db:"id"`
	DataHora        string      `db:"data_hora"`
	Subtotal        money.Money `db:"subtotal"`
	DescontoPercent money.Money `db:"desconto_percent"`
	Total           money.Money `db:"total"`
}

type itemRow struct {
	SaleID int `db:"sale_id"`
	domain.LineItem
}

func (s saleRow) restore(items []domain.LineItem) (domain.Sale, error) {
	at, err := domain.ParseStamp(s.DataHora)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("load sale %d: %w", s.ID, err)
	}
	sale, err := domain.RestoreSale(s.ID, at, items, s.Subtotal, s.DescontoPercent, s.Total)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("load sale %d: %w", s.ID, err)
	}
	return sale, nil
}

func listSales(q sqlx.Queryer) ([]domain.Sale, error) {
	var sales []saleRow
	if err := sqlx.Select(q, &sales, `
		SELECT id, data_hora, subtotal, desconto_percent, total
		FROM sales
		ORDER BY position
	`); err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}

	var items []itemRow
	if err := sqlx.Select(q, &items, `
		SELECT sale_id, product_code, product_name, unit_price, quantity, line_total
		FROM sale_items
		ORDER BY sale_id, line
	`); err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	bySale := make(map[int][]domain.LineItem, len(sales))
	for _, it := range items {
		bySale[it.SaleID] = append(bySale[it.SaleID], it.LineItem)
	}

	out := make([]domain.Sale, 0, len(sales))
	for _, s := range sales {
		sale, err := s.restore(bySale[s.ID])
		if err != nil {
			return nil, err
		}
		out = append(out, sale)
	}
	return out, nil
}

func insertSales(x sqlx.Execer, sales []domain.Sale) error {
	for i, s := range sales {
		if _, err := x.Exec(`
			INSERT INTO sales(id, position, data_hora, subtotal, desconto_percent, total)
			VALUES(?, ?, ?, ?, ?, ?)
		`, s.ID, i, domain.Stamp(s.Timestamp), s.Subtotal, s.DiscountPercent, s.Total); err != nil {
			return fmt.Errorf("save sale %d: %w", s.ID, err)
		}
		for line, it := range s.Items {
			if _, err := x.Exec(`
				INSERT INTO sale_items(sale_id, line, product_code, product_name, unit_price, quantity, line_total)
				VALUES(?, ?, ?, ?, ?, ?, ?)
			`, s.ID, line, it.ProductCode, it.ProductName, it.UnitPrice, it.Quantity, it.LineTotal); err != nil {
				return fmt.Errorf("save sale %d line %d: %w", s.ID, line, err)
			}
		}
	}
	return nil
}
