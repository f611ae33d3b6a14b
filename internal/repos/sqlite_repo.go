package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"posledger/internal/domain"
)

// SQLiteRepo stores the state as rows. Save replaces everything in one transaction.
type SQLiteRepo struct{ db *sqlx.DB }

func NewSQLiteRepo(db *sqlx.DB) *SQLiteRepo { return &SQLiteRepo{db: db} }

func (r *SQLiteRepo) String() string { return "sqlite" }

func (r *SQLiteRepo) Load() (domain.State, error) {
	products, err := listProducts(r.db)
	if err != nil {
		return domain.State{}, err
	}
	sales, err := listSales(r.db)
	if err != nil {
		return domain.State{}, err
	}
	return domain.State{Products: products, Sales: sales}, nil
}

func (r *SQLiteRepo) Save(st domain.State) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{`DELETE FROM sale_items`, `DELETE FROM sales`, `DELETE FROM products`} {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("clear state: %w", err)
		}
	}
	if err := insertProducts(tx, st.Products); err != nil {
		return err
	}
	if err := insertSales(tx, st.Sales); err != nil {
		return err
	}
	return tx.Commit()
}
