package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the sqlite database at dsn and ensures the schema exists.
// ":memory:" gives a private in-memory database.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection: keeps ":memory:" a single database and serializes writers
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  code INTEGER PRIMARY KEY CHECK (code > 0),
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  price TEXT NOT NULL,
  stock INTEGER NOT NULL CHECK (stock >= 0)
);
CREATE INDEX IF NOT EXISTS idx_products_position ON products(position);

-- Sales
CREATE TABLE IF NOT EXISTS sales(
  id INTEGER PRIMARY KEY CHECK (id > 0),
  position INTEGER NOT NULL,
  data_hora TEXT NOT NULL,
  subtotal TEXT NOT NULL,
  desconto_percent TEXT NOT NULL DEFAULT '0.00',
  total TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sales_position ON sales(position);
CREATE INDEX IF NOT EXISTS idx_sales_data_hora ON sales(data_hora);

CREATE TABLE IF NOT EXISTS sale_items(
  sale_id INTEGER NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
  line INTEGER NOT NULL,
  product_code INTEGER NOT NULL,
  product_name TEXT NOT NULL,
  unit_price TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  line_total TEXT NOT NULL,
  PRIMARY KEY (sale_id, line)
);
`
	_, err := db.Exec(schema)
	return err
}
