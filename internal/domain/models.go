package domain

import (
	"fmt"
	"time"

	"posledger/internal/money"
)

// TimestampLayout is the on-disk form of sale timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

type Product struct {
	Code  int         `db:"code"`
	Name  string      `db:"name"`
	Price money.Money `db:"price"`
	Stock int         `db:"stock"`
}

// LineItem snapshots a product's identity and price at sale time.
type LineItem struct {
	ProductCode int         `db:"product_code"`
	ProductName string      `db:"product_name"`
	UnitPrice   money.Money `db:"unit_price"`
	Quantity    int         `db:"quantity"`
	LineTotal   money.Money `db:"line_total"`
}

// NewLineItem builds a line from the product as it is now.
func NewLineItem(p Product, qty int) (LineItem, error) {
	if qty <= 0 {
		return LineItem{}, &ValidationError{Field: "quantity", Message: fmt.Sprintf("must be positive, got %d", qty)}
	}
	price := money.New(p.Price.Decimal())
	return LineItem{
		ProductCode: p.Code,
		ProductName: p.Name,
		UnitPrice:   price,
		Quantity:    qty,
		LineTotal:   price.MulInt(qty),
	}, nil
}

// Sale is an append-only journal entry.
type Sale struct {
	ID              int
	Timestamp       time.Time
	Items           []LineItem
	Subtotal        money.Money
	DiscountPercent money.Money
	Total           money.Money
}

var maxDiscount = money.FromInt(100)

// NewSale computes subtotal and total from items and the discount percent.
func NewSale(id int, at time.Time, items []LineItem, discountPercent money.Money) (Sale, error) {
	if id <= 0 {
		return Sale{}, &ValidationError{Field: "id", Message: fmt.Sprintf("must be positive, got %d", id)}
	}
	if len(items) == 0 {
		return Sale{}, &ValidationError{Field: "items", Message: "at least one line is required"}
	}
	if err := CheckDiscount(discountPercent); err != nil {
		return Sale{}, err
	}
	totals := make([]money.Money, len(items))
	for i, it := range items {
		totals[i] = it.LineTotal
	}
	subtotal := money.Sum(totals...)
	return Sale{
		ID:              id,
		Timestamp:       at,
		Items:           append([]LineItem(nil), items...),
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		Total:           subtotal.Discount(discountPercent),
	}, nil
}

// RestoreSale rebuilds a persisted sale keeping its stored figures as-is.
func RestoreSale(id int, at time.Time, items []LineItem, subtotal, discountPercent, total money.Money) (Sale, error) {
	if id <= 0 {
		return Sale{}, &ValidationError{Field: "id", Message: fmt.Sprintf("must be positive, got %d", id)}
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return Sale{}, &ValidationError{Field: "quantity", Message: fmt.Sprintf("sale %d has a non-positive quantity", id)}
		}
	}
	return Sale{
		ID:              id,
		Timestamp:       at,
		Items:           append([]LineItem(nil), items...),
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		Total:           total,
	}, nil
}

// CheckDiscount rejects percentages outside [0, 100].
func CheckDiscount(pct money.Money) error {
	if pct.IsNegative() || pct.GreaterThan(maxDiscount) {
		return &ValidationError{Field: "discount", Message: fmt.Sprintf("must be between 0 and 100, got %s", pct.Text())}
	}
	return nil
}

// Stamp renders a timestamp in TimestampLayout.
func Stamp(t time.Time) string { return t.Format(TimestampLayout) }

// ParseStamp accepts any RFC 3339 timestamp.
func ParseStamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q: %w", s, err)
	}
	return t, nil
}

// State is the full persisted store contents.
type State struct {
	Products []Product
	Sales    []Sale
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}
