package services

import (
	"fmt"
	"time"

	"posledger/internal/catalog"
	"posledger/internal/domain"
	"posledger/internal/ledger"
	"posledger/internal/money"
)

// LineRequest is one requested line of a sale.
type LineRequest struct {
	Code     int `json:"code"`
	Quantity int `json:"quantity"`
}

// SaleService runs sale transactions against a catalog and a ledger.
type SaleService struct {
	Catalog *catalog.Catalog
	Ledger  *ledger.Ledger
	Now     func() time.Time
}

func NewSaleService(cat *catalog.Catalog, led *ledger.Ledger) *SaleService {
	return &SaleService{Catalog: cat, Ledger: led, Now: time.Now}
}

// Execute validates every line, prices the sale and commits it.
// Either the whole sale is recorded and stock is withdrawn, or nothing changes.
func (s *SaleService) Execute(lines []LineRequest, discountPercent money.Money) (domain.Sale, error) {
	if len(lines) == 0 {
		return domain.Sale{}, &domain.ValidationError{Field: "items", Message: "at least one line is required"}
	}

	// validation pass: nothing is mutated here
	resolved := make([]domain.Product, len(lines))
	wanted := make(map[int]int, len(lines))
	for i, ln := range lines {
		p, ok := s.Catalog.Find(ln.Code)
		if !ok {
			return domain.Sale{}, &domain.NotFoundError{Code: ln.Code}
		}
		if ln.Quantity <= 0 {
			return domain.Sale{}, &domain.ValidationError{
				Field:   "quantity",
				Message: fmt.Sprintf("must be positive for product %d, got %d", ln.Code, ln.Quantity),
			}
		}
		// duplicates are checked against their running total
		wanted[ln.Code] += ln.Quantity
		if wanted[ln.Code] > p.Stock {
			return domain.Sale{}, &domain.StockError{Code: p.Code, Name: p.Name, Requested: wanted[ln.Code], Available: p.Stock}
		}
		resolved[i] = p
	}

	discountPercent = money.New(discountPercent.Decimal())
	if err := domain.CheckDiscount(discountPercent); err != nil {
		return domain.Sale{}, err
	}

	// build pass
	items := make([]domain.LineItem, 0, len(lines))
	for i, ln := range lines {
		li, err := domain.NewLineItem(resolved[i], ln.Quantity)
		if err != nil {
			return domain.Sale{}, err
		}
		items = append(items, li)
	}
	// stored timestamps carry microseconds
	sale, err := domain.NewSale(s.Ledger.PeekID(), s.Now().Truncate(time.Microsecond), items, discountPercent)
	if err != nil {
		return domain.Sale{}, err
	}

	// commit pass: the journal is checked before any stock moves
	if err := s.Ledger.CheckAppend(sale.ID); err != nil {
		return domain.Sale{}, fmt.Errorf("commit sale: %w", err)
	}
	if err := s.Catalog.Withdraw(wanted); err != nil {
		return domain.Sale{}, fmt.Errorf("commit stock: %w", err)
	}
	sale.ID = s.Ledger.NextID()
	if err := s.Ledger.Append(sale); err != nil {
		return domain.Sale{}, fmt.Errorf("commit sale: %w", err)
	}
	return sale, nil
}
