package services

import (
	"posledger/internal/catalog"
	"posledger/internal/domain"
)

// LowStockThreshold is the stock level at and above which a product is IN_STOCK.
const LowStockThreshold = 5

type InventoryService struct {
	Catalog *catalog.Catalog
}

func NewInventoryService(cat *catalog.Catalog) *InventoryService {
	return &InventoryService{Catalog: cat}
}

// CheckAvailability maps stock to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(code int) (domain.Availability, error) {
	p, ok := s.Catalog.Find(code)
	if !ok {
		return domain.Availability{}, &domain.NotFoundError{Code: code}
	}
	return Classify(p.Stock), nil
}

func Classify(qty int) domain.Availability {
	status := "OUT_OF_STOCK"
	switch {
	case qty >= LowStockThreshold:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}
}
