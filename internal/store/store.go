// Package store is the composition root: a catalog, a ledger and the
// services that operate on them, loaded from and saved to a Repo.
package store

import (
	"fmt"
	"iter"
	"time"

	"posledger/internal/catalog"
	"posledger/internal/domain"
	"posledger/internal/ledger"
	applog "posledger/internal/log"
	"posledger/internal/money"
	"posledger/internal/services"
)

// Repo persists the full store state.
type Repo interface {
	Load() (domain.State, error)
	Save(domain.State) error
}

type Store struct {
	Catalog   *catalog.Catalog
	Ledger    *ledger.Ledger
	Engine    *services.SaleService
	Inventory *services.InventoryService
	// Now is the clock shared by the sale engine and the today filter.
	Now func() time.Time
}

// New returns an empty store.
func New() *Store {
	s, _ := FromState(domain.State{})
	return s
}

// FromState builds a store from saved state. Counters resume after the
// highest code and id present.
func FromState(st domain.State) (*Store, error) {
	cat, err := catalog.Restore(st.Products)
	if err != nil {
		return nil, fmt.Errorf("restore catalog: %w", err)
	}
	led, err := ledger.Restore(st.Sales)
	if err != nil {
		return nil, fmt.Errorf("restore ledger: %w", err)
	}
	s := &Store{
		Catalog:   cat,
		Ledger:    led,
		Engine:    services.NewSaleService(cat, led),
		Inventory: services.NewInventoryService(cat),
		Now:       time.Now,
	}
	s.Engine.Now = func() time.Time { return s.Now() }
	return s, nil
}

// Open loads a store from repo.
func Open(repo Repo) (*Store, error) {
	st, err := repo.Load()
	if err != nil {
		applog.Error(nil, "store.load.fail", err, map[string]any{"repo": fmt.Sprint(repo)})
		return nil, err
	}
	s, err := FromState(st)
	if err != nil {
		applog.Error(nil, "store.load.fail", err, map[string]any{"repo": fmt.Sprint(repo)})
		return nil, err
	}
	applog.Info(nil, "store.load", map[string]any{
		"repo":      fmt.Sprint(repo),
		"products":  s.Catalog.Len(),
		"sales":     s.Ledger.Len(),
		"next_code": s.Catalog.NextCode(),
		"next_sale": s.Ledger.PeekID(),
	})
	return s, nil
}

// Snapshot returns the current state for persistence.
func (s *Store) Snapshot() domain.State {
	return domain.State{Products: s.Catalog.List(), Sales: s.Ledger.All()}
}

func (s *Store) Save(repo Repo) error {
	st := s.Snapshot()
	if err := repo.Save(st); err != nil {
		applog.Error(nil, "store.save.fail", err, map[string]any{"repo": fmt.Sprint(repo)})
		return err
	}
	applog.Info(nil, "store.save", map[string]any{
		"repo":     fmt.Sprint(repo),
		"products": len(st.Products),
		"sales":    len(st.Sales),
	})
	return nil
}

func (s *Store) AddProduct(name string, price money.Money, stock int) (domain.Product, error) {
	p, err := s.Catalog.Add(name, price, stock)
	if err != nil {
		applog.Security(nil, "product.add.fail", map[string]any{"name": name, "error": err.Error()})
		return domain.Product{}, err
	}
	applog.Audit(nil, "product.add", map[string]any{"code": p.Code, "name": p.Name, "price": p.Price.Text(), "stock": p.Stock})
	return p, nil
}

func (s *Store) Restock(code, quantity int) (domain.Product, error) {
	p, err := s.Catalog.Restock(code, quantity)
	if err != nil {
		applog.Security(nil, "product.restock.fail", map[string]any{"code": code, "quantity": quantity, "error": err.Error()})
		return domain.Product{}, err
	}
	applog.Audit(nil, "product.restock", map[string]any{"code": code, "quantity": quantity, "stock": p.Stock})
	return p, nil
}

func (s *Store) Products() []domain.Product { return s.Catalog.List() }

func (s *Store) FindProduct(code int) (domain.Product, bool) { return s.Catalog.Find(code) }

func (s *Store) Availability(code int) (domain.Availability, error) {
	return s.Inventory.CheckAvailability(code)
}

func (s *Store) ExecuteSale(lines []services.LineRequest, discountPercent money.Money) (domain.Sale, error) {
	sale, err := s.Engine.Execute(lines, discountPercent)
	if err != nil {
		applog.Security(nil, "sale.fail", map[string]any{"lines": len(lines), "discount": discountPercent.Text(), "error": err.Error()})
		return domain.Sale{}, err
	}
	applog.Audit(nil, "sale.commit", map[string]any{
		"sale_id":  sale.ID,
		"items":    len(sale.Items),
		"subtotal": sale.Subtotal.Text(),
		"discount": sale.DiscountPercent.Text(),
		"total":    sale.Total.Text(),
	})
	return sale, nil
}

// Sales returns the journal, or only today's sales, with their revenue.
func (s *Store) Sales(todayOnly bool) ([]domain.Sale, money.Money) {
	pred := ledger.Any
	if todayOnly {
		pred = ledger.SameDay(s.Now())
	}
	seq := s.Ledger.Filter(pred)
	return collect(seq), ledger.TotalRevenue(seq)
}

func collect(seq iter.Seq[domain.Sale]) []domain.Sale {
	out := []domain.Sale{}
	for sale := range seq {
		out = append(out, sale)
	}
	return out
}
