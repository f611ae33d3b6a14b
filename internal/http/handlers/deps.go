package handlers

import (
	"sync"

	"posledger/internal/store"
)

type Deps struct {
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	SaleHandler      *SaleHandler
	AdminHandler     *AdminHandler

	// mu serializes every request touching the store.
	mu sync.Mutex
}

// NewDeps wires handlers over one store. save may be nil when persistence is off.
func NewDeps(st *store.Store, save func() error) *Deps {
	return &Deps{
		ProductHandler:   &ProductHandler{Store: st},
		InventoryHandler: &InventoryHandler{Store: st},
		SaleHandler:      &SaleHandler{Store: st},
		AdminHandler:     &AdminHandler{Save: save},
	}
}
