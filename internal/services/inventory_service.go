package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type InventoryService struct {
	Inv   *repos.InventoryRepo
	Prods *repos.ProductRepo
}

func NewInventoryService(inv *repos.InventoryRepo, prods *repos.ProductRepo) *InventoryService {
	return &InventoryService{Inv: inv, Prods: prods}
}

func (s *InventoryService) List(ctx context.Context) ([]domain.InventoryRow, error) {
	return s.Inv.ListAll(ctx)
}

// SetStock overwrites the stock of a live product, creating its row if needed.
// A negative value is rejected before anything is written.
func (s *InventoryService) SetStock(ctx context.Context, productID string, stock int) (*domain.Inventory, error) {
	if stock < 0 {
		return nil, domain.Validation("stock must not be negative")
	}
	p, err := s.Prods.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("product not found")
	}
	return s.Inv.Upsert(ctx, productID, stock)
}
