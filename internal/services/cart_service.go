package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type CartService struct {
	DB    *sqlx.DB
	Carts *repos.CartRepo
	Inv   *repos.InventoryRepo
}

func NewCartService(db *sqlx.DB) *CartService {
	return &CartService{DB: db, Carts: repos.NewCartRepo(db), Inv: repos.NewInventoryRepo(db)}
}

// Get returns the caller's cart; a user without a cart row gets an empty item list.
func (s *CartService) Get(ctx context.Context, userID string) (domain.CartView, error) {
	view := domain.CartView{Items: []domain.CartLine{}}
	c, err := s.Carts.ByUser(ctx, userID)
	if err != nil || c == nil {
		return view, err
	}
	lines, err := s.Carts.Lines(ctx, c.ID)
	if err != nil {
		return view, err
	}
	view.ID, view.UserID, view.Items = c.ID, c.UserID, lines
	return view, nil
}

// Add puts qty units of productID into the caller's cart, merging with an
// existing line. The merged quantity may not exceed current stock.
// created reports whether a new line was inserted.
func (s *CartService) Add(ctx context.Context, userID, productID string, qty int) (item *domain.CartItem, created bool, err error) {
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return nil, false, domain.Validation("quantity must be greater than 0")
	}

	err = repos.WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		carts, inv := s.Carts.WithTx(tx), s.Inv.WithTx(tx)

		stock, err := inv.ByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.NotFound("product not found")
		}
		c, err := carts.EnsureCart(ctx, userID)
		if err != nil {
			return err
		}
		existing, err := carts.FindItem(ctx, c.ID, productID)
		if err != nil {
			return err
		}
		want := qty
		if existing != nil {
			want += existing.Quantity
		}
		if want > stock.Stock {
			return domain.Validation("insufficient stock: only %d left", stock.Stock)
		}

		if existing != nil {
			if err := carts.UpdateItemQuantity(ctx, existing.ID, want); err != nil {
				return err
			}
			existing.Quantity = want
			item = existing
			return nil
		}
		item = &domain.CartItem{CartID: c.ID, ProductID: productID, Quantity: want}
		created = true
		return carts.InsertItem(ctx, item)
	})
	if err != nil {
		return nil, false, err
	}
	return item, created, nil
}

// UpdateQuantity overwrites the quantity of every line for productID.
// Stock is not re-checked here.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, qty int) error {
	if qty < 1 {
		return domain.Validation("quantity must be at least 1")
	}
	c, err := s.Carts.ByUser(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NotFound("no cart")
	}
	_, err = s.Carts.SetQuantity(ctx, c.ID, productID, qty)
	return err
}

// Remove drops every line for productID. A user without a cart is a no-op.
func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	c, err := s.Carts.ByUser(ctx, userID)
	if err != nil || c == nil {
		return err
	}
	_, err = s.Carts.RemoveProduct(ctx, c.ID, productID)
	return err
}
