package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

var ErrCartEmpty = domain.Validation("cart empty")

type OrderService struct {
	DB     *sqlx.DB
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
}

func NewOrderService(db *sqlx.DB) *OrderService {
	return &OrderService{DB: db, Carts: repos.NewCartRepo(db), Orders: repos.NewOrderRepo(db)}
}

// Place turns the caller's cart into a pending order priced at current product
// prices, then empties the cart. Everything happens in one transaction.
// Stock is not decremented.
func (s *OrderService) Place(ctx context.Context, userID string) (*domain.Order, error) {
	var placed *domain.Order
	err := repos.WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		carts, orders := s.Carts.WithTx(tx), s.Orders.WithTx(tx)

		c, err := carts.ByUser(ctx, userID)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrCartEmpty
		}
		lines, err := carts.Lines(ctx, c.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		o := &domain.Order{UserID: userID, Status: domain.StatusPending}
		for _, l := range lines {
			o.Total += l.Product.Price * float64(l.Quantity)
			it := domain.OrderItem{ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Product.Price}
			it.Product.Name = l.Product.Name
			o.Items = append(o.Items, it)
		}
		if err := orders.Create(ctx, o); err != nil {
			return err
		}
		if err := carts.Clear(ctx, c.ID); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.Orders.ListAll(ctx)
}

// Update applies an admin status/shipping change. Any status may replace any other.
func (s *OrderService) Update(ctx context.Context, id string, p repos.OrderPatch) (*domain.Order, error) {
	if p.Status != nil && !p.Status.Valid() {
		return nil, domain.Validation("invalid status %q", *p.Status)
	}
	if p.ShippingFee != nil && *p.ShippingFee < 0 {
		return nil, domain.Validation("shippingFee must not be negative")
	}
	ok, err := s.Orders.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFound("order not found")
	}
	return s.Orders.Get(ctx, id)
}

func (s *OrderService) Delete(ctx context.Context, id, by string) error {
	ok, err := s.Orders.SoftDelete(ctx, id, by)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("order not found")
	}
	return nil
}
