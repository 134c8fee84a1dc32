package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type CartRepo struct{ db sqlx.ExtContext }

func NewCartRepo(db sqlx.ExtContext) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) WithTx(tx *sqlx.Tx) *CartRepo { return &CartRepo{db: tx} }

// ByUser returns nil when the user has no cart row yet.
func (r *CartRepo) ByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var c domain.Cart
	err := sqlx.GetContext(ctx, r.db, &c, r.db.Rebind(`SELECT id, user_id, created_at FROM carts WHERE user_id = ?`), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// EnsureCart returns the user's cart, creating it when absent.
func (r *CartRepo) EnsureCart(ctx context.Context, userID string) (*domain.Cart, error) {
	c, err := r.ByUser(ctx, userID)
	if err != nil || c != nil {
		return c, err
	}
	c = &domain.Cart{ID: uuid.NewString(), UserID: userID, CreatedAt: now()}
	_, err = r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO carts(id,user_id,created_at) VALUES(?,?,?)`),
		c.ID, c.UserID, c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindItem returns the first line for (cart, product), or nil.
func (r *CartRepo) FindItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error) {
	var it domain.CartItem
	err := sqlx.GetContext(ctx, r.db, &it, r.db.Rebind(`
	  SELECT id, cart_id, product_id, quantity, created_at
	  FROM cart_items
	  WHERE cart_id = ? AND product_id = ?
	  ORDER BY created_at, id
	  LIMIT 1
	`), cartID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepo) InsertItem(ctx context.Context, it *domain.CartItem) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.CreatedAt == "" {
		it.CreatedAt = now()
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO cart_items(id,cart_id,product_id,quantity,created_at)
	  VALUES(?,?,?,?,?)
	`), it.ID, it.CartID, it.ProductID, it.Quantity, it.CreatedAt)
	return err
}

func (r *CartRepo) UpdateItemQuantity(ctx context.Context, itemID string, qty int) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE cart_items SET quantity = ? WHERE id = ?`), qty, itemID)
	return err
}

// SetQuantity overwrites the quantity of every line for (cart, product).
func (r *CartRepo) SetQuantity(ctx context.Context, cartID, productID string, qty int) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  UPDATE cart_items SET quantity = ? WHERE cart_id = ? AND product_id = ?
	`), qty, cartID, productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RemoveProduct deletes every line for (cart, product).
func (r *CartRepo) RemoveProduct(ctx context.Context, cartID, productID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`),
		cartID, productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Lines returns the cart's items joined with the current product data.
func (r *CartRepo) Lines(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	lines := []domain.CartLine{}
	err := sqlx.SelectContext(ctx, r.db, &lines, r.db.Rebind(`
	  SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at,
	         p.id AS "product.id", p.name AS "product.name", p.price AS "product.price"
	  FROM cart_items ci
	  JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.created_at, ci.id
	`), cartID)
	return lines, err
}

// Clear deletes every line of the cart; the cart row itself stays.
func (r *CartRepo) Clear(ctx context.Context, cartID string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM cart_items WHERE cart_id = ?`), cartID)
	return err
}
