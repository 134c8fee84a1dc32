package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type InventoryRepo struct{ db sqlx.ExtContext }

func NewInventoryRepo(db sqlx.ExtContext) *InventoryRepo { return &InventoryRepo{db: db} }

func (r *InventoryRepo) WithTx(tx *sqlx.Tx) *InventoryRepo { return &InventoryRepo{db: tx} }

// ListAll returns every inventory row with product and category names, for the admin page.
func (r *InventoryRepo) ListAll(ctx context.Context) ([]domain.InventoryRow, error) {
	rows := []domain.InventoryRow{}
	err := sqlx.SelectContext(ctx, r.db, &rows, `
		SELECT i.id, i.product_id, i.stock, COALESCE(i.updated_at,'') AS updated_at,
		       p.id AS "product.id", p.name AS "product.name", p.price AS "product.price",
		       COALESCE(c.name,'') AS "product.category.name"
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.name
	`)
	return rows, err
}

// ByProduct returns nil when the product has no inventory row.
func (r *InventoryRepo) ByProduct(ctx context.Context, productID string) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := sqlx.GetContext(ctx, r.db, &inv, r.db.Rebind(`
		SELECT id, product_id, stock, COALESCE(updated_at,'') AS updated_at
		FROM inventory
		WHERE product_id = ?
	`), productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Upsert sets stock for productID, creating the row if needed.
func (r *InventoryRepo) Upsert(ctx context.Context, productID string, stock int) (*domain.Inventory, error) {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO inventory(id, product_id, stock, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(product_id) DO UPDATE SET stock = excluded.stock, updated_at = excluded.updated_at
	`), uuid.NewString(), productID, stock, now())
	if err != nil {
		return nil, err
	}
	return r.ByProduct(ctx, productID)
}
