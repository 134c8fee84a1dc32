package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type ProductRepo struct{ db sqlx.ExtContext }

func NewProductRepo(db sqlx.ExtContext) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) WithTx(tx *sqlx.Tx) *ProductRepo { return &ProductRepo{db: tx} }

type productRow struct {
	domain.Product
	CatID      sql.NullString `db:"cat_id"`
	CatName    sql.NullString `db:"cat_name"`
	CatCreated sql.NullString `db:"cat_created_at"`
	InvID      sql.NullString `db:"inv_id"`
	InvStock   sql.NullInt64  `db:"inv_stock"`
	InvUpdated sql.NullString `db:"inv_updated_at"`
}

const productSelect = `
  SELECT
    p.id, p.category_id, p.name, p.description, p.price, p.colors_json, p.is_deleted,
    p.created_at, COALESCE(p.updated_at,'') AS updated_at,
    c.id AS cat_id, c.name AS cat_name, c.created_at AS cat_created_at,
    i.id AS inv_id, i.stock AS inv_stock, COALESCE(i.updated_at,'') AS inv_updated_at
  FROM products p
  LEFT JOIN categories c ON c.id = p.category_id
  LEFT JOIN inventory i ON i.product_id = p.id`

func (row productRow) detail() domain.ProductDetail {
	d := domain.ProductDetail{Product: decodeColors(row.Product)}
	if row.CatID.Valid {
		d.Category = &domain.Category{ID: row.CatID.String, Name: row.CatName.String, CreatedAt: row.CatCreated.String}
	}
	if row.InvID.Valid {
		d.Inventory = &domain.Inventory{ID: row.InvID.String, ProductID: row.ID, Stock: int(row.InvStock.Int64), UpdatedAt: row.InvUpdated.String}
	}
	return d
}

func decodeColors(p domain.Product) domain.Product {
	p.Colors = []string{}
	if p.ColorsJSON != "" {
		_ = json.Unmarshal([]byte(p.ColorsJSON), &p.Colors)
	}
	return p
}

func encodeColors(colors []string) string {
	if colors == nil {
		colors = []string{}
	}
	b, _ := json.Marshal(colors)
	return string(b)
}

// List returns all products that are not soft-deleted.
func (r *ProductRepo) List(ctx context.Context) ([]domain.ProductDetail, error) {
	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, productSelect+`
	  WHERE p.is_deleted = 0
	  ORDER BY p.created_at DESC, p.name`); err != nil {
		return nil, err
	}
	out := make([]domain.ProductDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.detail())
	}
	return out, nil
}

// Get returns a live product, or nil when it is missing or soft-deleted.
func (r *ProductRepo) Get(ctx context.Context, id string) (*domain.ProductDetail, error) {
	var row productRow
	err := sqlx.GetContext(ctx, r.db, &row, r.db.Rebind(productSelect+` WHERE p.id = ? AND p.is_deleted = 0`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d := row.detail()
	return &d, nil
}

// GetAny returns the stored row regardless of the soft-delete flag.
func (r *ProductRepo) GetAny(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := sqlx.GetContext(ctx, r.db, &p, r.db.Rebind(`
	  SELECT id, category_id, name, description, price, colors_json, is_deleted,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p = decodeColors(p)
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	if p.CreatedAt == "" {
		p.CreatedAt = now()
	}
	p.ColorsJSON = encodeColors(p.Colors)
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO products(id,category_id,name,description,price,colors_json,is_deleted,created_at)
	  VALUES(?,?,?,?,?,?,0,?)
	`), p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.ColorsJSON, p.CreatedAt)
	return err
}

// Update overwrites the mutable fields of a live product. It reports false
// when no live product has the id.
func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) (bool, error) {
	p.UpdatedAt = now()
	p.ColorsJSON = encodeColors(p.Colors)
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  UPDATE products
	  SET category_id = ?, name = ?, description = ?, price = ?, colors_json = ?, updated_at = ?
	  WHERE id = ? AND is_deleted = 0
	`), p.CategoryID, p.Name, p.Description, p.Price, p.ColorsJSON, p.UpdatedAt, p.ID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// SoftDelete flags a live product as deleted; the row stays in storage.
func (r *ProductRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  UPDATE products SET is_deleted = 1, updated_at = ? WHERE id = ? AND is_deleted = 0
	`), now(), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *ProductRepo) CountLive(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, `SELECT COUNT(*) FROM products WHERE is_deleted = 0`)
	return n, err
}
