package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type CategoryRepo struct{ db sqlx.ExtContext }

func NewCategoryRepo(db sqlx.ExtContext) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := sqlx.SelectContext(ctx, r.db, &out, `
	  SELECT id, name, created_at
	  FROM categories
	  ORDER BY name
	`)
	return out, err
}

// Get returns nil when no category has the id.
func (r *CategoryRepo) Get(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := sqlx.GetContext(ctx, r.db, &c, r.db.Rebind(`SELECT id, name, created_at FROM categories WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) NameTaken(ctx context.Context, name string) (bool, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, r.db.Rebind(`SELECT COUNT(*) FROM categories WHERE LOWER(name) = LOWER(?)`), name)
	return n > 0, err
}

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if c.CreatedAt == "" {
		c.CreatedAt = now()
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO categories(id,name,created_at) VALUES(?,?,?)`),
		c.ID, c.Name, c.CreatedAt)
	return err
}

func (r *CategoryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, `SELECT COUNT(*) FROM categories`)
	return n, err
}
