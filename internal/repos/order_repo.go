package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type OrderRepo struct{ db sqlx.ExtContext }

func NewOrderRepo(db sqlx.ExtContext) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) WithTx(tx *sqlx.Tx) *OrderRepo { return &OrderRepo{db: tx} }

const orderCols = `o.id, o.user_id, o.total, o.shipping_fee, o.status, o.created_at,
	COALESCE(o.updated_at,'') AS updated_at, COALESCE(o.updated_by,'') AS updated_by, o.is_deleted`

// Create inserts the order header and its items. Item ids are assigned here.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt == "" {
		o.CreatedAt = now()
	}
	if o.Status == "" {
		o.Status = domain.StatusPending
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO orders(id, user_id, total, shipping_fee, status, created_at, is_deleted)
	  VALUES(?, ?, ?, ?, ?, ?, 0)
	`), o.ID, o.UserID, o.Total, o.ShippingFee, o.Status, o.CreatedAt); err != nil {
		return err
	}
	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		it.OrderID = o.ID
		if _, err := r.db.ExecContext(ctx, r.db.Rebind(`
		  INSERT INTO order_items(id, order_id, product_id, quantity, price)
		  VALUES(?, ?, ?, ?, ?)
		`), it.ID, it.OrderID, it.ProductID, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a non-deleted order with its items, or nil.
func (r *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := sqlx.GetContext(ctx, r.db, &o, r.db.Rebind(`SELECT `+orderCols+` FROM orders o WHERE o.id = ? AND o.is_deleted = 0`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	orders := []domain.Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// ListByUser returns the user's non-deleted orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	out := []domain.Order{}
	if err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(`
		SELECT `+orderCols+`
		FROM orders o
		WHERE o.user_id = ? AND o.is_deleted = 0
		ORDER BY o.created_at DESC, o.id
	`), userID); err != nil {
		return nil, err
	}
	return out, r.attachItems(ctx, out)
}

type adminOrderRow struct {
	domain.Order
	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
}

// ListAll returns every non-deleted order with its buyer, newest first.
func (r *OrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	var rows []adminOrderRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, `
		SELECT `+orderCols+`, COALESCE(u.name,'') AS user_name, COALESCE(u.email,'') AS user_email
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.is_deleted = 0
		ORDER BY o.created_at DESC, o.id
	`); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o := row.Order
		o.User = &domain.UserRef{ID: o.UserID, Name: row.UserName, Email: row.UserEmail}
		out = append(out, o)
	}
	return out, r.attachItems(ctx, out)
}

func (r *OrderRepo) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	idx := make(map[string]int, len(orders))
	for i := range orders {
		orders[i].Items = []domain.OrderItem{}
		ids = append(ids, orders[i].ID)
		idx[orders[i].ID] = i
	}
	query, args, err := sqlx.In(`
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, p.name AS "product.name"
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id IN (?)
		ORDER BY p.name, oi.id
	`, ids)
	if err != nil {
		return err
	}
	var items []domain.OrderItem
	if err := sqlx.SelectContext(ctx, r.db, &items, r.db.Rebind(query), args...); err != nil {
		return err
	}
	for _, it := range items {
		i := idx[it.OrderID]
		orders[i].Items = append(orders[i].Items, it)
	}
	return nil
}

// OrderPatch carries the admin-editable fields; nil means unchanged.
type OrderPatch struct {
	Status      *domain.OrderStatus
	ShippingFee *float64
	UpdatedBy   string
}

// Update applies p to a non-deleted order and reports whether it existed.
func (r *OrderRepo) Update(ctx context.Context, id string, p OrderPatch) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE orders
		SET status = COALESCE(?, status),
		    shipping_fee = COALESCE(?, shipping_fee),
		    updated_by = ?,
		    updated_at = ?
		WHERE id = ? AND is_deleted = 0
	`), nullableStatus(p.Status), nullableFloat(p.ShippingFee), p.UpdatedBy, now(), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *OrderRepo) SoftDelete(ctx context.Context, id, by string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE orders SET is_deleted = 1, updated_by = ?, updated_at = ? WHERE id = ? AND is_deleted = 0
	`), by, now(), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// OrderFact is the slice of an order the stats aggregation needs.
type OrderFact struct {
	CreatedAt string             `db:"created_at"`
	Total     float64            `db:"total"`
	Status    domain.OrderStatus `db:"status"`
}

// Facts returns non-deleted orders created in [from, to), ascending by creation.
// Empty bounds are open.
func (r *OrderRepo) Facts(ctx context.Context, from, to string) ([]OrderFact, error) {
	q := `SELECT created_at, total, status FROM orders WHERE is_deleted = 0`
	var args []any
	if from != "" {
		q += ` AND created_at >= ?`
		args = append(args, from)
	}
	if to != "" {
		q += ` AND created_at < ?`
		args = append(args, to)
	}
	q += ` ORDER BY created_at`
	out := []OrderFact{}
	err := sqlx.SelectContext(ctx, r.db, &out, r.db.Rebind(q), args...)
	return out, err
}

func nullableStatus(s *domain.OrderStatus) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*s), Valid: true}
}

func nullableFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
