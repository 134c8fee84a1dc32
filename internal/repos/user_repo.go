package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type UserRepo struct{ db sqlx.ExtContext }

func NewUserRepo(db sqlx.ExtContext) *UserRepo { return &UserRepo{db: db} }

// WithTx returns a copy of the repo bound to tx.
func (r *UserRepo) WithTx(tx *sqlx.Tx) *UserRepo { return &UserRepo{db: tx} }

const userCols = `id,email,name,password_hash,role,created_at`

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := sqlx.GetContext(ctx, r.db, &u, r.db.Rebind(`SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`), email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := sqlx.GetContext(ctx, r.db, &u, r.db.Rebind(`SELECT `+userCols+` FROM users WHERE id=?`), id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EmailTaken reports whether an account already uses email (case-insensitive).
func (r *UserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int
	err := sqlx.GetContext(ctx, r.db, &n, r.db.Rebind(`SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`), email)
	return n > 0, err
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.CreatedAt == "" {
		u.CreatedAt = now()
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO users(id,email,name,password_hash,role,created_at)
		VALUES(?,?,?,?,?,?)
	`), u.ID, u.Email, u.Name, u.Hash, u.Role, u.CreatedAt)
	return err
}

func (r *UserRepo) CreateSession(ctx context.Context, sid, userID string, expires time.Time) error {
	ts := now()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO sessions(id,user_id,created_at,last_seen,expires_at)
		VALUES(?,?,?,?,?)
	`), sid, userID, ts, ts, expires.UTC().Format(time.RFC3339))
	return err
}

// SessionUser returns the user bound to a live session, or nil when the
// session is unknown or expired.
func (r *UserRepo) SessionUser(ctx context.Context, sid string) (*domain.User, error) {
	var u domain.User
	err := sqlx.GetContext(ctx, r.db, &u, r.db.Rebind(`
		SELECT u.id,u.email,u.name,u.password_hash,u.role,u.created_at
		FROM sessions s
		JOIN users u ON u.id=s.user_id
		WHERE s.id=? AND s.expires_at > ?`), sid, now())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) DeleteSession(ctx context.Context, sid string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM sessions WHERE id=?`), sid)
	return err
}
