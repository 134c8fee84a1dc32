package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/session"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	DB     *sqlx.DB
	Users  *repos.UserRepo
	Carts  *repos.CartRepo
	Tokens *session.Codec
}

func NewAuthService(db *sqlx.DB, tokens *session.Codec) *AuthService {
	return &AuthService{DB: db, Users: repos.NewUserRepo(db), Carts: repos.NewCartRepo(db), Tokens: tokens}
}

// Register creates a user account with role user and an empty cart.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	taken, err := s.Users.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Conflict("email is already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{ID: uuid.NewString(), Name: name, Email: email, Hash: string(hash), Role: domain.RoleUser}

	err = repos.WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		if err := s.Users.WithTx(tx).Create(ctx, u); err != nil {
			// A concurrent registration can win between EmailTaken and the insert.
			if repos.IsUniqueViolation(err) {
				return domain.Conflict("email is already registered")
			}
			return err
		}
		_, err := s.Carts.WithTx(tx).EnsureCart(ctx, u.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials, opens a session row and returns its signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", time.Time{}, ErrBadCreds
	}
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", time.Time{}, ErrBadCreds
	}
	sid := uuid.NewString()
	tok, exp, err := s.Tokens.Sign(sid, u.ID, u.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.Users.CreateSession(ctx, sid, u.ID, exp); err != nil {
		return nil, "", time.Time{}, err
	}
	return u, tok, exp, nil
}

// Logout revokes the session behind raw. Unknown or invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	claims, err := s.Tokens.Parse(raw)
	if err != nil {
		return nil
	}
	return s.Users.DeleteSession(ctx, claims.ID)
}

// CurrentUser resolves the user behind a cookie value; nil means anonymous.
func (s *AuthService) CurrentUser(ctx context.Context, raw string) (*domain.User, error) {
	claims, err := s.Tokens.Parse(raw)
	if err != nil {
		return nil, nil
	}
	u, err := s.Users.SessionUser(ctx, claims.ID)
	if err != nil || u == nil {
		return nil, err
	}
	if u.ID != claims.Subject {
		return nil, nil
	}
	return u, nil
}
