package services_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/services"
	"storefront/internal/session"
)

func TestAuthLifecycle(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()
	svc := services.NewAuthService(db, session.NewCodec("k", time.Hour))

	u, err := svc.Register(ctx, "Bob", "bob@storefront.test", "Secr3tPass")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.NotEqual(t, "Secr3tPass", u.Hash)

	_, err = svc.Register(ctx, "Bob2", "Bob@Storefront.test", "Secr3tPass")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, _, _, err = svc.Login(ctx, "bob@storefront.test", "nope")
	assert.ErrorIs(t, err, services.ErrBadCreds)
	_, _, _, err = svc.Login(ctx, "ghost@storefront.test", "Secr3tPass")
	assert.ErrorIs(t, err, services.ErrBadCreds)

	got, tok, exp, err := svc.Login(ctx, "BOB@storefront.test", "Secr3tPass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	cur, err := svc.CurrentUser(ctx, tok)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)

	require.NoError(t, svc.Logout(ctx, tok))
	cur, err = svc.CurrentUser(ctx, tok)
	require.NoError(t, err)
	assert.Nil(t, cur, "revoked session resolves to anonymous")
}

func TestCurrentUserRoleComesFromStorage(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()
	codec := session.NewCodec("k", time.Hour)
	svc := services.NewAuthService(db, codec)

	_, tok, _, err := svc.Login(ctx, repos.DemoUserEmail, repos.DemoPassword)
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE users SET role = 'admin' WHERE id = 'u-alice'`)
	require.NoError(t, err)
	cur, err := svc.CurrentUser(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, cur.Role)

	other := session.NewCodec("other-key", time.Hour)
	forged, _, err := other.Sign("sid", "u-alice", domain.RoleAdmin)
	require.NoError(t, err)
	cur, err = svc.CurrentUser(ctx, forged)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestRegisterMapsLostEmailRaceToConflict(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	db := sqlx.NewDb(raw, "sqlmock")

	// The pre-check sees a free address; the insert then hits the unique index.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`)).
		WithArgs("bob@storefront.test").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	svc := services.NewAuthService(db, session.NewCodec("k", time.Hour))
	u, err := svc.Register(context.Background(), "Bob", "bob@storefront.test", "Secr3tPass")
	assert.Nil(t, u)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.EqualError(t, err, "email is already registered")
	assert.NoError(t, mock.ExpectationsWereMet())
}
