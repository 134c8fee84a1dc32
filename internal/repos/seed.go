package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	applog "storefront/internal/log"
)

// Demo credentials created by Seed.
const (
	DemoUserEmail  = "alice@storefront.test"
	DemoAdminEmail = "admin@storefront.test"
	DemoPassword   = "Passw0rd!"
)

// Seed inserts demo categories/products/inventory when the catalog is empty and
// makes sure the demo accounts exist. Safe to run on every start.
func Seed(ctx context.Context, db *sqlx.DB) error {
	if err := seedCatalogIfEmpty(ctx, db); err != nil {
		return err
	}
	return seedUsers(ctx, db)
}

func seedCatalogIfEmpty(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	applog.L().Info("seed: inserting demo categories/products/inventory")

	ts := now()
	return WithTx(ctx, db, func(tx *sqlx.Tx) error {
		stmts := []struct {
			q    string
			args []any
		}{
			{`INSERT INTO categories(id,name,created_at) VALUES (?,?,?),(?,?,?)`,
				[]any{"cat-paint", "Interior Paint", ts, "cat-tools", "Tools", ts}},
			{`INSERT INTO products(id,category_id,name,description,price,colors_json,created_at) VALUES
			  (?,?,?,?,?,?,?),(?,?,?,?,?,?,?),(?,?,?,?,?,?,?)`,
				[]any{
					"prod-matte-white", "cat-paint", "Matte White 5L", "Low odour interior emulsion", 49.90, `["white"]`, ts,
					"prod-satin-blue", "cat-paint", "Satin Blue 1L", "Washable satin finish", 19.50, `["blue","navy"]`, ts,
					"prod-roller", "cat-tools", "Roller Kit", "9 inch roller with tray", 12.00, `[]`, ts,
				}},
			{`INSERT INTO inventory(id,product_id,stock,updated_at) VALUES (?,?,?,?),(?,?,?,?),(?,?,?,?)`,
				[]any{
					"inv-matte-white", "prod-matte-white", 5, ts,
					"inv-satin-blue", "prod-satin-blue", 20, ts,
					"inv-roller", "prod-roller", 0, ts,
				}},
		}
		for _, s := range stmts {
			if _, err := tx.ExecContext(ctx, tx.Rebind(s.q), s.args...); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedUsers(ctx context.Context, db *sqlx.DB) error {
	type u struct{ ID, Email, Name, Role string }
	users := []u{
		{"u-alice", DemoUserEmail, "Alice", "user"},
		{"u-admin", DemoAdminEmail, "Admin", "admin"},
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return WithTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, x := range users {
			res, err := tx.ExecContext(ctx, tx.Rebind(`
				INSERT INTO users(id,email,name,password_hash,role,created_at)
				VALUES(?,?,?,?,?,?)
				ON CONFLICT(id) DO NOTHING
			`), x.ID, x.Email, x.Name, string(hash), x.Role, now())
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n > 0 {
				applog.L().Info("seed: user created", zap.String("email", x.Email), zap.String("role", x.Role))
			}
		}
		return nil
	})
}
