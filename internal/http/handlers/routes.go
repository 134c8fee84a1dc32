package handlers

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"storefront/internal/config"
	applog "storefront/internal/log"
	"storefront/internal/metrics"
)

// NewApp builds the Fiber application with middleware and every route mounted.
func NewApp(cfg config.Config, db *sqlx.DB) *fiber.App {
	deps := NewDeps(db, cfg)

	app := fiber.New(fiber.Config{
		AppName:               "storefront",
		ErrorHandler:          ErrorHandler,
		BodyLimit:             1 << 20, // 1 MiB
		Immutable:             true,    // ctx strings end up in loggers and limiter keys
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		DisableStartupMessage: !cfg.Dev(),
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${status} ${method} ${path} ${latency}",
		Output: io.Discard,
		Done: func(c *fiber.Ctx, line []byte) {
			applog.L().Info("http.access",
				zap.String("line", string(line)),
				zap.String("req_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			)
		},
	}))
	app.Use(helmet.New())
	app.Use(metrics.Middleware())
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				p := c.Path()
				return p == "/healthz" || p == "/metrics"
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.global.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
			},
		}))
	}
	app.Use(Resolve(deps.Auth))
	if cfg.CSRFEnabled {
		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "header:" + csrf.HeaderName,
			CookieName:     "csrf_",
			CookieSameSite: "Lax",
			CookieSecure:   cfg.CookieSecure,
			ContextKey:     "csrf",
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/metrics"
			},
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				applog.Security(c, "csrf.fail", map[string]any{"reason": err.Error()})
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Security check failed. Please refresh and try again."})
			},
		}))
	}

	// ---------- Routes ----------
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	auth.Post("/logout", deps.AuthHandler.Logout)
	auth.Get("/session", deps.AuthHandler.Session)

	// Catalog: reads are public, writes need an admin.
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Post("/products", RequireAdmin(), deps.ProductHandler.Create)
	api.Put("/products/:id", RequireAdmin(), deps.ProductHandler.Update)
	api.Delete("/products/:id", RequireAdmin(), deps.ProductHandler.Delete)
	api.Get("/categories", deps.CategoryHandler.List)
	api.Post("/categories", RequireAdmin(), deps.CategoryHandler.Create)

	cart := api.Group("/cart", RequireUser())
	cart.Get("/", deps.CartHandler.View)
	cart.Post("/", deps.CartHandler.Add)
	cart.Patch("/", deps.CartHandler.Update)
	cart.Delete("/", deps.CartHandler.Remove)

	orders := api.Group("/orders", RequireUser())
	orders.Post("/", deps.OrderHandler.Place)
	orders.Get("/", deps.OrderHandler.History)

	admin := api.Group("/admin", RequireAdmin())
	admin.Get("/inventory", deps.InventoryHandler.List)
	admin.Put("/inventory", deps.InventoryHandler.Update)
	admin.Get("/orders", deps.AdminHandler.ListOrders)
	admin.Put("/orders/:id", deps.AdminHandler.UpdateOrder)
	admin.Delete("/orders/:id", deps.AdminHandler.DeleteOrder)
	admin.Get("/stats", deps.AdminHandler.ShowStats)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})
	return app
}
