package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/session"
)

// Resolve attaches the caller's identity to the request. It never rejects;
// a missing, forged or expired cookie simply leaves the caller anonymous.
func Resolve(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := domain.IdentityOf(nil)
		if raw := c.Cookies(session.CookieName); raw != "" {
			u, err := auth.CurrentUser(c.UserContext(), raw)
			if err != nil {
				applog.Error(c, "auth.session.resolve.fail", err, nil)
			} else if u != nil {
				id = domain.IdentityOf(u)
				c.Locals("user_id", u.ID)
			}
		}
		c.Locals("identity", id)
		return c.Next()
	}
}

func identity(c *fiber.Ctx) domain.Identity {
	if id, ok := c.Locals("identity").(domain.Identity); ok {
		return id
	}
	return domain.IdentityOf(nil)
}

// Authorize checks the caller against a required capability.
func Authorize(c *fiber.Ctx, need domain.Role) error {
	id := identity(c)
	if id.Role.Allows(need) {
		return nil
	}
	if id.Role == domain.RoleAnonymous {
		return domain.ErrUnauthorized
	}
	applog.Security(c, "access.denied", map[string]any{"role": string(id.Role), "need": string(need)})
	return domain.ErrForbidden
}

func require(need domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := Authorize(c, need); err != nil {
			return fail(c, "authz", err)
		}
		return c.Next()
	}
}

func RequireUser() fiber.Handler { return require(domain.RoleUser) }

func RequireAdmin() fiber.Handler { return require(domain.RoleAdmin) }
