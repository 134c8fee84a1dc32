package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/session"
	"storefront/internal/validate"
)

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

type registerReq struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := bind(c, &req); err != nil {
		return fail(c, "auth.register", err)
	}
	name, okName := validate.Name(req.Name, 100)
	email, okEmail := validate.Email(req.Email)
	switch {
	case !okName:
		return fail(c, "auth.register", domain.Validation("name is required"))
	case !okEmail:
		return fail(c, "auth.register", domain.Validation("email must be a valid email address"))
	case !validate.Password(req.Password):
		return fail(c, "auth.register", domain.Validation("password must be 8-72 characters with upper, lower case and a digit"))
	}

	u, err := h.Auth.Register(c.UserContext(), name, email, req.Password)
	if err != nil {
		if domain.KindOf(err) == domain.KindConflict {
			log.Security(c, "auth.register.duplicate", map[string]any{"email": email})
		}
		return fail(c, "auth.register.fail", err)
	}
	log.Audit(c, "auth.register", map[string]any{"user": u.ID, "email": u.Email})
	return c.Status(fiber.StatusCreated).JSON(u)
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return fail(c, "auth.login", err)
	}
	email, okEmail := validate.Email(req.Email)
	if !okEmail {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return fail(c, "auth.login", domain.Validation("email must be a valid email address"))
	}

	u, tok, exp, err := h.Auth.Login(c.UserContext(), email, req.Password)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if err != nil {
		return fail(c, "auth.login.error", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    tok,
		Path:     "/",
		Expires:  exp,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
	})
	c.Locals("user_id", u.ID)
	log.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	return c.JSON(domain.IdentityOf(u))
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if raw := c.Cookies(session.CookieName); raw != "" {
		if err := h.Auth.Logout(c.UserContext(), raw); err != nil {
			log.Error(c, "auth.logout.fail", err, nil)
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", nil)
	return ok(c)
}

// GET /api/auth/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	out := fiber.Map{"identity": identity(c)}
	if tok, ok := c.Locals("csrf").(string); ok && tok != "" {
		out["csrfToken"] = tok
	}
	return c.JSON(out)
}
