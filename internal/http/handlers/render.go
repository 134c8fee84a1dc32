package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/validate"
)

const genericError = "Something went wrong. Please try again."

func statusOf(k domain.Kind) int {
	switch k {
	case domain.KindValidation, domain.KindConflict:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes err as a JSON error body. Unclassified errors are logged under
// action and replaced by a generic message.
func fail(c *fiber.Ctx, action string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return c.Status(statusOf(de.Kind)).JSON(fiber.Map{"error": de.Msg})
	}
	c.Status(fiber.StatusInternalServerError)
	applog.Error(c, action, err, nil)
	return c.JSON(fiber.Map{"error": genericError})
}

// bind decodes the JSON body into dst and checks its validate tags.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.Validation("invalid JSON body")
	}
	return validate.Struct(dst)
}

func ok(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) }

// ErrorHandler is the app-wide fallback for errors that escaped a handler.
// Fiber errors keep their status; anything else becomes a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fe.Code).JSON(fiber.Map{"error": genericError})
		}
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return c.Status(statusOf(de.Kind)).JSON(fiber.Map{"error": de.Msg})
	}
	c.Status(fiber.StatusInternalServerError)
	applog.Error(c, "server.error", err, nil)
	return c.JSON(fiber.Map{"error": genericError})
}
