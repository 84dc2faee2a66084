package middlewares

import (
	"errors"
	"log"

	"consultancy-backend/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber errors (use their status code + message)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// Request validation errors (422 + per-field info)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make(map[string]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}

	var nf *services.NotFoundError
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": nf.Error(),
			"kind":    "not_found",
		})
	}

	var sv *services.ValidationError
	if errors.As(err, &sv) {
		body := fiber.Map{"message": "validation failed", "kind": "validation"}
		if sv.Field != "" {
			body["errors"] = map[string]string{sv.Field: sv.Message}
		} else {
			body["message"] = sv.Message
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(body)
	}

	var ext *services.ExternalServiceError
	if errors.As(err, &ext) {
		log.Printf("external service error: %v", err)
		status := fiber.StatusBadGateway
		if errors.Is(err, services.ErrNoParser) {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"message": ext.Service + " unavailable",
			"kind":    "external_service",
		})
	}

	// Unknown errors (500)
	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
