package database

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FromCtx returns the shared DB bound to the request's context, so a client
// disconnect cancels in-flight queries.
func FromCtx(c *fiber.Ctx) (*gorm.DB, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	return DB.WithContext(c.UserContext()), nil
}
