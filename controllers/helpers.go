package controllers

import (
	"consultancy-backend/middlewares"
	"consultancy-backend/services"
	"consultancy-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func listFilter(c *fiber.Ctx) services.ListFilter {
	return services.ListFilter{
		ProjectID: c.Query("project_id"),
		Status:    c.Query("status"),
	}
}

// bindCreate parses, validates and normalizes a create DTO.
func bindCreate(c *fiber.Ctx, dto any) error {
	if err := middlewares.BindAndValidate(c, dto); err != nil {
		return err
	}
	utils.NormalizeDTO(dto)
	return nil
}

// bindPatch parses a pointer DTO and returns the column updates it carries.
func bindPatch(c *fiber.Ctx, dto any) (map[string]any, error) {
	if err := bindCreate(c, dto); err != nil {
		return nil, err
	}
	updates := utils.UpdatesFromPtrDTO(dto, nil)
	if len(updates) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	return updates, nil
}

func listResponse[T any](key string, items []T) fiber.Map {
	return fiber.Map{key: items, "message": "success"}
}
