package controllers

import (
	"consultancy-backend/database"
	"consultancy-backend/services"

	"github.com/gofiber/fiber/v2"
)

func CreateRevenue(c *fiber.Ctx) error {
	var in services.RevenueInput
	if err := bindCreate(c, &in); err != nil {
		return err
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	item, err := services.NewRevenueService(db).Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func GetRevenueItems(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	items, err := services.NewRevenueService(db).List(c.UserContext(), listFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(listResponse("revenue", items))
}

func GetRevenueItem(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	item, err := services.NewRevenueService(db).Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func UpdateRevenue(c *fiber.Ctx) error {
	updates, err := bindPatch(c, &services.RevenuePatch{})
	if err != nil {
		return err
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	item, err := services.NewRevenueService(db).Patch(c.UserContext(), c.Params("id"), updates)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func DeleteRevenue(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	if err := services.NewRevenueService(db).Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "revenue item deleted"})
}
