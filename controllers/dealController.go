package controllers

import (
	"consultancy-backend/database"
	"consultancy-backend/services"

	"github.com/gofiber/fiber/v2"
)

func CreateDeal(c *fiber.Ctx) error {
	var in services.DealInput
	if err := bindCreate(c, &in); err != nil {
		return err
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	deal, err := services.NewDealService(db).Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(deal)
}

func GetDeals(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	deals, err := services.NewDealService(db).List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(listResponse("deals", deals))
}

func GetDeal(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	deal, err := services.NewDealService(db).Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(deal)
}

func UpdateDeal(c *fiber.Ctx) error {
	updates, err := bindPatch(c, &services.DealPatch{})
	if err != nil {
		return err
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	deal, err := services.NewDealService(db).Patch(c.UserContext(), c.Params("id"), updates)
	if err != nil {
		return err
	}
	return c.JSON(deal)
}

func DeleteDeal(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	if err := services.NewDealService(db).Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deal deleted"})
}
