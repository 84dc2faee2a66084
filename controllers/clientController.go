package controllers

import (
	"consultancy-backend/database"
	"consultancy-backend/services"

	"github.com/gofiber/fiber/v2"
)

func CreateClient(c *fiber.Ctx) error {
	var in services.ClientInput
	if err := bindCreate(c, &in); err != nil {
		return err
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	client, err := services.NewClientService(db).Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func GetClients(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	clients, err := services.NewClientService(db).List(c.UserContext(), listFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(listResponse("clients", clients))
}

func GetClient(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	client, err := services.NewClientService(db).Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(client)
}

func UpdateClient(c *fiber.Ctx) error {
	updates, err := bindPatch(c, &services.ClientPatch{})
	if err != nil {
		return err
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	client, err := services.NewClientService(db).Patch(c.UserContext(), c.Params("id"), updates)
	if err != nil {
		return err
	}
	return c.JSON(client)
}

func DeleteClient(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	if err := services.NewClientService(db).Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "client deleted"})
}
