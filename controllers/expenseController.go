package controllers

import (
	"consultancy-backend/database"
	"consultancy-backend/services"

	"github.com/gofiber/fiber/v2"
)

func CreateExpense(c *fiber.Ctx) error {
	var in services.ExpenseInput
	if err := bindCreate(c, &in); err != nil {
		return err
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	expense, err := services.NewExpenseService(db).Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

func GetExpenses(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	expenses, err := services.NewExpenseService(db).List(c.UserContext(), listFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(listResponse("expenses", expenses))
}

func GetExpense(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	expense, err := services.NewExpenseService(db).Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(expense)
}

func UpdateExpense(c *fiber.Ctx) error {
	updates, err := bindPatch(c, &services.ExpensePatch{})
	if err != nil {
		return err
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	expense, err := services.NewExpenseService(db).Patch(c.UserContext(), c.Params("id"), updates)
	if err != nil {
		return err
	}
	return c.JSON(expense)
}

func DeleteExpense(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	if err := services.NewExpenseService(db).Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "expense deleted"})
}
