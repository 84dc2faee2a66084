package controllers

import (
	"consultancy-backend/database"
	"consultancy-backend/services"
	"consultancy-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func GetFinanceSummary(c *fiber.Ctx) error {
	from, err := utils.ParseDateParam(c.Query("from"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	to, err := utils.ParseDateParamEnd(c.Query("to"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	summary, err := services.NewSummaryService(db).Finance(c.UserContext(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
