package controllers

import (
	"consultancy-backend/database"
	"consultancy-backend/middlewares"
	"consultancy-backend/planner"
	"consultancy-backend/services"

	"github.com/gofiber/fiber/v2"
)

type planTextRequest struct {
	Text string `json:"text"`
}

// planImportRequest takes either free text for the parser or an already
// structured plan.
type planImportRequest struct {
	Text string        `json:"text"`
	Plan *planner.Plan `json:"plan"`
}

// ParsePlan returns a handler that turns plan text into a structured plan
// without writing anything.
func ParsePlan(parser planner.Parser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req planTextRequest
		if err := middlewares.BindAndValidate(c, &req); err != nil {
			return err
		}
		db, err := database.FromCtx(c)
		if err != nil {
			return err
		}
		plan, err := services.NewPlanService(db, parser).Parse(c.UserContext(), req.Text)
		if err != nil {
			return err
		}
		return c.JSON(plan)
	}
}

func ImportPlan(parser planner.Parser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req planImportRequest
		if err := middlewares.BindAndValidate(c, &req); err != nil {
			return err
		}
		db, err := database.FromCtx(c)
		if err != nil {
			return err
		}
		svc := services.NewPlanService(db, parser)
		var res *services.PlanResult
		if req.Plan != nil {
			res, err = svc.Import(c.UserContext(), req.Plan)
		} else {
			res, err = svc.ImportText(c.UserContext(), req.Text)
		}
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}
