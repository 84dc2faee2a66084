package controllers

import (
	"consultancy-backend/database"
	"consultancy-backend/services"

	"github.com/gofiber/fiber/v2"
)

func CreateProject(c *fiber.Ctx) error {
	var in services.ProjectInput
	if err := bindCreate(c, &in); err != nil {
		return err
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	project, err := services.NewProjectService(db).Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func GetProjects(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	projects, err := services.NewProjectService(db).List(c.UserContext(), listFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(listResponse("projects", projects))
}

func GetProject(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	project, err := services.NewProjectService(db).Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(project)
}

func UpdateProject(c *fiber.Ctx) error {
	updates, err := bindPatch(c, &services.ProjectPatch{})
	if err != nil {
		return err
	}
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	project, err := services.NewProjectService(db).Patch(c.UserContext(), c.Params("id"), updates)
	if err != nil {
		return err
	}
	return c.JSON(project)
}

// DeleteProject deletes the project and its tasks, and detaches its financial records.
func DeleteProject(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	result, err := services.NewProjectService(db).Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "project deleted", "result": result})
}
