package services

import (
	"context"
	"time"

	"consultancy-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectInput struct {
	Name        string               `json:"name" validate:"required"`
	Description string               `json:"description"`
	ClientID    *string              `json:"client_id"`
	Status      models.ProjectStatus `json:"status" validate:"omitempty,enum"`
	StartDate   *time.Time           `json:"start_date"`
	DueDate     *time.Time           `json:"due_date"`
	TeamMembers []string             `json:"team_members"`
}

type ProjectPatch struct {
	Name        *string               `json:"name" validate:"omitempty,min=1"`
	Description *string               `json:"description"`
	ClientID    *string               `json:"client_id"`
	Status      *models.ProjectStatus `json:"status" validate:"omitempty,enum"`
	StartDate   *time.Time            `json:"start_date"`
	DueDate     *time.Time            `json:"due_date"`
	TeamMembers *[]string             `json:"team_members"`
}

type ProjectService struct {
	base
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{base: newBase(db)}
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*models.Project, error) {
	var out *models.Project
	err := s.tx(ctx, func(tx *gorm.DB) error {
		var err error
		out, err = createProject(tx, in)
		return err
	})
	return out, err
}

func createProject(tx *gorm.DB, in ProjectInput) (*models.Project, error) {
	if in.Status != "" && !in.Status.IsValid() {
		return nil, newValidationError("status", "unknown project status %q", in.Status)
	}
	p := &models.Project{
		Name:        in.Name,
		Description: in.Description,
		ClientId:    nilIfEmpty(in.ClientID),
		Status:      in.Status,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
		TeamMembers: datatypes.NewJSONSlice(nonNil(in.TeamMembers)),
	}
	if p.Name == "" {
		return nil, newValidationError("name", "is required")
	}
	name, err := clientName(tx, p.ClientId)
	if err != nil {
		return nil, err
	}
	p.ClientName = name
	if err := tx.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return getByID[models.Project](s.db.WithContext(ctx), "project", id)
}

func (s *ProjectService) List(ctx context.Context, filter ListFilter) ([]models.Project, error) {
	filter.ProjectID = ""
	return listAll[models.Project](s.db.WithContext(ctx), filter, "created_at desc")
}

// Patch updates a project. A rename is copied onto the denormalized
// project_name of every record that references the project.
func (s *ProjectService) Patch(ctx context.Context, id string, updates map[string]any) (*models.Project, error) {
	if name, ok := updates["name"].(string); ok && name == "" {
		return nil, newValidationError("name", "must not be empty")
	}
	if members, ok := updates["team_members"].([]string); ok {
		updates["team_members"] = datatypes.NewJSONSlice(members)
	}
	var out *models.Project
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := refreshReference(tx, updates, "client_id", "client_name", clientName); err != nil {
			return err
		}
		var err error
		out, err = patchByID[models.Project](tx, "project", id, updates)
		if err != nil {
			return err
		}
		if _, renamed := updates["name"]; !renamed {
			return nil
		}
		for _, m := range []any{&models.Task{}, &models.Invoice{}, &models.Expense{}, &models.RevenueItem{}} {
			if err := tx.Model(m).Where("project_id = ?", id).Update("project_name", out.Name).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return out, err
}

// Delete removes a project. Its tasks are deleted with it; invoices, expenses
// and revenue items are kept and only lose the project reference, so financial
// history survives.
func (s *ProjectService) Delete(ctx context.Context, id string) (*ProjectDetach, error) {
	out := &ProjectDetach{}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if _, err := getByID[models.Project](tx, "project", id); err != nil {
			return err
		}

		res := tx.Where("project_id = ?", id).Delete(&models.Task{})
		if res.Error != nil {
			return res.Error
		}
		out.TasksDeleted = res.RowsAffected

		detach := map[string]any{"project_id": nil, "project_name": ""}
		counts := []*int64{&out.InvoicesDetached, &out.ExpensesDetached, &out.RevenueDetached}
		for i, m := range []any{&models.Invoice{}, &models.Expense{}, &models.RevenueItem{}} {
			res := tx.Model(m).Where("project_id = ?", id).Updates(detach)
			if res.Error != nil {
				return res.Error
			}
			*counts[i] = res.RowsAffected
		}

		return deleteByID[models.Project](tx, "project", id)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
