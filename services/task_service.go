package services

import (
	"context"
	"time"

	"consultancy-backend/models"

	"gorm.io/gorm"
)

type TaskInput struct {
	Title            string              `json:"title" validate:"required"`
	Description      string              `json:"description"`
	ProjectID        *string             `json:"project_id"`
	Status           models.TaskStatus   `json:"status" validate:"omitempty,enum"`
	Priority         models.TaskPriority `json:"priority" validate:"omitempty,enum"`
	AssignedTo       string              `json:"assigned_to"`
	StartDate        *time.Time          `json:"start_date"`
	DueDate          *time.Time          `json:"due_date"`
	EstimatedCost    *float64            `json:"estimated_cost" validate:"omitempty,gte=0"`
	ActualCost       *float64            `json:"actual_cost" validate:"omitempty,gte=0"`
	PotentialRevenue *float64            `json:"potential_revenue" validate:"omitempty,gte=0"`
}

type TaskPatch struct {
	Title            *string              `json:"title" validate:"omitempty,min=1"`
	Description      *string              `json:"description"`
	ProjectID        *string              `json:"project_id"`
	Status           *models.TaskStatus   `json:"status" validate:"omitempty,enum"`
	Priority         *models.TaskPriority `json:"priority" validate:"omitempty,enum"`
	AssignedTo       *string              `json:"assigned_to"`
	StartDate        *time.Time           `json:"start_date"`
	DueDate          *time.Time           `json:"due_date"`
	EstimatedCost    *float64             `json:"estimated_cost" validate:"omitempty,gte=0"`
	ActualCost       *float64             `json:"actual_cost" validate:"omitempty,gte=0"`
	PotentialRevenue *float64             `json:"potential_revenue" validate:"omitempty,gte=0"`
}

type TaskService struct {
	base
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{base: newBase(db)}
}

func (s *TaskService) Create(ctx context.Context, in TaskInput) (*models.Task, error) {
	var out *models.Task
	err := s.tx(ctx, func(tx *gorm.DB) error {
		var err error
		out, err = createTask(tx, in)
		return err
	})
	return out, err
}

func createTask(tx *gorm.DB, in TaskInput) (*models.Task, error) {
	if in.Title == "" {
		return nil, newValidationError("title", "is required")
	}
	if in.Status != "" && !in.Status.IsValid() {
		return nil, newValidationError("status", "unknown task status %q", in.Status)
	}
	if in.Priority != "" && !in.Priority.IsValid() {
		return nil, newValidationError("priority", "unknown task priority %q", in.Priority)
	}
	for field, v := range map[string]*float64{
		"estimated_cost":    in.EstimatedCost,
		"actual_cost":       in.ActualCost,
		"potential_revenue": in.PotentialRevenue,
	} {
		if v != nil && *v < 0 {
			return nil, newValidationError(field, "must not be negative")
		}
	}

	t := &models.Task{
		Title:            in.Title,
		Description:      in.Description,
		ProjectId:        nilIfEmpty(in.ProjectID),
		Status:           in.Status,
		Priority:         in.Priority,
		AssignedTo:       in.AssignedTo,
		StartDate:        in.StartDate,
		DueDate:          in.DueDate,
		EstimatedCost:    in.EstimatedCost,
		ActualCost:       in.ActualCost,
		PotentialRevenue: in.PotentialRevenue,
	}
	name, err := projectName(tx, t.ProjectId)
	if err != nil {
		return nil, err
	}
	t.ProjectName = name
	if err := tx.Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	return getByID[models.Task](s.db.WithContext(ctx), "task", id)
}

func (s *TaskService) List(ctx context.Context, filter ListFilter) ([]models.Task, error) {
	return listAll[models.Task](s.db.WithContext(ctx), filter, "created_at")
}

func (s *TaskService) Patch(ctx context.Context, id string, updates map[string]any) (*models.Task, error) {
	if title, ok := updates["title"].(string); ok && title == "" {
		return nil, newValidationError("title", "must not be empty")
	}
	var out *models.Task
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := refreshReference(tx, updates, "project_id", "project_name", projectName); err != nil {
			return err
		}
		var err error
		out, err = patchByID[models.Task](tx, "task", id, updates)
		return err
	})
	return out, err
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		return deleteByID[models.Task](tx, "task", id)
	})
}
