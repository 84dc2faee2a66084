package services

import (
	"context"
	"time"

	"consultancy-backend/models"

	"gorm.io/gorm"
)

type ExpenseInput struct {
	Date        time.Time              `json:"date" validate:"required"`
	Category    models.ExpenseCategory `json:"category" validate:"required,enum"`
	Description string                 `json:"description"`
	Amount      float64                `json:"amount" validate:"gte=0"`
	ProjectID   *string                `json:"project_id"`
}

type ExpensePatch struct {
	Date        *time.Time              `json:"date"`
	Category    *models.ExpenseCategory `json:"category" validate:"omitempty,enum"`
	Description *string                 `json:"description"`
	Amount      *float64                `json:"amount" validate:"omitempty,gte=0"`
	ProjectID   *string                 `json:"project_id"`
}

type ExpenseService struct {
	base
}

func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{base: newBase(db)}
}

func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	if in.Amount < 0 {
		return nil, newValidationError("amount", "must not be negative")
	}
	if !in.Category.IsValid() {
		return nil, newValidationError("category", "unknown expense category %q", in.Category)
	}
	e := &models.Expense{
		Date:        in.Date,
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount,
		ProjectId:   nilIfEmpty(in.ProjectID),
	}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		name, err := projectName(tx, e.ProjectId)
		if err != nil {
			return err
		}
		e.ProjectName = name
		return tx.Create(e).Error
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) Get(ctx context.Context, id string) (*models.Expense, error) {
	return getByID[models.Expense](s.db.WithContext(ctx), "expense", id)
}

func (s *ExpenseService) List(ctx context.Context, filter ListFilter) ([]models.Expense, error) {
	filter.Status = ""
	return listAll[models.Expense](s.db.WithContext(ctx), filter, "date desc")
}

func (s *ExpenseService) Patch(ctx context.Context, id string, updates map[string]any) (*models.Expense, error) {
	if v, ok := updates["amount"].(float64); ok && v < 0 {
		return nil, newValidationError("amount", "must not be negative")
	}
	var out *models.Expense
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := refreshReference(tx, updates, "project_id", "project_name", projectName); err != nil {
			return err
		}
		var err error
		out, err = patchByID[models.Expense](tx, "expense", id, updates)
		return err
	})
	return out, err
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		return deleteByID[models.Expense](tx, "expense", id)
	})
}
