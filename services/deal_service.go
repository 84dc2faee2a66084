package services

import (
	"context"
	"time"

	"consultancy-backend/models"

	"gorm.io/gorm"
)

type DealInput struct {
	Title             string           `json:"title" validate:"required"`
	ClientID          *string          `json:"client_id"`
	Value             float64          `json:"value" validate:"gte=0"`
	Stage             models.DealStage `json:"stage" validate:"omitempty,enum"`
	ExpectedCloseDate *time.Time       `json:"expected_close_date"`
	Notes             string           `json:"notes"`
}

type DealPatch struct {
	Title             *string           `json:"title" validate:"omitempty,min=1"`
	ClientID          *string           `json:"client_id"`
	Value             *float64          `json:"value" validate:"omitempty,gte=0"`
	Stage             *models.DealStage `json:"stage" validate:"omitempty,enum"`
	ExpectedCloseDate *time.Time        `json:"expected_close_date"`
	Notes             *string           `json:"notes"`
}

type DealService struct {
	base
}

func NewDealService(db *gorm.DB) *DealService {
	return &DealService{base: newBase(db)}
}

func (s *DealService) Create(ctx context.Context, in DealInput) (*models.Deal, error) {
	if in.Title == "" {
		return nil, newValidationError("title", "is required")
	}
	if in.Stage != "" && !in.Stage.IsValid() {
		return nil, newValidationError("stage", "unknown deal stage %q", in.Stage)
	}
	if in.Value < 0 {
		return nil, newValidationError("value", "must not be negative")
	}
	d := &models.Deal{
		Title:             in.Title,
		ClientId:          nilIfEmpty(in.ClientID),
		Value:             in.Value,
		Stage:             in.Stage,
		ExpectedCloseDate: in.ExpectedCloseDate,
		Notes:             in.Notes,
	}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		name, err := clientName(tx, d.ClientId)
		if err != nil {
			return err
		}
		d.ClientName = name
		return tx.Create(d).Error
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DealService) Get(ctx context.Context, id string) (*models.Deal, error) {
	return getByID[models.Deal](s.db.WithContext(ctx), "deal", id)
}

func (s *DealService) List(ctx context.Context) ([]models.Deal, error) {
	return listAll[models.Deal](s.db.WithContext(ctx), ListFilter{}, "created_at desc")
}

func (s *DealService) Patch(ctx context.Context, id string, updates map[string]any) (*models.Deal, error) {
	if v, ok := updates["value"].(float64); ok && v < 0 {
		return nil, newValidationError("value", "must not be negative")
	}
	var out *models.Deal
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := refreshReference(tx, updates, "client_id", "client_name", clientName); err != nil {
			return err
		}
		var err error
		out, err = patchByID[models.Deal](tx, "deal", id, updates)
		return err
	})
	return out, err
}

func (s *DealService) Delete(ctx context.Context, id string) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		return deleteByID[models.Deal](tx, "deal", id)
	})
}
