package services

import (
	"context"

	"consultancy-backend/models"

	"gorm.io/gorm"
)

type ClientInput struct {
	Name    string              `json:"name" validate:"required"`
	Email   string              `json:"email" validate:"omitempty,email"`
	Phone   string              `json:"phone"`
	Company string              `json:"company"`
	Status  models.ClientStatus `json:"status" validate:"omitempty,enum"`
}

type ClientPatch struct {
	Name    *string              `json:"name" validate:"omitempty,min=1"`
	Email   *string              `json:"email" validate:"omitempty,email"`
	Phone   *string              `json:"phone"`
	Company *string              `json:"company"`
	Status  *models.ClientStatus `json:"status" validate:"omitempty,enum"`
}

type ClientService struct {
	base
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{base: newBase(db)}
}

func (s *ClientService) Create(ctx context.Context, in ClientInput) (*models.Client, error) {
	if in.Name == "" {
		return nil, newValidationError("name", "is required")
	}
	c := &models.Client{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Status:  in.Status,
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	return getByID[models.Client](s.db.WithContext(ctx), "client", id)
}

func (s *ClientService) List(ctx context.Context, filter ListFilter) ([]models.Client, error) {
	filter.ProjectID = ""
	return listAll[models.Client](s.db.WithContext(ctx), filter, "name")
}

// Patch updates a client; a rename is copied onto every record that
// denormalizes the client name.
func (s *ClientService) Patch(ctx context.Context, id string, updates map[string]any) (*models.Client, error) {
	if name, ok := updates["name"].(string); ok && name == "" {
		return nil, newValidationError("name", "must not be empty")
	}
	var out *models.Client
	err := s.tx(ctx, func(tx *gorm.DB) error {
		var err error
		out, err = patchByID[models.Client](tx, "client", id, updates)
		if err != nil {
			return err
		}
		if _, renamed := updates["name"]; !renamed {
			return nil
		}
		for _, m := range []any{&models.Project{}, &models.Deal{}, &models.Invoice{}} {
			if err := tx.Model(m).Where("client_id = ?", id).Update("client_name", out.Name).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return out, err
}

// Delete removes a client. Clients that are billed on an invoice cannot be
// deleted; projects and deals lose the reference.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		if _, err := getByID[models.Client](tx, "client", id); err != nil {
			return err
		}
		var invoices int64
		if err := tx.Model(&models.Invoice{}).Where("client_id = ?", id).Count(&invoices).Error; err != nil {
			return err
		}
		if invoices > 0 {
			return newValidationError("client_id", "client has %d invoice(s) and cannot be deleted", invoices)
		}
		detach := map[string]any{"client_id": nil, "client_name": ""}
		for _, m := range []any{&models.Project{}, &models.Deal{}} {
			if err := tx.Model(m).Where("client_id = ?", id).Updates(detach).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.RevenueItem{}).Where("client_id = ?", id).Update("client_id", nil).Error; err != nil {
			return err
		}
		return deleteByID[models.Client](tx, "client", id)
	})
}
