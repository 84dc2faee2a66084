package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"consultancy-backend/models"

	"gorm.io/gorm"
)

// RevenueInput creates a manually recorded revenue item.
type RevenueInput struct {
	Date        time.Time            `json:"date" validate:"required"`
	Source      models.RevenueSource `json:"source" validate:"required,enum"`
	Description string               `json:"description"`
	Amount      float64              `json:"amount" validate:"gte=0"`
	ProjectID   *string              `json:"project_id"`
	ClientID    *string              `json:"client_id"`
}

// RevenuePatch updates only the fields that are set.
type RevenuePatch struct {
	Date        *time.Time            `json:"date"`
	Source      *models.RevenueSource `json:"source" validate:"omitempty,enum"`
	Description *string               `json:"description"`
	Amount      *float64              `json:"amount" validate:"omitempty,gte=0"`
	ProjectID   *string               `json:"project_id"`
	ClientID    *string               `json:"client_id"`
}

type RevenueService struct {
	base
}

func NewRevenueService(db *gorm.DB) *RevenueService {
	return &RevenueService{base: newBase(db)}
}

// GenerateFromInvoice creates the revenue item for an invoice unless one already
// exists. It never creates a second item for the same invoice; created is false
// when the existing item is returned.
func (s *RevenueService) GenerateFromInvoice(ctx context.Context, invoiceID string) (item *models.RevenueItem, created bool, err error) {
	err = s.tx(ctx, func(tx *gorm.DB) error {
		inv, err := getByID[models.Invoice](tx, "invoice", invoiceID)
		if err != nil {
			return err
		}
		item, created, err = generateRevenue(tx, inv, s.now())
		return err
	})
	return item, created, err
}

// generateRevenue is the lookup-before-create shared by manual generation and
// the Paid transition. It must run inside the caller's transaction.
func generateRevenue(tx *gorm.DB, inv *models.Invoice, now time.Time) (*models.RevenueItem, bool, error) {
	existing, err := revenueForInvoice(tx, inv.Id)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	date := now
	if inv.PaymentDate != nil {
		date = *inv.PaymentDate
	}
	invoiceID := inv.Id
	item := &models.RevenueItem{
		Date:                date,
		Source:              models.SourceInvoicePayment,
		Description:         fmt.Sprintf("Payment for Invoice %s", inv.InvoiceNumber),
		Amount:              inv.TotalAmount,
		ProjectId:           inv.ProjectId,
		ProjectName:         inv.ProjectName,
		ClientId:            &inv.ClientId,
		InvoiceId:           &invoiceID,
		SourceInvoiceNumber: inv.InvoiceNumber,
	}

	// The unique index on invoice_id backs up the lookup above.
	if err := tx.SavePoint("revenue_insert").Error; err != nil {
		return nil, false, err
	}
	if err := tx.Create(item).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, err
		}
		if err := tx.RollbackTo("revenue_insert").Error; err != nil {
			return nil, false, err
		}
		existing, err := revenueForInvoice(tx, inv.Id)
		if err != nil || existing == nil {
			return nil, false, fmt.Errorf("revenue for invoice %s: %w", inv.Id, err)
		}
		return existing, false, nil
	}
	return item, true, nil
}

func revenueForInvoice(tx *gorm.DB, invoiceID string) (*models.RevenueItem, error) {
	var items []models.RevenueItem
	if err := tx.Where("invoice_id = ?", invoiceID).Limit(1).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

var errInvoicePaymentSource = newValidationError("source", "invoice payments are generated from invoices")

func isInvoicePaymentSource(v any) bool {
	switch src := v.(type) {
	case models.RevenueSource:
		return src == models.SourceInvoicePayment
	case *models.RevenueSource:
		return src != nil && *src == models.SourceInvoicePayment
	case string:
		return models.RevenueSource(src) == models.SourceInvoicePayment
	}
	return false
}

func (s *RevenueService) Create(ctx context.Context, in RevenueInput) (*models.RevenueItem, error) {
	if in.Amount < 0 {
		return nil, newValidationError("amount", "must not be negative")
	}
	if in.Source == models.SourceInvoicePayment {
		return nil, errInvoicePaymentSource
	}
	item := &models.RevenueItem{
		Date:        in.Date,
		Source:      in.Source,
		Description: in.Description,
		Amount:      in.Amount,
		ProjectId:   nilIfEmpty(in.ProjectID),
		ClientId:    nilIfEmpty(in.ClientID),
	}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		name, err := projectName(tx, item.ProjectId)
		if err != nil {
			return err
		}
		if _, err := clientName(tx, item.ClientId); err != nil {
			return err
		}
		item.ProjectName = name
		return tx.Create(item).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *RevenueService) Get(ctx context.Context, id string) (*models.RevenueItem, error) {
	return getByID[models.RevenueItem](s.db.WithContext(ctx), "revenue item", id)
}

func (s *RevenueService) List(ctx context.Context, filter ListFilter) ([]models.RevenueItem, error) {
	filter.Status = ""
	return listAll[models.RevenueItem](s.db.WithContext(ctx), filter, "date desc")
}

func (s *RevenueService) Patch(ctx context.Context, id string, updates map[string]any) (*models.RevenueItem, error) {
	if v, ok := updates["amount"].(float64); ok && v < 0 {
		return nil, newValidationError("amount", "must not be negative")
	}
	if isInvoicePaymentSource(updates["source"]) {
		return nil, errInvoicePaymentSource
	}
	var out *models.RevenueItem
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := refreshReference(tx, updates, "project_id", "project_name", projectName); err != nil {
			return err
		}
		if raw, ok := updates["client_id"]; ok {
			id, _ := raw.(string)
			if id == "" {
				updates["client_id"] = nil
			} else if _, err := clientName(tx, &id); err != nil {
				return err
			}
		}
		var err error
		out, err = patchByID[models.RevenueItem](tx, "revenue item", id, updates)
		return err
	})
	return out, err
}

func (s *RevenueService) Delete(ctx context.Context, id string) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		return deleteByID[models.RevenueItem](tx, "revenue item", id)
	})
}
