package services

import (
	"context"
	"encoding/json"
	"time"

	"consultancy-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceInput creates an invoice. Totals are always computed here; any totals
// a client sends are ignored.
type InvoiceInput struct {
	ClientID  string               `json:"client_id" validate:"required"`
	ProjectID *string              `json:"project_id"`
	IssueDate time.Time            `json:"issue_date" validate:"required"`
	DueDate   time.Time            `json:"due_date" validate:"required"`
	Items     []LineItemInput      `json:"items" validate:"dive"`
	TaxRate   *float64             `json:"tax_rate" validate:"omitempty,gte=0,lte=1"`
	Status    models.InvoiceStatus `json:"status" validate:"omitempty,enum"`
	// Only used when Status is Paid.
	PaymentDate *time.Time `json:"payment_date"`
	Notes       string     `json:"notes"`
}

// InvoicePatch updates only the fields that are set. The invoice number never changes.
type InvoicePatch struct {
	ClientID    *string               `json:"client_id"`
	ProjectID   *string               `json:"project_id"`
	IssueDate   *time.Time            `json:"issue_date"`
	DueDate     *time.Time            `json:"due_date"`
	Items       *[]LineItemInput      `json:"items" validate:"omitempty,dive"`
	TaxRate     *float64              `json:"tax_rate" validate:"omitempty,gte=0,lte=1"`
	Status      *models.InvoiceStatus `json:"status" validate:"omitempty,enum"`
	PaymentDate *time.Time            `json:"payment_date"`
	Notes       *string               `json:"notes"`
}

// StatusChange is the outcome of a status transition. Revenue is set whenever
// the invoice ended up Paid.
type StatusChange struct {
	Invoice        *models.Invoice     `json:"invoice"`
	Revenue        *models.RevenueItem `json:"revenue,omitempty"`
	RevenueCreated bool                `json:"revenue_created"`
}

// ProjectDetach counts the records touched when a project is deleted.
type ProjectDetach struct {
	TasksDeleted     int64 `json:"tasks_deleted"`
	InvoicesDetached int64 `json:"invoices_detached"`
	ExpensesDetached int64 `json:"expenses_detached"`
	RevenueDetached  int64 `json:"revenue_detached"`
}

type InvoiceService struct {
	base
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{base: newBase(db)}
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*models.Invoice, error) {
	return loadInvoice(s.db.WithContext(ctx), id)
}

func (s *InvoiceService) List(ctx context.Context, filter ListFilter) ([]models.Invoice, error) {
	out := []models.Invoice{}
	q := filter.apply(s.db.WithContext(ctx).Model(&models.Invoice{}))
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("issue_date desc").Order("invoice_number desc").
		Find(&out).Error
	return out, err
}

// Create stores a new invoice with a freshly allocated number. Creating an
// invoice directly as Paid behaves like SetStatus(Paid) right after.
func (s *InvoiceService) Create(ctx context.Context, in InvoiceInput) (*StatusChange, error) {
	if in.Status != "" && !in.Status.IsValid() {
		return nil, newValidationError("status", "unknown invoice status %q", in.Status)
	}
	totals, err := CalculateTotals(in.Items, in.TaxRate)
	if err != nil {
		return nil, err
	}

	inv := &models.Invoice{
		ClientId:    in.ClientID,
		ProjectId:   nilIfEmpty(in.ProjectID),
		IssueDate:   in.IssueDate,
		DueDate:     in.DueDate,
		Items:       totals.Items,
		Subtotal:    totals.Subtotal,
		TaxRate:     in.TaxRate,
		TaxAmount:   totals.TaxAmount,
		TotalAmount: totals.TotalAmount,
		Status:      in.Status,
		Notes:       in.Notes,
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceDraft
	}

	out := &StatusChange{}
	err = s.tx(ctx, func(tx *gorm.DB) error {
		if err := s.resolveNames(tx, inv); err != nil {
			return err
		}
		if inv.Status == models.InvoicePaid {
			inv.PaymentDate = paymentDate(in.PaymentDate, s.now())
		}
		err := withFreshNumber(tx, s.now(), inv, func() error {
			return tx.Create(inv).Error
		})
		if err != nil {
			return err
		}
		out.Invoice = inv
		if inv.Status == models.InvoicePaid {
			out.Revenue, out.RevenueCreated, err = generateRevenue(tx, inv, s.now())
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a patch. Line items and tax rate changes recompute every total;
// a status change goes through the same rules as SetStatus.
func (s *InvoiceService) Update(ctx context.Context, id string, p InvoicePatch) (*StatusChange, error) {
	if p.Status != nil && !p.Status.IsValid() {
		return nil, newValidationError("status", "unknown invoice status %q", *p.Status)
	}
	out := &StatusChange{}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		inv, err := loadInvoice(tx, id)
		if err != nil {
			return err
		}
		if err := snapshotInvoice(tx, inv, "update"); err != nil {
			return err
		}

		if p.ClientID != nil {
			inv.ClientId = *p.ClientID
		}
		if p.ProjectID != nil {
			inv.ProjectId = nilIfEmpty(p.ProjectID)
		}
		if err := s.resolveNames(tx, inv); err != nil {
			return err
		}
		if p.IssueDate != nil {
			inv.IssueDate = *p.IssueDate
		}
		if p.DueDate != nil {
			inv.DueDate = *p.DueDate
		}
		if p.Notes != nil {
			inv.Notes = *p.Notes
		}

		if p.Items != nil || p.TaxRate != nil {
			items := existingItems(inv.Items)
			if p.Items != nil {
				items = *p.Items
			}
			if p.TaxRate != nil {
				inv.TaxRate = p.TaxRate
			}
			totals, err := CalculateTotals(items, inv.TaxRate)
			if err != nil {
				return err
			}
			if err := tx.Where("invoice_id = ?", inv.Id).Delete(&models.LineItem{}).Error; err != nil {
				return err
			}
			for i := range totals.Items {
				totals.Items[i].InvoiceId = inv.Id
			}
			if len(totals.Items) > 0 {
				if err := tx.Create(&totals.Items).Error; err != nil {
					return err
				}
			}
			inv.Items = totals.Items
			inv.Subtotal = totals.Subtotal
			inv.TaxAmount = totals.TaxAmount
			inv.TotalAmount = totals.TotalAmount
		}

		if err := tx.Omit(clause.Associations).Save(inv).Error; err != nil {
			return err
		}

		if p.Status != nil {
			*out, err = s.applyStatus(tx, inv, *p.Status, p.PaymentDate)
			return err
		}
		out.Invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus moves an invoice to newStatus. Any status may follow any other.
// Moving to Paid stamps the payment date (override or now) when it is not set
// yet and ensures exactly one revenue item exists for the invoice. Leaving Paid
// keeps the payment date.
func (s *InvoiceService) SetStatus(ctx context.Context, id string, newStatus models.InvoiceStatus, paymentDateOverride *time.Time) (*StatusChange, error) {
	if !newStatus.IsValid() {
		return nil, newValidationError("status", "unknown invoice status %q", newStatus)
	}
	var out StatusChange
	err := s.tx(ctx, func(tx *gorm.DB) error {
		inv, err := loadInvoice(tx, id)
		if err != nil {
			return err
		}
		if inv.Status != newStatus {
			if err := snapshotInvoice(tx, inv, "status"); err != nil {
				return err
			}
		}
		out, err = s.applyStatus(tx, inv, newStatus, paymentDateOverride)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *InvoiceService) applyStatus(tx *gorm.DB, inv *models.Invoice, newStatus models.InvoiceStatus, override *time.Time) (StatusChange, error) {
	updates := map[string]any{"status": newStatus}
	inv.Status = newStatus
	if newStatus == models.InvoicePaid && (inv.PaymentDate == nil || override != nil) {
		inv.PaymentDate = paymentDate(override, s.now())
		updates["payment_date"] = inv.PaymentDate
	}
	if err := tx.Model(&models.Invoice{}).Where("id = ?", inv.Id).Updates(updates).Error; err != nil {
		return StatusChange{}, err
	}

	out := StatusChange{Invoice: inv}
	if newStatus == models.InvoicePaid {
		var err error
		out.Revenue, out.RevenueCreated, err = generateRevenue(tx, inv, s.now())
		if err != nil {
			return StatusChange{}, err
		}
		if override != nil && !out.RevenueCreated && !out.Revenue.Date.Equal(*inv.PaymentDate) {
			if err := syncRevenueDate(tx, out.Revenue, *inv.PaymentDate); err != nil {
				return StatusChange{}, err
			}
		}
	}
	return out, nil
}

// syncRevenueDate keeps an invoice's revenue item dated on its payment date
// after the payment date was replaced.
func syncRevenueDate(tx *gorm.DB, item *models.RevenueItem, date time.Time) error {
	if err := tx.Model(&models.RevenueItem{}).Where("id = ?", item.Id).Update("date", date).Error; err != nil {
		return err
	}
	item.Date = date
	return nil
}

// GenerateRevenue is the manual entry point for revenue generation, for
// invoices marked Paid before generation existed or whose generation failed.
func (s *InvoiceService) GenerateRevenue(ctx context.Context, id string) (*models.RevenueItem, bool, error) {
	rs := &RevenueService{base: s.base}
	return rs.GenerateFromInvoice(ctx, id)
}

// Delete removes the invoice and its line items. Revenue items generated from
// it survive with the invoice reference cleared and SourceDeleted set.
func (s *InvoiceService) Delete(ctx context.Context, id string) (int64, error) {
	var detached int64
	err := s.tx(ctx, func(tx *gorm.DB) error {
		inv, err := loadInvoice(tx, id)
		if err != nil {
			return err
		}
		if err := snapshotInvoice(tx, inv, "delete"); err != nil {
			return err
		}
		res := tx.Model(&models.RevenueItem{}).
			Where("invoice_id = ?", id).
			Updates(map[string]any{
				"invoice_id":            nil,
				"source_deleted":        true,
				"source_invoice_number": inv.InvoiceNumber,
			})
		if res.Error != nil {
			return res.Error
		}
		detached = res.RowsAffected
		if err := tx.Where("invoice_id = ?", id).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		return deleteByID[models.Invoice](tx, "invoice", id)
	})
	return detached, err
}

// Versions lists the stored snapshots of an invoice, oldest first.
func (s *InvoiceService) Versions(ctx context.Context, id string) ([]models.InvoiceVersion, error) {
	out := []models.InvoiceVersion{}
	err := s.db.WithContext(ctx).Where("invoice_id = ?", id).Order("version_no").Find(&out).Error
	return out, err
}

func (s *InvoiceService) resolveNames(tx *gorm.DB, inv *models.Invoice) error {
	if inv.ClientId == "" {
		return newValidationError("client_id", "is required")
	}
	cName, err := clientName(tx, &inv.ClientId)
	if err != nil {
		return err
	}
	pName, err := projectName(tx, inv.ProjectId)
	if err != nil {
		return err
	}
	inv.ClientName = cName
	inv.ProjectName = pName
	return nil
}

func loadInvoice(tx *gorm.DB, id string) (*models.Invoice, error) {
	var inv models.Invoice
	err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("id = ?", id).First(&inv).Error
	if err != nil {
		return nil, notFoundOr(err, "invoice", id)
	}
	return &inv, nil
}

// snapshotInvoice stores the invoice as it is before a change.
func snapshotInvoice(tx *gorm.DB, inv *models.Invoice, reason string) error {
	blob, err := json.Marshal(inv)
	if err != nil {
		return err
	}
	var last int
	if err := tx.Model(&models.InvoiceVersion{}).
		Where("invoice_id = ?", inv.Id).
		Select("COALESCE(MAX(version_no), 0)").
		Scan(&last).Error; err != nil {
		return err
	}
	return tx.Create(&models.InvoiceVersion{
		InvoiceId: inv.Id,
		VersionNo: last + 1,
		Reason:    reason,
		Snapshot:  blob,
	}).Error
}

func existingItems(items []models.LineItem) []LineItemInput {
	out := make([]LineItemInput, len(items))
	for i, it := range items {
		out[i] = LineItemInput{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return out
}

func paymentDate(override *time.Time, now time.Time) *time.Time {
	if override != nil {
		d := *override
		return &d
	}
	return &now
}
