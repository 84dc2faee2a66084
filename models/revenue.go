package models

import (
	"time"

	"gorm.io/gorm"
)

type RevenueSource string

const (
	SourceInvoicePayment RevenueSource = "Invoice Payment"
	SourceConsulting     RevenueSource = "Consulting"
	SourceRetainer       RevenueSource = "Retainer"
	SourceProductSale    RevenueSource = "Product Sale"
	SourceOther          RevenueSource = "Other"
)

func (s RevenueSource) IsValid() bool {
	switch s {
	case SourceInvoicePayment, SourceConsulting, SourceRetainer, SourceProductSale, SourceOther:
		return true
	}
	return false
}

// RevenueItem records money received. At most one item may reference a given invoice.
type RevenueItem struct {
	Id          string        `json:"id" gorm:"primaryKey;size:36"`
	Date        time.Time     `json:"date" gorm:"index"`
	Source      RevenueSource `json:"source" gorm:"type:varchar(20);not null"`
	Description string        `json:"description"`
	Amount      float64       `json:"amount" gorm:"type:numeric(12,2)"`
	ProjectId   *string       `json:"project_id" gorm:"size:36;index"`
	ProjectName string        `json:"project_name"`
	ClientId    *string       `json:"client_id" gorm:"size:36;index"`
	InvoiceId   *string       `json:"invoice_id" gorm:"size:36;uniqueIndex"`

	// Kept after the source invoice is deleted.
	SourceInvoiceNumber string `json:"source_invoice_number"`
	SourceDeleted       bool   `json:"source_deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (item *RevenueItem) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&item.Id)
	return
}
