package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "Draft"
	InvoiceSent      InvoiceStatus = "Sent"
	InvoicePaid      InvoiceStatus = "Paid"
	InvoiceOverdue   InvoiceStatus = "Overdue"
	InvoiceCancelled InvoiceStatus = "Cancelled"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// Invoice is the current/live state of a billing document.
type Invoice struct {
	Id            string  `json:"id" gorm:"primaryKey;size:36"`
	InvoiceNumber string  `json:"invoice_number" gorm:"size:32;not null;uniqueIndex"`
	ClientId      string  `json:"client_id" gorm:"size:36;not null;index"`
	ClientName    string  `json:"client_name"`
	ProjectId     *string `json:"project_id" gorm:"size:36;index"`
	ProjectName   string  `json:"project_name"`

	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date"`

	// Derived from Items and TaxRate on every write.
	Items       []LineItem `json:"items" gorm:"foreignKey:InvoiceId;constraint:OnDelete:CASCADE"`
	Subtotal    float64    `json:"subtotal" gorm:"type:numeric(12,2)"`
	TaxRate     *float64   `json:"tax_rate"`
	TaxAmount   float64    `json:"tax_amount" gorm:"type:numeric(12,2)"`
	TotalAmount float64    `json:"total_amount" gorm:"type:numeric(12,2)"`

	Status      InvoiceStatus `json:"status" gorm:"type:varchar(20);not null;default:'Draft';index"`
	PaymentDate *time.Time    `json:"payment_date"`
	Notes       string        `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (invoice *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&invoice.Id)
	if invoice.Status == "" {
		invoice.Status = InvoiceDraft
	}
	return
}

type LineItem struct {
	Id          uint    `json:"-" gorm:"primaryKey"`
	InvoiceId   string  `json:"-" gorm:"size:36;index"`
	Position    int     `json:"position"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" gorm:"type:numeric(12,4)"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:numeric(12,4)"`
	Total       float64 `json:"total" gorm:"type:numeric(12,2)"`
}

// InvoiceVersion is an immutable snapshot taken before an invoice changes or is deleted.
type InvoiceVersion struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	InvoiceId string         `json:"invoice_id" gorm:"size:36;index:idx_invoice_versions_invoice_version,unique,priority:1"`
	VersionNo int            `json:"version_no" gorm:"not null;index:idx_invoice_versions_invoice_version,unique,priority:2"`
	Reason    string         `json:"reason" gorm:"type:varchar(20)"` // "update" | "status" | "delete"
	Snapshot  datatypes.JSON `json:"snapshot"`
	CreatedAt time.Time      `json:"created_at"`
}
