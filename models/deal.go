package models

import (
	"time"

	"gorm.io/gorm"
)

type DealStage string

const (
	DealLead        DealStage = "Lead"
	DealQualified   DealStage = "Qualified"
	DealProposal    DealStage = "Proposal"
	DealNegotiation DealStage = "Negotiation"
	DealWon         DealStage = "Won"
	DealLost        DealStage = "Lost"
)

func (s DealStage) IsValid() bool {
	switch s {
	case DealLead, DealQualified, DealProposal, DealNegotiation, DealWon, DealLost:
		return true
	}
	return false
}

type Deal struct {
	Id                string     `json:"id" gorm:"primaryKey;size:36"`
	Title             string     `json:"title" gorm:"not null"`
	ClientId          *string    `json:"client_id" gorm:"size:36;index"`
	ClientName        string     `json:"client_name"`
	Value             float64    `json:"value" gorm:"type:numeric(12,2)"`
	Stage             DealStage  `json:"stage" gorm:"type:varchar(20);not null;default:'Lead'"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
	Notes             string     `json:"notes"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (deal *Deal) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&deal.Id)
	if deal.Stage == "" {
		deal.Stage = DealLead
	}
	return
}
