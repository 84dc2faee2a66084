package models

import (
	"time"

	"gorm.io/gorm"
)

type ClientStatus string

const (
	ClientActive   ClientStatus = "Active"
	ClientInactive ClientStatus = "Inactive"
	ClientLead     ClientStatus = "Lead"
)

func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientActive, ClientInactive, ClientLead:
		return true
	}
	return false
}

type Client struct {
	Id        string       `json:"id" gorm:"primaryKey;size:36"`
	Name      string       `json:"name" gorm:"not null"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Company   string       `json:"company"`
	Status    ClientStatus `json:"status" gorm:"type:varchar(10);not null;default:'Active'"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (client *Client) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&client.Id)
	if client.Status == "" {
		client.Status = ClientActive
	}
	return
}
