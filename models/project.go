package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "Planning"
	ProjectActive    ProjectStatus = "Active"
	ProjectOnHold    ProjectStatus = "On Hold"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectCancelled ProjectStatus = "Cancelled"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

type Project struct {
	Id          string                      `json:"id" gorm:"primaryKey;size:36"`
	Name        string                      `json:"name" gorm:"not null"`
	Description string                      `json:"description"`
	ClientId    *string                     `json:"client_id" gorm:"size:36;index"`
	ClientName  string                      `json:"client_name"`
	Status      ProjectStatus               `json:"status" gorm:"type:varchar(20);not null;default:'Planning'"`
	StartDate   *time.Time                  `json:"start_date"`
	DueDate     *time.Time                  `json:"due_date"`
	TeamMembers datatypes.JSONSlice[string] `json:"team_members"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (project *Project) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&project.Id)
	if project.Status == "" {
		project.Status = ProjectPlanning
	}
	return
}
