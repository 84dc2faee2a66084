package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskToDo       TaskStatus = "To Do"
	TaskInProgress TaskStatus = "In Progress"
	TaskReview     TaskStatus = "Review"
	TaskDone       TaskStatus = "Done"
	TaskBlocked    TaskStatus = "Blocked"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskToDo, TaskInProgress, TaskReview, TaskDone, TaskBlocked:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task belongs to at most one project. A dangling ProjectId is tolerated;
// deleting the project removes its tasks.
type Task struct {
	Id          string       `json:"id" gorm:"primaryKey;size:36"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	ProjectId   *string      `json:"project_id" gorm:"size:36;index"`
	ProjectName string       `json:"project_name"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'To Do'"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(10);not null;default:'Medium'"`
	AssignedTo  string       `json:"assigned_to"`
	StartDate   *time.Time   `json:"start_date"`
	DueDate     *time.Time   `json:"due_date"`

	// Financial estimates, each independent of the others.
	EstimatedCost    *float64 `json:"estimated_cost" gorm:"type:numeric(12,2)"`
	ActualCost       *float64 `json:"actual_cost" gorm:"type:numeric(12,2)"`
	PotentialRevenue *float64 `json:"potential_revenue" gorm:"type:numeric(12,2)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (task *Task) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&task.Id)
	if task.Status == "" {
		task.Status = TaskToDo
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
	return
}
