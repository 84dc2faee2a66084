package models

import (
	"time"

	"gorm.io/gorm"
)

type ExpenseCategory string

const (
	ExpenseSoftware    ExpenseCategory = "Software"
	ExpenseHardware    ExpenseCategory = "Hardware"
	ExpenseTravel      ExpenseCategory = "Travel"
	ExpenseOffice      ExpenseCategory = "Office"
	ExpenseMarketing   ExpenseCategory = "Marketing"
	ExpenseContractors ExpenseCategory = "Contractors"
	ExpenseOther       ExpenseCategory = "Other"
)

func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseSoftware, ExpenseHardware, ExpenseTravel, ExpenseOffice,
		ExpenseMarketing, ExpenseContractors, ExpenseOther:
		return true
	}
	return false
}

type Expense struct {
	Id          string          `json:"id" gorm:"primaryKey;size:36"`
	Date        time.Time       `json:"date" gorm:"index"`
	Category    ExpenseCategory `json:"category" gorm:"type:varchar(20);not null"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount" gorm:"type:numeric(12,2)"`
	ProjectId   *string         `json:"project_id" gorm:"size:36;index"`
	ProjectName string          `json:"project_name"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (expense *Expense) BeforeCreate(tx *gorm.DB) (err error) {
	assignID(&expense.Id)
	return
}
