package services

import (
	"context"
	"time"

	"consultancy-backend/models"
	"consultancy-backend/utils"

	"gorm.io/gorm"
)

// FinanceSummary backs the dashboard's finance view.
type FinanceSummary struct {
	TotalRevenue     float64                      `json:"total_revenue"`
	TotalExpenses    float64                      `json:"total_expenses"`
	Net              float64                      `json:"net"`
	Outstanding      float64                      `json:"outstanding"`
	InvoicesByStatus map[models.InvoiceStatus]int `json:"invoices_by_status"`
}

type SummaryService struct {
	base
}

func NewSummaryService(db *gorm.DB) *SummaryService {
	return &SummaryService{base: newBase(db)}
}

// Finance totals revenue and expenses dated within [from, to] (either bound
// may be nil) and the amount still owed on Sent and Overdue invoices.
func (s *SummaryService) Finance(ctx context.Context, from, to *time.Time) (*FinanceSummary, error) {
	db := s.db.WithContext(ctx)
	out := &FinanceSummary{InvoicesByStatus: map[models.InvoiceStatus]int{}}

	dated := func(q *gorm.DB) *gorm.DB {
		if from != nil {
			q = q.Where("date >= ?", *from)
		}
		if to != nil {
			q = q.Where("date <= ?", *to)
		}
		return q
	}

	if err := dated(db.Model(&models.RevenueItem{})).
		Select("COALESCE(SUM(amount), 0)").Scan(&out.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := dated(db.Model(&models.Expense{})).
		Select("COALESCE(SUM(amount), 0)").Scan(&out.TotalExpenses).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Invoice{}).
		Where("status IN ?", []models.InvoiceStatus{models.InvoiceSent, models.InvoiceOverdue}).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&out.Outstanding).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Status models.InvoiceStatus
		Count  int
	}
	if err := db.Model(&models.Invoice{}).
		Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out.InvoicesByStatus[r.Status] = r.Count
	}

	out.TotalRevenue = utils.Round2(out.TotalRevenue)
	out.TotalExpenses = utils.Round2(out.TotalExpenses)
	out.Outstanding = utils.Round2(out.Outstanding)
	out.Net = utils.Round2(out.TotalRevenue - out.TotalExpenses)
	return out, nil
}
