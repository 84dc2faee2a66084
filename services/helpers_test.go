package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"consultancy-backend/database"
	"consultancy-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 7, 5, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// setupTestDB opens a fresh, migrated in-memory database for one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory(strings.ReplaceAll(uuid.NewString(), "-", ""))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestInvoiceService(db *gorm.DB) *InvoiceService {
	s := NewInvoiceService(db)
	s.SetClock(fixedClock)
	return s
}

func seedClient(t *testing.T, db *gorm.DB, name string) *models.Client {
	t.Helper()
	c, err := NewClientService(db).Create(context.Background(), ClientInput{Name: name})
	require.NoError(t, err)
	return c
}

func seedProject(t *testing.T, db *gorm.DB, name string, clientID *string) *models.Project {
	t.Helper()
	p, err := NewProjectService(db).Create(context.Background(), ProjectInput{Name: name, ClientID: clientID})
	require.NoError(t, err)
	return p
}

// seedInvoice creates the standard 5250.00 invoice: one workshop plus 50 hours.
func seedInvoice(t *testing.T, db *gorm.DB, clientID string, projectID *string) *models.Invoice {
	t.Helper()
	res, err := newTestInvoiceService(db).Create(context.Background(), InvoiceInput{
		ClientID:  clientID,
		ProjectID: projectID,
		IssueDate: fixedNow,
		DueDate:   fixedNow.AddDate(0, 0, 30),
		Items: []LineItemInput{
			{Description: "Discovery workshop", Quantity: 1, UnitPrice: 1500},
			{Description: "Implementation hours", Quantity: 50, UnitPrice: 75},
		},
	})
	require.NoError(t, err)
	return res.Invoice
}

func countRevenueFor(t *testing.T, db *gorm.DB, invoiceID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.RevenueItem{}).Where("invoice_id = ?", invoiceID).Count(&n).Error)
	return n
}
