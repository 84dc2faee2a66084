package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"consultancy-backend/models"

	"gorm.io/gorm"
)

const invoiceNumberRetries = 3

// defaultInvoiceNumber is the first number of a year, and the fallback when the
// latest number cannot be read.
func defaultInvoiceNumber(year int) string {
	return fmt.Sprintf("INV-%d-001", year)
}

// NextInvoiceNumber returns the number the next created invoice would get.
func (s *InvoiceService) NextInvoiceNumber(ctx context.Context) string {
	return nextInvoiceNumber(s.db.WithContext(ctx), s.now())
}

func nextInvoiceNumber(tx *gorm.DB, now time.Time) string {
	year := now.Year()
	prefix := fmt.Sprintf("INV-%d-", year)

	var numbers []string
	err := tx.Model(&models.Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Pluck("invoice_number", &numbers).Error
	if err != nil {
		log.Printf("[INVOICE] latest number lookup failed, using default: %v", err)
		return defaultInvoiceNumber(year)
	}

	// Compare numerically: INV-2024-1000 sorts before INV-2024-999 as text.
	highest := 0
	for _, n := range numbers {
		seq, err := strconv.Atoi(strings.TrimPrefix(n, prefix))
		if err != nil {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}

// withFreshNumber assigns a new invoice number and runs create, retrying with
// an incremental backoff when another writer took the same number.
func withFreshNumber(tx *gorm.DB, now time.Time, inv *models.Invoice, create func() error) error {
	var err error
	for attempt := 0; attempt <= invoiceNumberRetries; attempt++ {
		inv.InvoiceNumber = nextInvoiceNumber(tx, now)
		if err = tx.SavePoint("invoice_number").Error; err != nil {
			return err
		}
		err = create()
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		if rbErr := tx.RollbackTo("invoice_number").Error; rbErr != nil {
			return rbErr
		}
		time.Sleep(time.Duration(50*(attempt+1)) * time.Millisecond)
	}
	return fmt.Errorf("allocate invoice number: %w", err)
}
