package database

import (
	"fmt"
	"strings"

	"consultancy-backend/models"

	"gorm.io/gorm"
)

// Migrate applies idempotent schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Postgres only: NUMERIC(12,2) money columns and non-negative CHECK constraints
func Migrate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.Client{},
			&models.Project{},
			&models.Task{},
			&models.Deal{},
			&models.Invoice{},
			&models.LineItem{},
			&models.InvoiceVersion{},
			&models.RevenueItem{},
			&models.Expense{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		if tx.Dialector.Name() != "postgres" {
			return nil
		}

		// --- Enforce numeric column scales (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE invoices    ALTER COLUMN subtotal     TYPE numeric(12,2)`,
			`ALTER TABLE invoices    ALTER COLUMN tax_amount   TYPE numeric(12,2)`,
			`ALTER TABLE invoices    ALTER COLUMN total_amount TYPE numeric(12,2)`,
			`ALTER TABLE line_items  ALTER COLUMN quantity     TYPE numeric(12,4)`,
			`ALTER TABLE line_items  ALTER COLUMN unit_price   TYPE numeric(12,4)`,
			`ALTER TABLE line_items  ALTER COLUMN total        TYPE numeric(12,2)`,
			`ALTER TABLE revenue_items ALTER COLUMN amount     TYPE numeric(12,2)`,
			`ALTER TABLE expenses    ALTER COLUMN amount       TYPE numeric(12,2)`,
			`ALTER TABLE deals       ALTER COLUMN value        TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := map[string]string{
			"line_items":    "chk_line_items_nonneg CHECK (quantity >= 0 AND unit_price >= 0)",
			"revenue_items": "chk_revenue_items_amount_nonneg CHECK (amount >= 0)",
			"expenses":      "chk_expenses_amount_nonneg CHECK (amount >= 0)",
			"invoices":      "chk_invoices_tax_rate_range CHECK (tax_rate IS NULL OR (tax_rate >= 0 AND tax_rate <= 1))",
		}
		for table, constraint := range checks {
			name := constraint[:strings.IndexByte(constraint, ' ')]
			stmt := fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = '%s'::regclass
		  AND conname  = '%s'
	) THEN
		ALTER TABLE %s ADD CONSTRAINT %s;
	END IF;
END $$;`, table, name, table, constraint)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed on %s: %w", table, err)
			}
		}

		return nil
	})
}
