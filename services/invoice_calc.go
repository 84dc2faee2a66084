package services

import (
	"math"

	"consultancy-backend/models"

	"github.com/shopspring/decimal"
)

// LineItemInput is one billable row as submitted by a caller.
type LineItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

// Totals is the result of CalculateTotals.
type Totals struct {
	Items       []models.LineItem
	Subtotal    float64
	TaxAmount   float64
	TotalAmount float64
}

// lineItemScale matches the numeric(12,4) quantity and unit_price columns.
const lineItemScale = 4

// CalculateTotals prices the line items and applies taxRate. A nil or NaN rate
// counts as zero. Quantity and unit price are rounded to the stored scale
// before pricing, so recomputing from stored items gives the same totals.
// Line totals are rounded to cents before summing, so the subtotal always
// equals the sum of the stored line totals.
func CalculateTotals(items []LineItemInput, taxRate *float64) (Totals, error) {
	rate, err := effectiveTaxRate(taxRate)
	if err != nil {
		return Totals{}, err
	}

	out := make([]models.LineItem, 0, len(items))
	subtotal := decimal.Zero
	for i, in := range items {
		if !finite(in.Quantity) || in.Quantity < 0 {
			return Totals{}, newValidationError("items", "quantity at index %d must be a non-negative number", i)
		}
		if !finite(in.UnitPrice) || in.UnitPrice < 0 {
			return Totals{}, newValidationError("items", "unit price at index %d must be a non-negative number", i)
		}
		qty := decimal.NewFromFloat(in.Quantity).Round(lineItemScale)
		price := decimal.NewFromFloat(in.UnitPrice).Round(lineItemScale)
		total := qty.Mul(price).Round(2)
		subtotal = subtotal.Add(total)
		out = append(out, models.LineItem{
			Position:    i,
			Description: in.Description,
			Quantity:    qty.InexactFloat64(),
			UnitPrice:   price.InexactFloat64(),
			Total:       total.InexactFloat64(),
		})
	}

	tax := subtotal.Mul(rate).Round(2)
	return Totals{
		Items:       out,
		Subtotal:    subtotal.InexactFloat64(),
		TaxAmount:   tax.InexactFloat64(),
		TotalAmount: subtotal.Add(tax).InexactFloat64(),
	}, nil
}

func effectiveTaxRate(taxRate *float64) (decimal.Decimal, error) {
	if taxRate == nil || math.IsNaN(*taxRate) {
		return decimal.Zero, nil
	}
	if math.IsInf(*taxRate, 0) || *taxRate < 0 || *taxRate > 1 {
		return decimal.Zero, newValidationError("tax_rate", "must be between 0 and 1")
	}
	return decimal.NewFromFloat(*taxRate), nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
