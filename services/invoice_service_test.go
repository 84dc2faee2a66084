package services

import (
	"context"
	"testing"
	"time"

	"consultancy-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceService_PaidGeneratesRevenueOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	client := seedClient(t, db, "Acme GmbH")
	project := seedProject(t, db, "Website Relaunch", &client.Id)
	inv := seedInvoice(t, db, client.Id, &project.Id)

	assert.Equal(t, "INV-2024-001", inv.InvoiceNumber)
	assert.Equal(t, models.InvoiceDraft, inv.Status)
	assert.Equal(t, 5250.0, inv.TotalAmount)
	assert.Equal(t, "Acme GmbH", inv.ClientName)
	assert.Equal(t, "Website Relaunch", inv.ProjectName)

	svc := newTestInvoiceService(db)
	res, err := svc.SetStatus(ctx, inv.Id, models.InvoicePaid, nil)
	require.NoError(t, err)
	require.NotNil(t, res.Revenue)
	assert.True(t, res.RevenueCreated)
	assert.Equal(t, 5250.0, res.Revenue.Amount)
	assert.Equal(t, models.SourceInvoicePayment, res.Revenue.Source)
	assert.Equal(t, "Payment for Invoice INV-2024-001", res.Revenue.Description)
	assert.Equal(t, project.Id, *res.Revenue.ProjectId)
	assert.Equal(t, client.Id, *res.Revenue.ClientId)
	assert.True(t, fixedNow.Equal(res.Revenue.Date))
	require.NotNil(t, res.Invoice.PaymentDate)
	assert.True(t, fixedNow.Equal(*res.Invoice.PaymentDate))

	again, err := svc.SetStatus(ctx, inv.Id, models.InvoicePaid, nil)
	require.NoError(t, err)
	assert.False(t, again.RevenueCreated)
	assert.Equal(t, res.Revenue.Id, again.Revenue.Id)

	item, created, err := svc.GenerateRevenue(ctx, inv.Id)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, res.Revenue.Id, item.Id)

	assert.EqualValues(t, 1, countRevenueFor(t, db, inv.Id))
}

func TestInvoiceService_NonPaidTransitionsCreateNothing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	client := seedClient(t, db, "Acme")
	inv := seedInvoice(t, db, client.Id, nil)
	svc := newTestInvoiceService(db)

	for _, st := range []models.InvoiceStatus{models.InvoiceSent, models.InvoiceOverdue, models.InvoiceCancelled, models.InvoiceDraft} {
		res, err := svc.SetStatus(ctx, inv.Id, st, nil)
		require.NoError(t, err)
		assert.Equal(t, st, res.Invoice.Status)
		assert.Nil(t, res.Revenue)
		assert.Nil(t, res.Invoice.PaymentDate)
	}
	assert.EqualValues(t, 0, countRevenueFor(t, db, inv.Id))
}

func TestInvoiceService_LeavingPaidKeepsPaymentDate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	client := seedClient(t, db, "Acme")
	inv := seedInvoice(t, db, client.Id, nil)
	svc := newTestInvoiceService(db)

	paidAt := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	res, err := svc.SetStatus(ctx, inv.Id, models.InvoicePaid, &paidAt)
	require.NoError(t, err)
	assert.True(t, paidAt.Equal(res.Revenue.Date))

	_, err = svc.SetStatus(ctx, inv.Id, models.InvoiceSent, nil)
	require.NoError(t, err)
	got, err := svc.Get(ctx, inv.Id)
	require.NoError(t, err)
	require.NotNil(t, got.PaymentDate)
	assert.True(t, paidAt.Equal(*got.PaymentDate))

	// Back to Paid without an override: the original date stays.
	res, err = svc.SetStatus(ctx, inv.Id, models.InvoicePaid, nil)
	require.NoError(t, err)
	assert.False(t, res.RevenueCreated)
	assert.True(t, paidAt.Equal(*res.Invoice.PaymentDate))
	assert.EqualValues(t, 1, countRevenueFor(t, db, inv.Id))
}

func TestInvoiceService_PaymentDateOverrideMovesRevenue(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	client := seedClient(t, db, "Acme")
	inv := seedInvoice(t, db, client.Id, nil)
	svc := newTestInvoiceService(db)

	first, err := svc.SetStatus(ctx, inv.Id, models.InvoicePaid, nil)
	require.NoError(t, err)
	require.True(t, first.RevenueCreated)
	assert.True(t, fixedNow.Equal(first.Revenue.Date))

	settled := time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC)
	res, err := svc.SetStatus(ctx, inv.Id, models.InvoicePaid, &settled)
	require.NoError(t, err)
	assert.False(t, res.RevenueCreated)
	assert.Equal(t, first.Revenue.Id, res.Revenue.Id)
	assert.True(t, settled.Equal(res.Revenue.Date))

	got, err := svc.Get(ctx, inv.Id)
	require.NoError(t, err)
	require.NotNil(t, got.PaymentDate)
	assert.True(t, settled.Equal(*got.PaymentDate))

	item, err := NewRevenueService(db).Get(ctx, first.Revenue.Id)
	require.NoError(t, err)
	assert.True(t, settled.Equal(item.Date))
	assert.EqualValues(t, 1, countRevenueFor(t, db, inv.Id))
}

func TestInvoiceService_SetStatusErrors(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	client := seedClient(t, db, "Acme")
	inv := seedInvoice(t, db, client.Id, nil)
	svc := newTestInvoiceService(db)

	_, err := svc.SetStatus(ctx, inv.Id, "Refunded", nil)
	assert.True(t, IsValidation(err))

	_, err = svc.SetStatus(ctx, "missing", models.InvoicePaid, nil)
	assert.True(t, IsNotFound(err))
}

func TestInvoiceService_CreatePaidGeneratesRevenue(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db, "Acme")
	paidAt := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	res, err := newTestInvoiceService(db).Create(context.Background(), InvoiceInput{
		ClientID:    client.Id,
		IssueDate:   fixedNow,
		DueDate:     fixedNow,
		Items:       []LineItemInput{{Description: "Retainer", Quantity: 1, UnitPrice: 1000}},
		TaxRate:     ptr(0.19),
		Status:      models.InvoicePaid,
		PaymentDate: &paidAt,
	})
	require.NoError(t, err)
	assert.Equal(t, 1190.0, res.Invoice.TotalAmount)
	require.NotNil(t, res.Revenue)
	assert.True(t, res.RevenueCreated)
	assert.Equal(t, 1190.0, res.Revenue.Amount)
	assert.True(t, paidAt.Equal(res.Revenue.Date))
}

func TestInvoiceService_CreateValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newTestInvoiceService(db)

	_, err := svc.Create(ctx, InvoiceInput{ClientID: "nobody", IssueDate: fixedNow, DueDate: fixedNow})
	assert.True(t, IsValidation(err))

	client := seedClient(t, db, "Acme")
	_, err = svc.Create(ctx, InvoiceInput{
		ClientID:  client.Id,
		IssueDate: fixedNow,
		DueDate:   fixedNow,
		Items:     []LineItemInput{{Quantity: -1, UnitPrice: 10}},
	})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(ctx, InvoiceInput{ClientID: client.Id, IssueDate: fixedNow, DueDate: fixedNow, TaxRate: ptr(1.5)})
	assert.True(t, IsValidation(err))

	var n int64
	require.NoError(t, db.Model(&models.Invoice{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestInvoiceService_UpdateRecomputesTotals(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	client := seedClient(t, db, "Acme")
	inv := seedInvoice(t, db, client.Id, nil)
	svc := newTestInvoiceService(db)

	items := []LineItemInput{{Description: "Audit", Quantity: 2, UnitPrice: 100}}
	res, err := svc.Update(ctx, inv.Id, InvoicePatch{Items: &items, TaxRate: ptr(0.2), Notes: ptr("net 14")})
	require.NoError(t, err)
	assert.Equal(t, 200.0, res.Invoice.Subtotal)
	assert.Equal(t, 40.0, res.Invoice.TaxAmount)
	assert.Equal(t, 240.0, res.Invoice.TotalAmount)
	assert.Equal(t, inv.InvoiceNumber, res.Invoice.InvoiceNumber)

	got, err := svc.Get(ctx, inv.Id)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Audit", got.Items[0].Description)
	assert.Equal(t, 240.0, got.TotalAmount)
	assert.Equal(t, "net 14", got.Notes)

	// Tax rate alone recomputes against the stored items.
	res, err = svc.Update(ctx, inv.Id, InvoicePatch{TaxRate: ptr(0.0)})
	require.NoError(t, err)
	assert.Equal(t, 200.0, res.Invoice.TotalAmount)

	versions, err := svc.Versions(ctx, inv.Id)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 1, versions[0].VersionNo)
	assert.Equal(t, "update", versions[0].Reason)
}

func TestInvoiceService_TaxPatchKeepsSubCentSubtotal(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	client := seedClient(t, db, "Acme")
	svc := newTestInvoiceService(db)

	res, err := svc.Create(ctx, InvoiceInput{
		ClientID:  client.Id,
		IssueDate: fixedNow,
		DueDate:   fixedNow,
		Items:     []LineItemInput{{Description: "API calls", Quantity: 8, UnitPrice: 0.125}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Invoice.Subtotal)

	got, err := svc.Get(ctx, res.Invoice.Id)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.InDelta(t, 0.125, got.Items[0].UnitPrice, 1e-9)

	patched, err := svc.Update(ctx, res.Invoice.Id, InvoicePatch{TaxRate: ptr(0.1)})
	require.NoError(t, err)
	assert.Equal(t, 1.0, patched.Invoice.Subtotal)
	assert.Equal(t, 0.1, patched.Invoice.TaxAmount)
	assert.Equal(t, 1.1, patched.Invoice.TotalAmount)
}

func TestInvoiceService_UpdateToPaidGeneratesRevenue(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	client := seedClient(t, db, "Acme")
	inv := seedInvoice(t, db, client.Id, nil)

	paid := models.InvoicePaid
	res, err := newTestInvoiceService(db).Update(ctx, inv.Id, InvoicePatch{Status: &paid})
	require.NoError(t, err)
	assert.True(t, res.RevenueCreated)
	assert.Equal(t, 5250.0, res.Revenue.Amount)
}

func TestInvoiceService_DeleteDetachesRevenue(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	client := seedClient(t, db, "Acme")
	inv := seedInvoice(t, db, client.Id, nil)
	svc := newTestInvoiceService(db)

	res, err := svc.SetStatus(ctx, inv.Id, models.InvoicePaid, nil)
	require.NoError(t, err)

	detached, err := svc.Delete(ctx, inv.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, detached)

	_, err = svc.Get(ctx, inv.Id)
	assert.True(t, IsNotFound(err))

	var items int64
	require.NoError(t, db.Model(&models.LineItem{}).Where("invoice_id = ?", inv.Id).Count(&items).Error)
	assert.EqualValues(t, 0, items)

	item, err := NewRevenueService(db).Get(ctx, res.Revenue.Id)
	require.NoError(t, err)
	assert.Nil(t, item.InvoiceId)
	assert.True(t, item.SourceDeleted)
	assert.Equal(t, "INV-2024-001", item.SourceInvoiceNumber)
	assert.Equal(t, "Payment for Invoice INV-2024-001", item.Description)
	assert.Equal(t, 5250.0, item.Amount)

	_, err = svc.Delete(ctx, inv.Id)
	assert.True(t, IsNotFound(err))
}

func TestInvoiceService_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	client := seedClient(t, db, "Acme")
	project := seedProject(t, db, "Audit", nil)
	first := seedInvoice(t, db, client.Id, &project.Id)
	seedInvoice(t, db, client.Id, nil)
	svc := newTestInvoiceService(db)

	_, err := svc.SetStatus(ctx, first.Id, models.InvoiceSent, nil)
	require.NoError(t, err)

	all, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Len(t, all[0].Items, 2)

	byProject, err := svc.List(ctx, ListFilter{ProjectID: project.Id})
	require.NoError(t, err)
	require.Len(t, byProject, 1)
	assert.Equal(t, first.Id, byProject[0].Id)

	sent, err := svc.List(ctx, ListFilter{Status: string(models.InvoiceSent)})
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, first.Id, sent[0].Id)
}
