package services

import (
	"context"
	"testing"

	"consultancy-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_DeleteCascadesAndDetaches(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	client := seedClient(t, db, "Acme")
	project := seedProject(t, db, "Website Relaunch", &client.Id)
	other := seedProject(t, db, "Internal", nil)

	tasks := NewTaskService(db)
	for _, title := range []string{"Design", "Build"} {
		_, err := tasks.Create(ctx, TaskInput{Title: title, ProjectID: &project.Id})
		require.NoError(t, err)
	}
	keep, err := tasks.Create(ctx, TaskInput{Title: "Unrelated", ProjectID: &other.Id})
	require.NoError(t, err)

	inv := seedInvoice(t, db, client.Id, &project.Id)
	paid, err := newTestInvoiceService(db).SetStatus(ctx, inv.Id, models.InvoicePaid, nil)
	require.NoError(t, err)
	expense, err := NewExpenseService(db).Create(ctx, ExpenseInput{
		Date: fixedNow, Category: models.ExpenseSoftware, Amount: 49.99, ProjectID: &project.Id,
	})
	require.NoError(t, err)
	assert.Equal(t, "Website Relaunch", expense.ProjectName)

	res, err := NewProjectService(db).Delete(ctx, project.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.TasksDeleted)
	assert.EqualValues(t, 1, res.InvoicesDetached)
	assert.EqualValues(t, 1, res.ExpensesDetached)
	assert.EqualValues(t, 1, res.RevenueDetached)

	remaining, err := tasks.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.Id, remaining[0].Id)

	gotInv, err := newTestInvoiceService(db).Get(ctx, inv.Id)
	require.NoError(t, err)
	assert.Nil(t, gotInv.ProjectId)
	assert.Empty(t, gotInv.ProjectName)
	assert.Equal(t, 5250.0, gotInv.TotalAmount)

	gotExp, err := NewExpenseService(db).Get(ctx, expense.Id)
	require.NoError(t, err)
	assert.Nil(t, gotExp.ProjectId)
	assert.Equal(t, 49.99, gotExp.Amount)

	gotRev, err := NewRevenueService(db).Get(ctx, paid.Revenue.Id)
	require.NoError(t, err)
	assert.Nil(t, gotRev.ProjectId)
	require.NotNil(t, gotRev.InvoiceId)
	assert.Equal(t, inv.Id, *gotRev.InvoiceId)

	_, err = NewProjectService(db).Get(ctx, project.Id)
	assert.True(t, IsNotFound(err))
}

func TestProjectService_DeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	_, err := NewProjectService(db).Delete(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}

func TestProjectService_CreateDefaults(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewProjectService(db)

	p, err := svc.Create(ctx, ProjectInput{Name: "Audit"})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectPlanning, p.Status)
	assert.NotEmpty(t, p.Id)
	assert.Empty(t, p.TeamMembers)

	_, err = svc.Create(ctx, ProjectInput{Name: ""})
	assert.True(t, IsValidation(err))

	missing := "missing"
	_, err = svc.Create(ctx, ProjectInput{Name: "X", ClientID: &missing})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(ctx, ProjectInput{Name: "X", Status: "Paused"})
	assert.True(t, IsValidation(err))
}

func TestProjectService_PatchPropagatesRename(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	client := seedClient(t, db, "Acme")
	project := seedProject(t, db, "Old Name", nil)
	task, err := NewTaskService(db).Create(ctx, TaskInput{Title: "Kickoff", ProjectID: &project.Id})
	require.NoError(t, err)
	inv := seedInvoice(t, db, client.Id, &project.Id)

	patched, err := NewProjectService(db).Patch(ctx, project.Id, map[string]any{
		"name":         "New Name",
		"status":       models.ProjectActive,
		"client_id":    client.Id,
		"team_members": []string{"Ada", "Linus"},
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", patched.Name)
	assert.Equal(t, models.ProjectActive, patched.Status)
	assert.Equal(t, "Acme", patched.ClientName)
	assert.Equal(t, []string{"Ada", "Linus"}, []string(patched.TeamMembers))

	gotTask, err := NewTaskService(db).Get(ctx, task.Id)
	require.NoError(t, err)
	assert.Equal(t, "New Name", gotTask.ProjectName)

	gotInv, err := newTestInvoiceService(db).Get(ctx, inv.Id)
	require.NoError(t, err)
	assert.Equal(t, "New Name", gotInv.ProjectName)

	_, err = NewProjectService(db).Patch(ctx, project.Id, map[string]any{"name": ""})
	assert.True(t, IsValidation(err))
	_, err = NewProjectService(db).Patch(ctx, "missing", map[string]any{"description": "x"})
	assert.True(t, IsNotFound(err))
}

func TestTaskService_CRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	project := seedProject(t, db, "Audit", nil)
	svc := NewTaskService(db)

	missing := "missing"
	_, err := svc.Create(ctx, TaskInput{Title: "Orphan", ProjectID: &missing})
	assert.True(t, IsValidation(err))
	_, err = svc.Create(ctx, TaskInput{Title: "Costly", EstimatedCost: ptr(-5.0)})
	assert.True(t, IsValidation(err))

	task, err := svc.Create(ctx, TaskInput{Title: "Interview", ProjectID: &project.Id, Priority: models.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, models.TaskToDo, task.Status)
	assert.Equal(t, "Audit", task.ProjectName)
	_, err = svc.Create(ctx, TaskInput{Title: "Loose"})
	require.NoError(t, err)

	byProject, err := svc.List(ctx, ListFilter{ProjectID: project.Id})
	require.NoError(t, err)
	require.Len(t, byProject, 1)

	patched, err := svc.Patch(ctx, task.Id, map[string]any{"status": models.TaskDone, "project_id": nil})
	require.NoError(t, err)
	assert.Equal(t, models.TaskDone, patched.Status)
	assert.Nil(t, patched.ProjectId)
	assert.Empty(t, patched.ProjectName)

	require.NoError(t, svc.Delete(ctx, task.Id))
	_, err = svc.Get(ctx, task.Id)
	assert.True(t, IsNotFound(err))
}
