package services

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"signoff/internal/models"
	"signoff/internal/repositories"
	"signoff/internal/roles"
	"signoff/internal/storage"
	"signoff/pkg/apperrors"
)

// These tests exercise the transactional paths and need a real database, e.g.
// TEST_DATABASE_DSN="host=localhost user=signoff dbname=signoff_test ...".
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ApprovalRequest{},
		&models.ApprovalStep{},
		&models.Attachment{},
		&models.StepReminder{},
	))
	require.NoError(t, db.Exec(
		"TRUNCATE step_reminders, attachments, approval_steps, approval_requests, users RESTART IDENTITY CASCADE",
	).Error)
	return db
}

func setupEngine(t *testing.T, db *gorm.DB) (*Engine, *models.User, *models.User) {
	t.Helper()

	manager := &models.User{Email: "manager@example.org", PasswordHash: "x", Role: "MANAGER"}
	director := &models.User{Email: "director@example.org", PasswordHash: "x", Role: "DIRECTOR"}
	require.NoError(t, repositories.CreateUser(db, manager))
	require.NoError(t, repositories.CreateUser(db, director))

	chain := roles.NewSequence([]string{"MANAGER", "DIRECTOR"})
	store := storage.New("mem://localhost/attachments", "/files")
	return NewEngine(db, chain, store, nil, time.Hour), manager, director
}

func createRequest(t *testing.T, engine *Engine) *models.ApprovalRequest {
	t.Helper()
	request, err := engine.CreateRequest(context.Background(), CreateRequestInput{
		Title:     "New laptops",
		Content:   "Three laptops for the outreach team",
		CreatorID: 1,
	})
	require.NoError(t, err)
	return request
}

func TestEngine_CreateRequest(t *testing.T) {
	db := setupTestDB(t)
	engine, manager, _ := setupEngine(t, db)

	request, err := engine.CreateRequest(context.Background(), CreateRequestInput{
		Title:     "Printer toner",
		CreatorID: manager.ID,
		Files: []AttachmentUpload{
			{Name: "quote.pdf", Size: 4, ContentType: "application/pdf", Reader: strings.NewReader("abcd")},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, request.ID)
	assert.Equal(t, models.StatusPending, request.Status)

	loaded, err := engine.Request(context.Background(), request.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Steps, 1)
	assert.Equal(t, 1, loaded.Steps[0].StepOrder)
	assert.Equal(t, models.StatusPending, loaded.Steps[0].Status)
	assert.Equal(t, "MANAGER", loaded.Steps[0].ApproverRole)
	assert.Equal(t, manager.ID, loaded.Steps[0].ApproverID)

	require.Len(t, loaded.Attachments, 1)
	assert.Equal(t, "quote.pdf", loaded.Attachments[0].Name)
	assert.True(t, strings.HasPrefix(loaded.Attachments[0].URL, "/files/"))
}

func TestEngine_FullApprovalChain(t *testing.T) {
	db := setupTestDB(t)
	engine, manager, director := setupEngine(t, db)
	request := createRequest(t, engine)
	ctx := context.Background()

	// manager approves: new pending step, overall status unchanged
	updated, err := engine.ProcessStep(ctx, request.ID, models.StatusApproved, manager.ID, "MANAGER")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
	require.Len(t, updated.Steps, 2)
	assert.Equal(t, models.StatusApproved, updated.Steps[0].Status)
	assert.Equal(t, manager.ID, *updated.Steps[0].ProcessedByID)
	assert.NotNil(t, updated.Steps[0].ProcessedAt)
	assert.Equal(t, 2, updated.Steps[1].StepOrder)
	assert.Equal(t, models.StatusPending, updated.Steps[1].Status)
	assert.Equal(t, "DIRECTOR", updated.Steps[1].ApproverRole)
	assert.Equal(t, director.ID, updated.Steps[1].ApproverID)

	// director approves: terminal success, step and request together
	final, err := engine.ProcessStep(ctx, request.ID, models.StatusApproved, director.ID, "DIRECTOR")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, final.Status)
	require.NotNil(t, final.ApproverID)
	assert.Equal(t, director.ID, *final.ApproverID)
	assert.NotNil(t, final.ApprovedAt)
	require.Len(t, final.Steps, 2)
	assert.Equal(t, models.StatusApproved, final.Steps[1].Status)

	// step orders are 1..N with no gaps
	orders := []int{final.Steps[0].StepOrder, final.Steps[1].StepOrder}
	assert.Equal(t, []int{1, 2}, orders)
}

func TestEngine_RejectTerminatesRequest(t *testing.T) {
	db := setupTestDB(t)
	engine, manager, _ := setupEngine(t, db)
	request := createRequest(t, engine)

	updated, err := engine.ProcessStep(context.Background(), request.ID, models.StatusRejected, manager.ID, "MANAGER")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)
	require.Len(t, updated.Steps, 1)
	assert.Equal(t, models.StatusRejected, updated.Steps[0].Status)
}

func TestEngine_CancelTerminatesRequest(t *testing.T) {
	db := setupTestDB(t)
	engine, manager, _ := setupEngine(t, db)
	request := createRequest(t, engine)

	updated, err := engine.ProcessStep(context.Background(), request.ID, models.StatusCanceled, manager.ID, "MANAGER")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, updated.Status)
	require.Len(t, updated.Steps, 1)
	assert.Equal(t, models.StatusCanceled, updated.Steps[0].Status)
}

func TestEngine_RejectByWrongApprover(t *testing.T) {
	db := setupTestDB(t)
	engine, _, director := setupEngine(t, db)
	request := createRequest(t, engine)

	// the pending step waits on the manager, not the director
	_, err := engine.ProcessStep(context.Background(), request.ID, models.StatusRejected, director.ID, "DIRECTOR")
	assert.ErrorIs(t, err, apperrors.ErrNoPendingStep)
}

func TestEngine_TerminalRequestIsImmutable(t *testing.T) {
	db := setupTestDB(t)
	engine, manager, _ := setupEngine(t, db)
	request := createRequest(t, engine)
	ctx := context.Background()

	_, err := engine.ProcessStep(ctx, request.ID, models.StatusRejected, manager.ID, "MANAGER")
	require.NoError(t, err)

	_, err = engine.ProcessStep(ctx, request.ID, models.StatusApproved, manager.ID, "MANAGER")
	assert.ErrorIs(t, err, apperrors.ErrRequestCompleted)
}

func TestEngine_ProcessMissingRequest(t *testing.T) {
	db := setupTestDB(t)
	engine, manager, _ := setupEngine(t, db)

	_, err := engine.ProcessStep(context.Background(), 99999, models.StatusApproved, manager.ID, "MANAGER")
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestEngine_NoApproverForNextRole(t *testing.T) {
	db := setupTestDB(t)
	engine, manager, director := setupEngine(t, db)
	request := createRequest(t, engine)
	ctx := context.Background()

	// remove the director so advancement cannot resolve an approver
	require.NoError(t, db.Delete(&models.User{}, director.ID).Error)

	_, err := engine.ProcessStep(ctx, request.ID, models.StatusApproved, manager.ID, "MANAGER")
	assert.ErrorIs(t, err, apperrors.ErrNoApproverForRole)

	// the failed transaction left no partial state behind
	loaded, err := engine.Request(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, loaded.Status)
	require.Len(t, loaded.Steps, 1)
	assert.Equal(t, models.StatusPending, loaded.Steps[0].Status)
}

func TestEngine_ListRequestsPagination(t *testing.T) {
	db := setupTestDB(t)
	engine, _, _ := setupEngine(t, db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		createRequest(t, engine)
	}

	page, total, err := engine.ListRequests(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page, 2)

	pending, total, err := engine.ListRequests(ctx, string(models.StatusPending), 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, pending, 5)

	approved, total, err := engine.ListRequests(ctx, string(models.StatusApproved), 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, approved)
}

func TestEngine_DeleteAttachmentPermissions(t *testing.T) {
	db := setupTestDB(t)
	engine, manager, _ := setupEngine(t, db)
	ctx := context.Background()

	request, err := engine.CreateRequest(ctx, CreateRequestInput{
		Title:     "Venue deposit",
		CreatorID: manager.ID,
		Files: []AttachmentUpload{
			{Name: "invoice.pdf", Reader: strings.NewReader("pdf")},
		},
	})
	require.NoError(t, err)
	require.Len(t, request.Attachments, 1)
	attachmentID := request.Attachments[0].ID

	// a stranger without the admin role is refused
	err = engine.DeleteAttachment(ctx, attachmentID, manager.ID+100, "MANAGER")
	assert.ErrorIs(t, err, apperrors.ErrNoAccess)

	// the creator may delete
	require.NoError(t, engine.DeleteAttachment(ctx, attachmentID, manager.ID, "MANAGER"))

	_, err = engine.Attachment(ctx, attachmentID)
	assert.ErrorIs(t, err, apperrors.ErrAttachmentNotFound)
}

func TestEngine_ConcurrentDecisionsConflict(t *testing.T) {
	db := setupTestDB(t)
	engine, manager, _ := setupEngine(t, db)
	request := createRequest(t, engine)
	ctx := context.Background()

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := engine.ProcessStep(ctx, request.ID, models.StatusApproved, manager.ID, "MANAGER")
			done <- err
		}()
	}

	var successes int
	for i := 0; i < 2; i++ {
		if err := <-done; err == nil {
			successes++
		}
	}
	require.GreaterOrEqual(t, successes, 1)

	// whatever the interleaving, the chain stays gapless: either the loser
	// saw a conflict and only step 2 exists pending, or the calls serialized
	// into two distinct approvals
	loaded, err := engine.Request(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Steps, 2)
	assert.Equal(t, 1, loaded.Steps[0].StepOrder)
	assert.Equal(t, 2, loaded.Steps[1].StepOrder)
	if successes == 1 {
		assert.Equal(t, models.StatusPending, loaded.Status)
		assert.Equal(t, models.StatusPending, loaded.Steps[1].Status)
	}
}
