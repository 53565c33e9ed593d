package services

import (
	"context"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"signoff/internal/models"
	"signoff/internal/repositories"
	"signoff/internal/roles"
	"signoff/internal/storage"
	"signoff/pkg/apperrors"
)

// ReminderScheduler queues a nudge for a step that stays unprocessed too
// long. Implemented over Redis in internal/notifier.
type ReminderScheduler interface {
	ScheduleStep(stepID int, due time.Time) error
	CancelStep(stepID int) error
}

// Engine drives the sequential approval chain. Every request walks the
// configured role sequence one step at a time: approving a non-final step
// appends the next one, approving the final step completes the request,
// rejecting or canceling any pending step terminates it.
type Engine struct {
	db            *gorm.DB
	chain         roles.Sequence
	store         *storage.Store
	scheduler     ReminderScheduler
	reminderAfter time.Duration
}

func NewEngine(db *gorm.DB, chain roles.Sequence, store *storage.Store, scheduler ReminderScheduler, reminderAfter time.Duration) *Engine {
	return &Engine{
		db:            db,
		chain:         chain,
		store:         store,
		scheduler:     scheduler,
		reminderAfter: reminderAfter,
	}
}

type AttachmentUpload struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

type CreateRequestInput struct {
	Title     string
	Content   string
	Links     []string
	Files     []AttachmentUpload
	CreatorID int
}

// CreateRequest stores the request with its first pending step, assigned to
// whoever holds the first role of the chain. Attachment uploads are
// best-effort: a blob that fails to store is skipped and logged, the request
// is still created.
func (e *Engine) CreateRequest(ctx context.Context, input CreateRequestInput) (*models.ApprovalRequest, error) {
	if input.Title == "" {
		return nil, apperrors.ErrEmptyTitle
	}

	firstRole, ok := e.chain.First()
	if !ok {
		return nil, apperrors.ErrNoNextRole
	}
	approver, err := repositories.FirstUserWithRole(e.db, firstRole)
	if err != nil {
		return nil, err
	}

	var attachments []models.Attachment
	for _, file := range input.Files {
		key, publicURL, err := e.store.Save(ctx, file.Name, file.Reader)
		if err != nil {
			log.Errorf("skipping attachment %s: %v", file.Name, err)
			continue
		}
		attachments = append(attachments, models.Attachment{
			Name:        file.Name,
			StorageKey:  key,
			URL:         publicURL,
			Size:        file.Size,
			ContentType: file.ContentType,
		})
	}

	request := &models.ApprovalRequest{
		Title:     input.Title,
		Content:   input.Content,
		Links:     input.Links,
		Status:    models.StatusPending,
		CreatorID: input.CreatorID,
		Steps: []models.ApprovalStep{{
			StepOrder:    1,
			ApproverID:   approver.ID,
			ApproverRole: firstRole,
			Status:       models.StatusPending,
		}},
		Attachments: attachments,
	}

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repositories.CreateRequest(tx, request)
	})
	if err != nil {
		return nil, err
	}

	e.scheduleReminder(request.Steps[0].ID)
	return request, nil
}

// ProcessStep applies one approver decision to the request's current step.
// The whole read-decide-write runs in a single transaction with the step rows
// locked and a version check on the request row, so two racing decisions on
// the same request cannot both commit.
func (e *Engine) ProcessStep(ctx context.Context, requestID int, newStatus models.Status, processedByID int, processorRole string) (*models.ApprovalRequest, error) {
	if !e.chain.Contains(processorRole) {
		return nil, apperrors.ErrUnknownRole
	}
	switch newStatus {
	case models.StatusApproved, models.StatusRejected, models.StatusCanceled:
	default:
		return nil, apperrors.ErrInvalidStatus
	}

	var scheduled, canceled int
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request, err := repositories.RequestByID(tx, requestID)
		if err != nil {
			return err
		}
		if request.Status.Terminal() {
			return apperrors.ErrRequestCompleted
		}

		steps, err := repositories.StepsForUpdate(tx, requestID)
		if err != nil {
			return err
		}
		if len(steps) == 0 {
			return apperrors.ErrNoSteps
		}
		last := steps[len(steps)-1]
		if last.Status != models.StatusPending {
			return apperrors.ErrNoPendingStep
		}

		now := time.Now()

		if newStatus == models.StatusApproved {
			if err := repositories.MarkStepProcessed(tx, last.ID, models.StatusApproved, processedByID, now); err != nil {
				return err
			}
			canceled = last.ID

			if e.chain.IsFinal(last.ApproverRole) {
				return repositories.CompleteRequest(tx, request, models.StatusApproved, &processedByID, &now)
			}

			nextRole, ok := e.chain.Next(processorRole)
			if !ok {
				return apperrors.ErrNoNextRole
			}
			nextApprover, err := repositories.FirstUserWithRole(tx, nextRole)
			if err != nil {
				return err
			}
			next := &models.ApprovalStep{
				RequestID:    requestID,
				StepOrder:    last.StepOrder + 1,
				ApproverID:   nextApprover.ID,
				ApproverRole: nextRole,
				Status:       models.StatusPending,
			}
			if err := repositories.CreateStep(tx, next); err != nil {
				return err
			}
			scheduled = next.ID
			// bump the version so a racing decision on the same request fails
			return repositories.TouchRequest(tx, request)
		}

		// reject / cancel: the decision must come from the approver the
		// pending step is waiting on
		if last.ApproverID != processedByID {
			return apperrors.ErrNoPendingStep
		}
		if err := repositories.MarkStepProcessed(tx, last.ID, newStatus, processedByID, now); err != nil {
			return err
		}
		canceled = last.ID
		return repositories.CompleteRequest(tx, request, newStatus, nil, nil)
	})
	if err != nil {
		return nil, err
	}

	if canceled != 0 {
		e.cancelReminder(canceled)
	}
	if scheduled != 0 {
		e.scheduleReminder(scheduled)
	}

	return repositories.RequestWithDetails(e.db.WithContext(ctx), requestID)
}

// Request returns one request with its ordered step history and attachments.
func (e *Engine) Request(ctx context.Context, requestID int) (*models.ApprovalRequest, error) {
	return repositories.RequestWithDetails(e.db.WithContext(ctx), requestID)
}

// ListRequests returns one page of requests, newest first, optionally
// filtered by status.
func (e *Engine) ListRequests(ctx context.Context, status string, page, limit int) ([]models.ApprovalRequest, int64, error) {
	return repositories.ListRequests(e.db.WithContext(ctx), status, page, limit)
}

func (e *Engine) scheduleReminder(stepID int) {
	if e.scheduler == nil {
		return
	}
	if err := e.scheduler.ScheduleStep(stepID, time.Now().Add(e.reminderAfter)); err != nil {
		log.Errorf("failed to schedule reminder for step %d: %v", stepID, err)
	}
}

func (e *Engine) cancelReminder(stepID int) {
	if e.scheduler == nil {
		return
	}
	if err := e.scheduler.CancelStep(stepID); err != nil {
		log.Errorf("failed to cancel reminder for step %d: %v", stepID, err)
	}
}
