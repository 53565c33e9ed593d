package services

import (
	"context"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"signoff/internal/models"
	"signoff/internal/repositories"
	"signoff/pkg/apperrors"
)

// Attachment returns one attachment row, for download redirects.
func (e *Engine) Attachment(ctx context.Context, attachmentID int) (*models.Attachment, error) {
	return repositories.AttachmentByID(e.db.WithContext(ctx), attachmentID)
}

// DeleteAttachment removes an attachment. Only the creator of the owning
// request or an administrator may delete it. The database row and the blob go
// together; a blob that fails to delete is logged, the row is still removed.
func (e *Engine) DeleteAttachment(ctx context.Context, attachmentID, actorID int, actorRole string) error {
	db := e.db.WithContext(ctx)

	attachment, err := repositories.AttachmentByID(db, attachmentID)
	if err != nil {
		return err
	}
	request, err := repositories.RequestByID(db, attachment.RequestID)
	if err != nil {
		return err
	}
	if request.CreatorID != actorID && actorRole != models.RoleAdmin {
		return apperrors.ErrNoAccess
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return repositories.DeleteAttachment(tx, attachmentID)
	})
	if err != nil {
		return err
	}

	if err := e.store.Delete(ctx, attachment.StorageKey); err != nil {
		log.Errorf("failed to delete blob %s: %v", attachment.StorageKey, err)
	}
	return nil
}
