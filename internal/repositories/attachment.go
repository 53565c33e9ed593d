package repositories

import (
	"errors"

	"gorm.io/gorm"

	"signoff/internal/models"
	"signoff/pkg/apperrors"
)

func AttachmentByID(db *gorm.DB, attachmentID int) (*models.Attachment, error) {
	var attachment models.Attachment
	err := db.First(&attachment, attachmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrAttachmentNotFound
	} else if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func DeleteAttachment(db *gorm.DB, attachmentID int) error {
	return db.Delete(&models.Attachment{}, attachmentID).Error
}
