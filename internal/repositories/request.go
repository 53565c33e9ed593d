package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"signoff/internal/models"
	"signoff/pkg/apperrors"
)

func CreateRequest(db *gorm.DB, request *models.ApprovalRequest) error {
	return db.Create(request).Error
}

func RequestByID(db *gorm.DB, requestID int) (*models.ApprovalRequest, error) {
	var request models.ApprovalRequest
	err := db.First(&request, requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrRequestNotFound
	} else if err != nil {
		return nil, err
	}
	return &request, nil
}

// RequestWithDetails loads a request together with its ordered step history
// and attachments.
func RequestWithDetails(db *gorm.DB, requestID int) (*models.ApprovalRequest, error) {
	var request models.ApprovalRequest
	err := db.
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		Preload("Attachments").
		First(&request, requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrRequestNotFound
	} else if err != nil {
		return nil, err
	}
	return &request, nil
}

func ListRequests(db *gorm.DB, status string, page, limit int) ([]models.ApprovalRequest, int64, error) {
	countQuery := db.Model(&models.ApprovalRequest{})
	listQuery := db.Model(&models.ApprovalRequest{})
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
		listQuery = listQuery.Where("status = ?", status)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.ApprovalRequest
	err := listQuery.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// CompleteRequest moves the request to a terminal status. The update is
// guarded by the version the request was read with: if another transaction
// advanced it in between, no row matches and the caller gets a conflict.
func CompleteRequest(tx *gorm.DB, request *models.ApprovalRequest, status models.Status, approverID *int, approvedAt *time.Time) error {
	updates := map[string]interface{}{
		"status":  status,
		"version": request.Version + 1,
	}
	if approverID != nil {
		updates["approver_id"] = *approverID
		updates["approved_at"] = *approvedAt
	}
	return casUpdate(tx, request, updates)
}

// TouchRequest bumps the request version without changing its status, used
// when a non-final step is approved and a new step is appended.
func TouchRequest(tx *gorm.DB, request *models.ApprovalRequest) error {
	return casUpdate(tx, request, map[string]interface{}{
		"version": request.Version + 1,
	})
}

func casUpdate(tx *gorm.DB, request *models.ApprovalRequest, updates map[string]interface{}) error {
	result := tx.Model(&models.ApprovalRequest{}).
		Where("id = ? AND version = ?", request.ID, request.Version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrConcurrentModification
	}
	return nil
}
