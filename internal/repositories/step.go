package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"signoff/internal/models"
)

// StepsForUpdate returns all steps of a request in chain order with the rows
// locked until the surrounding transaction commits.
func StepsForUpdate(tx *gorm.DB, requestID int) ([]models.ApprovalStep, error) {
	var steps []models.ApprovalStep
	err := tx.Raw(`
		SELECT *
		FROM approval_steps
		WHERE request_id = ?
		ORDER BY step_order
		FOR UPDATE
	`, requestID).Scan(&steps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock steps: %w", err)
	}
	return steps, nil
}

func StepByID(db *gorm.DB, stepID int) (*models.ApprovalStep, error) {
	var step models.ApprovalStep
	if err := db.First(&step, stepID).Error; err != nil {
		return nil, err
	}
	return &step, nil
}

func CreateStep(tx *gorm.DB, step *models.ApprovalStep) error {
	return tx.Create(step).Error
}

func MarkStepProcessed(tx *gorm.DB, stepID int, status models.Status, processedByID int, processedAt time.Time) error {
	return tx.Model(&models.ApprovalStep{}).
		Where("id = ?", stepID).
		Updates(map[string]interface{}{
			"status":          status,
			"processed_by_id": processedByID,
			"processed_at":    processedAt,
		}).Error
}
