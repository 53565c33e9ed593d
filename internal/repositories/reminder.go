package repositories

import (
	"gorm.io/gorm"

	"signoff/internal/models"
)

func CreateReminder(db *gorm.DB, stepID int) error {
	return db.Create(&models.StepReminder{StepID: stepID}).Error
}

// CountStepReminders – how many nudges were already sent for a step.
func CountStepReminders(db *gorm.DB, stepID int) (int64, error) {
	var count int64
	err := db.Model(&models.StepReminder{}).Where("step_id = ?", stepID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
