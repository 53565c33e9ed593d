package models

import "time"

// StepReminder – audit row written every time a nudge is sent for a step
// that is still waiting on its approver.
type StepReminder struct {
	ID        int          `gorm:"primaryKey"`
	StepID    int          `gorm:"not null;index"`
	Step      ApprovalStep `gorm:"foreignKey:StepID"`
	CreatedAt time.Time    `gorm:"autoCreateTime;not null"`
}
