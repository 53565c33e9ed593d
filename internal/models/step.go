package models

import "time"

type ApprovalStep struct {
	ID            int             `gorm:"primaryKey" json:"id"`
	RequestID     int             `gorm:"not null;uniqueIndex:idx_request_step" json:"requestId"`
	Request       *ApprovalRequest `gorm:"foreignKey:RequestID" json:"-"`
	StepOrder     int             `gorm:"not null;uniqueIndex:idx_request_step" json:"stepOrder"`
	ApproverID    int             `gorm:"not null;index" json:"approverId"`
	Approver      User            `gorm:"foreignKey:ApproverID" json:"-"`
	ApproverRole  string          `gorm:"type:varchar(50);not null" json:"approverRole"`
	Status        Status          `gorm:"type:varchar(20);not null" json:"status"`
	ProcessedByID *int            `json:"processedById,omitempty"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}

func (ApprovalStep) TableName() string {
	return "approval_steps"
}
