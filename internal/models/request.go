package models

import (
	"time"

	"github.com/lib/pq"
)

type ApprovalRequest struct {
	ID          int            `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Content     string         `gorm:"type:text" json:"content"`
	Links       pq.StringArray `gorm:"type:text[]" json:"links,omitempty"`
	Status      Status         `gorm:"type:varchar(20);not null;index" json:"status"`
	Version     int            `gorm:"not null;default:0" json:"-"`
	CreatorID   int            `gorm:"not null;index" json:"creatorId"`
	Creator     User           `gorm:"foreignKey:CreatorID" json:"-"`
	ApproverID  *int           `json:"approverId,omitempty"`
	Approver    *User          `gorm:"foreignKey:ApproverID" json:"-"`
	ApprovedAt  *time.Time     `json:"approvedAt,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	Steps       []ApprovalStep `gorm:"foreignKey:RequestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"steps,omitempty"`
	Attachments []Attachment   `gorm:"foreignKey:RequestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"attachments,omitempty"`
}

func (ApprovalRequest) TableName() string {
	return "approval_requests"
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCanceled
}
