package models

import "time"

type Attachment struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	RequestID   int       `gorm:"not null;index" json:"requestId"`
	Name        string    `gorm:"not null" json:"name"`
	StorageKey  string    `gorm:"not null" json:"-"`
	URL         string    `gorm:"not null" json:"url"`
	Size        int64     `json:"size"`
	ContentType string    `gorm:"type:varchar(100)" json:"contentType"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
}
