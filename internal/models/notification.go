package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string `gorm:"not null;index"`
	Type    string `gorm:"not null"` // "verification_decision", "new_comment"
	Title   string `gorm:"not null"`
	Message string
	Data    datatypes.JSON `gorm:"type:jsonb"` // {"case_id": "...", "request_id": "..."}
	IsRead  bool           `gorm:"default:false"`
	ReadAt  *time.Time
}

const (
	NotificationTypeVerificationDecision = "verification_decision"
	NotificationTypeNewComment           = "new_comment"
)
