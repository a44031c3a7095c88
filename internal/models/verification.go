package models

import (
	"time"

	"gorm.io/datatypes"
)

// VerificationRequest is a doctor's submission of credential documents
// pending admin review.
//
// SubmittedAt is set once at creation. ReviewedAt, ReviewerID and
// RejectionReason are written exactly once, on the transition from pending
// to a terminal status; that transition and the user mirror update happen
// in one transaction.
type VerificationRequest struct {
	BaseModel
	UserID          string             `gorm:"not null;index"`
	Documents       datatypes.JSON     `gorm:"type:jsonb"` // ordered opaque file refs
	Status          VerificationStatus `gorm:"type:varchar(20);default:'pending';index"`
	SubmittedAt     time.Time          `gorm:"not null"`
	ReviewedAt      *time.Time
	ReviewerID      *string `gorm:"index"`
	RejectionReason string

	// Relations
	User User `gorm:"foreignKey:UserID"`
}
