package models

import "time"

// Report is a user flag on a case or comment, reviewed from the admin
// moderation dashboard.
type Report struct {
	BaseModel
	ReporterID string       `gorm:"not null;index"`
	TargetType string       `gorm:"not null"` // "case", "comment"
	TargetID   string       `gorm:"not null;index"`
	Reason     string       `gorm:"not null"`
	Status     ReportStatus `gorm:"type:varchar(20);default:'open';index"`
	ResolvedBy *string
	ResolvedAt *time.Time
	Resolution string
}

const (
	ReportTargetCase    = "case"
	ReportTargetComment = "comment"
)
