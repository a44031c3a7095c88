package models

import (
	"time"

	"gorm.io/datatypes"
)

// Case is a published or draft teaching record authored by a verified
// doctor.
type Case struct {
	BaseModel
	AuthorID        string         `gorm:"not null;index"`
	Title           string         `gorm:"not null"`
	Specialty       string         `gorm:"index"`
	Category        string         `gorm:"index"`
	Tags            datatypes.JSON `gorm:"type:jsonb"` // ["trauma", "pediatric"]
	ClinicalHistory string
	Examination     string
	Diagnosis       string
	Discussion      string
	Images          datatypes.JSON `gorm:"type:jsonb"` // ordered upload refs
	Status          CaseStatus     `gorm:"type:varchar(20);default:'draft';index"`
	PublishedAt     *time.Time

	// Denormalized counters, updated with atomic increments.
	ViewsCount    int `gorm:"default:0"`
	LikesCount    int `gorm:"default:0"`
	SavesCount    int `gorm:"default:0"`
	CommentsCount int `gorm:"default:0"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID"`
}
