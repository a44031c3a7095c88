package models

import "time"

type User struct {
	BaseModel
	Email             string     `gorm:"uniqueIndex;not null"`
	PasswordHash      string     `gorm:"not null"`
	Role              UserRole   `gorm:"type:varchar(20);not null"`
	Status            UserStatus `gorm:"type:varchar(20);default:'pending'"`
	Name              string     `gorm:"not null"`
	Specialty         string
	Institution       string
	AvatarURL         string
	Bio               string
	IsEmailVerified   bool `gorm:"default:false"`
	VerificationToken string
	ResetToken        string
	ResetTokenExp     *time.Time

	// Denormalized mirror of the latest verification request outcome.
	// Updated in the same transaction as the request document.
	DoctorVerificationStatus DoctorVerificationStatus `gorm:"type:varchar(20);default:'none'"`
	RejectionReason          string

	// Relations
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}

// CanPublishCases is the gating rule consumed by the case store: only a
// doctor with an approved verification may create or publish cases.
func (u *User) CanPublishCases() bool {
	return u.Role == UserRoleDoctor && u.DoctorVerificationStatus == DoctorVerificationVerified
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
