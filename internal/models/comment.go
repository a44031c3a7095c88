package models

type Comment struct {
	BaseModel
	CaseID string `gorm:"not null;index"`
	UserID string `gorm:"not null;index"`
	Text   string `gorm:"not null"`

	// Relations
	Case Case `gorm:"foreignKey:CaseID"`
	User User `gorm:"foreignKey:UserID"`
}
