package models

// Like is one row per user+case; the unique index makes the toggle
// idempotent under concurrent requests.
type Like struct {
	BaseModel
	CaseID string `gorm:"not null;uniqueIndex:idx_like_case_user"`
	UserID string `gorm:"not null;uniqueIndex:idx_like_case_user"`
}

// Save marks a case as saved to the user's personal collection.
type Save struct {
	BaseModel
	CaseID string `gorm:"not null;uniqueIndex:idx_save_case_user"`
	UserID string `gorm:"not null;uniqueIndex:idx_save_case_user"`
}
