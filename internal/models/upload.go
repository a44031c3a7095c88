package models

type Upload struct {
	BaseModel
	UserID     string `gorm:"not null;index"`
	EntityType string // "case", "verification_request", "avatar"
	EntityID   string
	FileType   string // "image", "document"
	Path       string `gorm:"not null"`
	MimeType   string
	Size       int64
	IsPublic   bool `gorm:"default:true"`

	OriginalName    string `gorm:"column:original_name"`
	URL             string `gorm:"column:url"`
	StorageProvider string `gorm:"column:storage_provider;default:'local'"` // 'local', 's3', 'cloudflare_r2'
}
