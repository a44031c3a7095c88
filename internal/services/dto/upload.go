package dto

import (
	"time"

	"medcase_backend/internal/models"
)

type UploadResponse struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	URL          string    `json:"url"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	FileType     string    `json:"file_type"`
	IsPublic     bool      `json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
}

func UploadToResponse(u *models.Upload) *UploadResponse {
	if u == nil {
		return nil
	}
	return &UploadResponse{
		ID:           u.ID,
		OriginalName: u.OriginalName,
		URL:          u.URL,
		MimeType:     u.MimeType,
		Size:         u.Size,
		FileType:     u.FileType,
		IsPublic:     u.IsPublic,
		CreatedAt:    u.CreatedAt,
	}
}
