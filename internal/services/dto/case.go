package dto

import (
	"encoding/json"
	"time"

	"medcase_backend/internal/models"
)

type CreateCaseRequest struct {
	Title           string   `json:"title" binding:"required" validate:"required,min=5,max=200"`
	Specialty       string   `json:"specialty" binding:"required" validate:"required,max=100"`
	Category        string   `json:"category" validate:"omitempty,max=100"`
	Tags            []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=50"`
	ClinicalHistory string   `json:"clinical_history" validate:"omitempty,max=20000"`
	Examination     string   `json:"examination" validate:"omitempty,max=20000"`
	Diagnosis       string   `json:"diagnosis" validate:"omitempty,max=5000"`
	Discussion      string   `json:"discussion" validate:"omitempty,max=20000"`
	Images          []string `json:"images" validate:"omitempty,max=20"`
	Publish         bool     `json:"publish"`
}

type UpdateCaseRequest struct {
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=5,max=200"`
	Specialty       *string  `json:"specialty,omitempty" validate:"omitempty,max=100"`
	Category        *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Tags            []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=50"`
	ClinicalHistory *string  `json:"clinical_history,omitempty" validate:"omitempty,max=20000"`
	Examination     *string  `json:"examination,omitempty" validate:"omitempty,max=20000"`
	Diagnosis       *string  `json:"diagnosis,omitempty" validate:"omitempty,max=5000"`
	Discussion      *string  `json:"discussion,omitempty" validate:"omitempty,max=20000"`
	Images          []string `json:"images,omitempty" validate:"omitempty,max=20"`
}

// CaseFeedFilter is bound from query params on the public feed.
type CaseFeedFilter struct {
	Specialty string     `form:"specialty"`
	Category  string     `form:"category"`
	Tag       string     `form:"tag"`
	Cursor    *time.Time `form:"cursor"`
	CursorID  string     `form:"cursor_id"`
	Limit     int        `form:"limit" validate:"omitempty,min=1,max=50"`
}

type CaseResponse struct {
	ID              string            `json:"id"`
	Author          *AuthorResponse   `json:"author,omitempty"`
	AuthorID        string            `json:"author_id"`
	Title           string            `json:"title"`
	Specialty       string            `json:"specialty"`
	Category        string            `json:"category,omitempty"`
	Tags            []string          `json:"tags"`
	ClinicalHistory string            `json:"clinical_history,omitempty"`
	Examination     string            `json:"examination,omitempty"`
	Diagnosis       string            `json:"diagnosis,omitempty"`
	Discussion      string            `json:"discussion,omitempty"`
	Images          []string          `json:"images"`
	Status          models.CaseStatus `json:"status"`
	PublishedAt     *time.Time        `json:"published_at,omitempty"`
	ViewsCount      int               `json:"views_count"`
	LikesCount      int               `json:"likes_count"`
	SavesCount      int               `json:"saves_count"`
	CommentsCount   int               `json:"comments_count"`
	IsLiked         bool              `json:"is_liked"`
	IsSaved         bool              `json:"is_saved"`
	CreatedAt       time.Time         `json:"created_at"`
}

// CaseFeedResponse carries a page of the feed plus the cursor for the
// next page. NextCursor is nil when the feed is exhausted; NextCursorID
// disambiguates cases sharing the cursor timestamp and must be echoed
// back with it.
type CaseFeedResponse struct {
	Cases        []*CaseResponse `json:"cases"`
	NextCursor   *time.Time      `json:"next_cursor,omitempty"`
	NextCursorID string          `json:"next_cursor_id,omitempty"`
}

type CaseListResponse struct {
	Cases []*CaseResponse `json:"cases"`
	Total int64           `json:"total"`
}

func CaseToResponse(c *models.Case) *CaseResponse {
	if c == nil {
		return nil
	}
	resp := &CaseResponse{
		ID:              c.ID,
		AuthorID:        c.AuthorID,
		Title:           c.Title,
		Specialty:       c.Specialty,
		Category:        c.Category,
		Tags:            decodeStringList(c.Tags),
		ClinicalHistory: c.ClinicalHistory,
		Examination:     c.Examination,
		Diagnosis:       c.Diagnosis,
		Discussion:      c.Discussion,
		Images:          decodeStringList(c.Images),
		Status:          c.Status,
		PublishedAt:     c.PublishedAt,
		ViewsCount:      c.ViewsCount,
		LikesCount:      c.LikesCount,
		SavesCount:      c.SavesCount,
		CommentsCount:   c.CommentsCount,
		CreatedAt:       c.CreatedAt,
	}
	if c.Author.ID != "" {
		resp.Author = UserToAuthor(&c.Author)
	}
	return resp
}

func decodeStringList(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}
