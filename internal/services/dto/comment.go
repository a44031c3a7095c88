package dto

import (
	"time"

	"medcase_backend/internal/models"
)

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required" validate:"required,min=1,max=2000"`
}

type CommentResponse struct {
	ID        string          `json:"id"`
	CaseID    string          `json:"case_id"`
	Author    *AuthorResponse `json:"author,omitempty"`
	Text      string          `json:"text"`
	CreatedAt time.Time       `json:"created_at"`
}

type CommentListResponse struct {
	Comments []*CommentResponse `json:"comments"`
	Total    int64              `json:"total"`
}

func CommentToResponse(c *models.Comment) *CommentResponse {
	if c == nil {
		return nil
	}
	resp := &CommentResponse{
		ID:        c.ID,
		CaseID:    c.CaseID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
	if c.User.ID != "" {
		resp.Author = UserToAuthor(&c.User)
	}
	return resp
}
