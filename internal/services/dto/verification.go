package dto

import (
	"encoding/json"
	"time"

	"medcase_backend/internal/models"
)

type SubmitVerificationRequest struct {
	// Documents are opaque upload references; order is preserved.
	Documents []string `json:"documents" binding:"required" validate:"required,min=1,max=10"`
}

type ReviewVerificationRequest struct {
	// Reason is required when rejecting and ignored when approving.
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

type VerificationRequestResponse struct {
	ID              string                    `json:"id"`
	UserID          string                    `json:"user_id"`
	User            *AuthorResponse           `json:"user,omitempty"`
	Documents       []string                  `json:"documents"`
	Status          models.VerificationStatus `json:"status"`
	SubmittedAt     time.Time                 `json:"submitted_at"`
	ReviewedAt      *time.Time                `json:"reviewed_at,omitempty"`
	ReviewerID      *string                   `json:"reviewer_id,omitempty"`
	RejectionReason string                    `json:"rejection_reason,omitempty"`
}

type VerificationListResponse struct {
	Requests []*VerificationRequestResponse `json:"requests"`
	Total    int64                          `json:"total"`
}

// VerificationStatusResponse is the doctor's own view of where they stand.
type VerificationStatusResponse struct {
	Status          models.DoctorVerificationStatus `json:"status"`
	RejectionReason string                          `json:"rejection_reason,omitempty"`
	LatestRequest   *VerificationRequestResponse    `json:"latest_request,omitempty"`
}

func VerificationRequestToResponse(r *models.VerificationRequest) *VerificationRequestResponse {
	if r == nil {
		return nil
	}
	resp := &VerificationRequestResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		Documents:       decodeDocuments(r.Documents),
		Status:          r.Status,
		SubmittedAt:     r.SubmittedAt,
		ReviewedAt:      r.ReviewedAt,
		ReviewerID:      r.ReviewerID,
		RejectionReason: r.RejectionReason,
	}
	if r.User.ID != "" {
		resp.User = UserToAuthor(&r.User)
	}
	return resp
}

func decodeDocuments(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}
