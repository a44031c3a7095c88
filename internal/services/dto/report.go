package dto

import (
	"time"

	"medcase_backend/internal/models"
)

type CreateReportRequest struct {
	TargetType string `json:"target_type" binding:"required" validate:"required,is-report-target"`
	TargetID   string `json:"target_id" binding:"required" validate:"required,uuid"`
	Reason     string `json:"reason" binding:"required" validate:"required,min=3,max=2000"`
}

type ResolveReportRequest struct {
	Resolution   string `json:"resolution" validate:"omitempty,max=2000"`
	RemoveTarget bool   `json:"remove_target"`
}

type ReportResponse struct {
	ID         string              `json:"id"`
	ReporterID string              `json:"reporter_id"`
	TargetType string              `json:"target_type"`
	TargetID   string              `json:"target_id"`
	Reason     string              `json:"reason"`
	Status     models.ReportStatus `json:"status"`
	ResolvedBy *string             `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time          `json:"resolved_at,omitempty"`
	Resolution string              `json:"resolution,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

type ReportListResponse struct {
	Reports []*ReportResponse `json:"reports"`
	Total   int64             `json:"total"`
}

func ReportToResponse(r *models.Report) *ReportResponse {
	if r == nil {
		return nil
	}
	return &ReportResponse{
		ID:         r.ID,
		ReporterID: r.ReporterID,
		TargetType: r.TargetType,
		TargetID:   r.TargetID,
		Reason:     r.Reason,
		Status:     r.Status,
		ResolvedBy: r.ResolvedBy,
		ResolvedAt: r.ResolvedAt,
		Resolution: r.Resolution,
		CreatedAt:  r.CreatedAt,
	}
}
