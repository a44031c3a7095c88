package dto

import (
	"time"

	"medcase_backend/internal/repositories"
)

// DashboardResponse bundles the main admin dashboard panels into one
// payload so the frontend can render with a single request.
type DashboardResponse struct {
	Users         *repositories.UserStats              `json:"users"`
	Registrations *repositories.RegistrationStats      `json:"registrations"`
	Cases         *repositories.CaseStats              `json:"cases"`
	Verification  *repositories.VerificationQueueStats `json:"verification"`
	OpenReports   int64                                `json:"open_reports"`
}

type TopCasesResponse struct {
	Cases []*CaseResponse `json:"cases"`
}

type CaseStatsFilter struct {
	DateFrom *time.Time `form:"date_from"`
	DateTo   *time.Time `form:"date_to" validate:"omitempty,gtefield=DateFrom"`
}
