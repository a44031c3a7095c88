package services

import (
	"time"

	"medcase_backend/internal/models"
	"medcase_backend/internal/repositories"
	"medcase_backend/internal/services/dto"
	"medcase_backend/pkg/apperrors"
)

type AnalyticsService interface {
	GetDashboard() (*dto.DashboardResponse, error)
	GetCaseStats(filter *dto.CaseStatsFilter) (*repositories.CaseStats, error)
	GetTopCases(limit int) (*dto.TopCasesResponse, error)
	GetRegistrationStats(days int) (*repositories.RegistrationStats, error)
}

type analyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	reportRepo    repositories.ReportRepository
}

func NewAnalyticsService(
	analyticsRepo repositories.AnalyticsRepository,
	reportRepo repositories.ReportRepository,
) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		reportRepo:    reportRepo,
	}
}

func (s *analyticsService) GetDashboard() (*dto.DashboardResponse, error) {
	users, err := s.analyticsRepo.GetUserStats()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	registrations, err := s.analyticsRepo.GetRegistrationStats(30)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	cases, err := s.analyticsRepo.GetCaseStats(now.AddDate(0, -1, 0), now)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	verification, err := s.analyticsRepo.GetVerificationQueueStats()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	openReports, err := s.reportRepo.CountByStatus(models.ReportStatusOpen)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.DashboardResponse{
		Users:         users,
		Registrations: registrations,
		Cases:         cases,
		Verification:  verification,
		OpenReports:   openReports,
	}, nil
}

func (s *analyticsService) GetCaseStats(filter *dto.CaseStatsFilter) (*repositories.CaseStats, error) {
	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now
	if filter.DateFrom != nil {
		from = *filter.DateFrom
	}
	if filter.DateTo != nil {
		to = *filter.DateTo
	}

	stats, err := s.analyticsRepo.GetCaseStats(from, to)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *analyticsService) GetTopCases(limit int) (*dto.TopCasesResponse, error) {
	cases, err := s.analyticsRepo.GetTopCases(limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.TopCasesResponse{
		Cases: make([]*dto.CaseResponse, 0, len(cases)),
	}
	for i := range cases {
		resp.Cases = append(resp.Cases, dto.CaseToResponse(&cases[i]))
	}
	return resp, nil
}

func (s *analyticsService) GetRegistrationStats(days int) (*repositories.RegistrationStats, error) {
	if days < 1 || days > 365 {
		days = 30
	}

	stats, err := s.analyticsRepo.GetRegistrationStats(days)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}
