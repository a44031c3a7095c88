package services

import (
	"errors"

	"medcase_backend/internal/models"
	"medcase_backend/internal/repositories"
	"medcase_backend/internal/services/dto"
	"medcase_backend/pkg/apperrors"
)

type ModerationService interface {
	// User-facing
	ReportContent(reporterID string, req *dto.CreateReportRequest) (*dto.ReportResponse, error)

	// Admin dashboard
	GetReport(reportID string) (*dto.ReportResponse, error)
	ListReports(status models.ReportStatus, limit, offset int) (*dto.ReportListResponse, error)
	ResolveReport(adminID, reportID string, req *dto.ResolveReportRequest) error
	DismissReport(adminID, reportID string) error
}

type moderationService struct {
	reportRepo  repositories.ReportRepository
	caseRepo    repositories.CaseRepository
	commentRepo repositories.CommentRepository
}

func NewModerationService(
	reportRepo repositories.ReportRepository,
	caseRepo repositories.CaseRepository,
	commentRepo repositories.CommentRepository,
) ModerationService {
	return &moderationService{
		reportRepo:  reportRepo,
		caseRepo:    caseRepo,
		commentRepo: commentRepo,
	}
}

func (s *moderationService) ReportContent(reporterID string, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	// Verify the target exists before accepting the report.
	switch req.TargetType {
	case models.ReportTargetCase:
		if _, err := s.caseRepo.FindByID(req.TargetID); err != nil {
			if errors.Is(err, repositories.ErrCaseNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
	case models.ReportTargetComment:
		if _, err := s.commentRepo.FindByID(req.TargetID); err != nil {
			if errors.Is(err, repositories.ErrCommentNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
	default:
		return nil, apperrors.NewBadRequestError("unknown report target type")
	}

	report := &models.Report{
		ReporterID: reporterID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
		Status:     models.ReportStatusOpen,
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.ReportToResponse(report), nil
}

func (s *moderationService) GetReport(reportID string) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.FindByID(reportID)
	if err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.ReportToResponse(report), nil
}

func (s *moderationService) ListReports(status models.ReportStatus, limit, offset int) (*dto.ReportListResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	reports, total, err := s.reportRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ReportListResponse{
		Reports: make([]*dto.ReportResponse, 0, len(reports)),
		Total:   total,
	}
	for i := range reports {
		resp.Reports = append(resp.Reports, dto.ReportToResponse(&reports[i]))
	}
	return resp, nil
}

func (s *moderationService) ResolveReport(adminID, reportID string, req *dto.ResolveReportRequest) error {
	err := s.reportRepo.Resolve(reportID, adminID, req.Resolution, req.RemoveTarget)
	if err != nil {
		return s.mapReportError(err)
	}
	return nil
}

func (s *moderationService) DismissReport(adminID, reportID string) error {
	if err := s.reportRepo.Dismiss(reportID, adminID); err != nil {
		return s.mapReportError(err)
	}
	return nil
}

func (s *moderationService) mapReportError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrReportNotFound):
		return apperrors.ErrNotFound(err)
	case errors.Is(err, repositories.ErrReportNotOpen):
		return apperrors.ErrInvalidStatus("report", "report has already been reviewed")
	default:
		return apperrors.InternalError(err)
	}
}
