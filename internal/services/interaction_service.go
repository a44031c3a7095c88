package services

import (
	"errors"

	"medcase_backend/internal/models"
	"medcase_backend/internal/repositories"
	"medcase_backend/internal/services/dto"
	"medcase_backend/pkg/apperrors"
)

type InteractionService interface {
	ToggleLike(userID, caseID string) (*dto.ToggleResponse, error)
	ToggleSave(userID, caseID string) (*dto.ToggleResponse, error)
	GetSavedCases(userID string, limit, offset int) (*dto.SavedCasesResponse, error)
}

type interactionService struct {
	interactionRepo repositories.InteractionRepository
	caseRepo        repositories.CaseRepository
}

func NewInteractionService(
	interactionRepo repositories.InteractionRepository,
	caseRepo repositories.CaseRepository,
) InteractionService {
	return &interactionService{
		interactionRepo: interactionRepo,
		caseRepo:        caseRepo,
	}
}

func (s *interactionService) ToggleLike(userID, caseID string) (*dto.ToggleResponse, error) {
	if err := s.requirePublished(caseID); err != nil {
		return nil, err
	}

	liked, err := s.interactionRepo.ToggleLike(userID, caseID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.toggleResponse(caseID, liked, func(c *models.Case) int { return c.LikesCount })
}

func (s *interactionService) ToggleSave(userID, caseID string) (*dto.ToggleResponse, error) {
	if err := s.requirePublished(caseID); err != nil {
		return nil, err
	}

	saved, err := s.interactionRepo.ToggleSave(userID, caseID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.toggleResponse(caseID, saved, func(c *models.Case) int { return c.SavesCount })
}

func (s *interactionService) GetSavedCases(userID string, limit, offset int) (*dto.SavedCasesResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	cases, total, err := s.interactionRepo.ListSavedCases(userID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.SavedCasesResponse{
		Cases: make([]*dto.CaseResponse, 0, len(cases)),
		Total: total,
	}
	for i := range cases {
		item := dto.CaseToResponse(&cases[i])
		item.IsSaved = true
		resp.Cases = append(resp.Cases, item)
	}
	return resp, nil
}

func (s *interactionService) requirePublished(caseID string) error {
	c, err := s.caseRepo.FindByID(caseID)
	if err != nil {
		if errors.Is(err, repositories.ErrCaseNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if c.Status != models.CaseStatusPublished {
		return apperrors.ErrCaseNotPublished
	}
	return nil
}

func (s *interactionService) toggleResponse(caseID string, active bool, count func(*models.Case) int) (*dto.ToggleResponse, error) {
	c, err := s.caseRepo.FindByID(caseID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.ToggleResponse{Active: active, Count: count(c)}, nil
}
