package services

import (
	"encoding/json"
	"errors"
	"time"

	"medcase_backend/internal/logger"
	"medcase_backend/internal/models"
	"medcase_backend/internal/repositories"
	"medcase_backend/internal/services/dto"
	"medcase_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

const defaultFeedLimit = 20

type CaseService interface {
	CreateCase(authorID string, req *dto.CreateCaseRequest) (*dto.CaseResponse, error)
	GetCase(caseID, viewerID string) (*dto.CaseResponse, error)
	UpdateCase(authorID, caseID string, req *dto.UpdateCaseRequest) (*dto.CaseResponse, error)
	PublishCase(authorID, caseID string) (*dto.CaseResponse, error)
	RemoveCase(actorID, caseID string, isAdmin bool) error

	GetFeed(viewerID string, filter *dto.CaseFeedFilter) (*dto.CaseFeedResponse, error)
	GetMyCases(authorID string, limit, offset int) (*dto.CaseListResponse, error)
	GetAuthorCases(authorID string, limit, offset int) (*dto.CaseListResponse, error)
}

type caseService struct {
	caseRepo        repositories.CaseRepository
	userRepo        repositories.UserRepository
	interactionRepo repositories.InteractionRepository
}

func NewCaseService(
	caseRepo repositories.CaseRepository,
	userRepo repositories.UserRepository,
	interactionRepo repositories.InteractionRepository,
) CaseService {
	return &caseService{
		caseRepo:        caseRepo,
		userRepo:        userRepo,
		interactionRepo: interactionRepo,
	}
}

func (s *caseService) CreateCase(authorID string, req *dto.CreateCaseRequest) (*dto.CaseResponse, error) {
	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Only verified doctors may author cases. Students and unverified
	// doctors are refused here regardless of the publish flag.
	if !author.CanPublishCases() {
		return nil, apperrors.ErrDoctorNotVerified
	}

	c := &models.Case{
		AuthorID:        authorID,
		Title:           req.Title,
		Specialty:       req.Specialty,
		Category:        req.Category,
		Tags:            encodeStringList(req.Tags),
		ClinicalHistory: req.ClinicalHistory,
		Examination:     req.Examination,
		Diagnosis:       req.Diagnosis,
		Discussion:      req.Discussion,
		Images:          encodeStringList(req.Images),
		Status:          models.CaseStatusDraft,
	}
	if req.Publish {
		now := time.Now()
		c.Status = models.CaseStatusPublished
		c.PublishedAt = &now
	}

	if err := s.caseRepo.Create(c); err != nil {
		return nil, apperrors.InternalError(err)
	}

	c.Author = *author
	return dto.CaseToResponse(c), nil
}

func (s *caseService) GetCase(caseID, viewerID string) (*dto.CaseResponse, error) {
	c, err := s.caseRepo.FindByIDWithAuthor(caseID)
	if err != nil {
		if errors.Is(err, repositories.ErrCaseNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Drafts are visible to their author only; removed cases to no one
	// outside the admin surface.
	if c.Status != models.CaseStatusPublished && c.AuthorID != viewerID {
		return nil, apperrors.ErrNotFound(repositories.ErrCaseNotFound)
	}

	if c.Status == models.CaseStatusPublished && viewerID != c.AuthorID {
		if err := s.caseRepo.IncrementViews(caseID); err != nil {
			logger.WithError(err).Warn("failed to increment case views", "case_id", caseID)
		} else {
			c.ViewsCount++
		}
	}

	resp := dto.CaseToResponse(c)
	s.decorateViewerState(resp, viewerID)
	return resp, nil
}

func (s *caseService) UpdateCase(authorID, caseID string, req *dto.UpdateCaseRequest) (*dto.CaseResponse, error) {
	c, err := s.caseRepo.FindByID(caseID)
	if err != nil {
		if errors.Is(err, repositories.ErrCaseNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if c.AuthorID != authorID {
		return nil, apperrors.ErrNotCaseAuthor
	}
	if c.Status == models.CaseStatusRemoved {
		return nil, apperrors.ErrInvalidStatus("case", "removed cases cannot be edited")
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Specialty != nil {
		fields["specialty"] = *req.Specialty
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Tags != nil {
		fields["tags"] = encodeStringList(req.Tags)
	}
	if req.ClinicalHistory != nil {
		fields["clinical_history"] = *req.ClinicalHistory
	}
	if req.Examination != nil {
		fields["examination"] = *req.Examination
	}
	if req.Diagnosis != nil {
		fields["diagnosis"] = *req.Diagnosis
	}
	if req.Discussion != nil {
		fields["discussion"] = *req.Discussion
	}
	if req.Images != nil {
		fields["images"] = encodeStringList(req.Images)
	}

	if len(fields) > 0 {
		if err := s.caseRepo.Update(caseID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetCase(caseID, authorID)
}

func (s *caseService) PublishCase(authorID, caseID string) (*dto.CaseResponse, error) {
	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !author.CanPublishCases() {
		return nil, apperrors.ErrDoctorNotVerified
	}

	c, err := s.caseRepo.FindByID(caseID)
	if err != nil {
		if errors.Is(err, repositories.ErrCaseNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if c.AuthorID != authorID {
		return nil, apperrors.ErrNotCaseAuthor
	}

	if err := s.caseRepo.Publish(caseID); err != nil {
		if errors.Is(err, repositories.ErrCaseNotFound) {
			return nil, apperrors.ErrInvalidStatus("case", "only drafts can be published")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.GetCase(caseID, authorID)
}

func (s *caseService) RemoveCase(actorID, caseID string, isAdmin bool) error {
	c, err := s.caseRepo.FindByID(caseID)
	if err != nil {
		if errors.Is(err, repositories.ErrCaseNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if !isAdmin && c.AuthorID != actorID {
		return apperrors.ErrNotCaseAuthor
	}

	if err := s.caseRepo.Remove(caseID); err != nil {
		if errors.Is(err, repositories.ErrCaseNotFound) {
			return apperrors.ErrInvalidStatus("case", "case is already removed")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *caseService) GetFeed(viewerID string, filter *dto.CaseFeedFilter) (*dto.CaseFeedResponse, error) {
	limit := filter.Limit
	if limit < 1 || limit > 50 {
		limit = defaultFeedLimit
	}

	criteria := repositories.CaseFilter{
		Specialty: filter.Specialty,
		Category:  filter.Category,
		Tag:       filter.Tag,
		CursorID:  filter.CursorID,
		Limit:     limit,
	}
	if filter.Cursor != nil {
		criteria.Cursor = *filter.Cursor
	}

	cases, err := s.caseRepo.ListFeed(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CaseFeedResponse{
		Cases: make([]*dto.CaseResponse, 0, len(cases)),
	}
	for i := range cases {
		item := dto.CaseToResponse(&cases[i])
		s.decorateViewerState(item, viewerID)
		resp.Cases = append(resp.Cases, item)
	}

	// A full page means there may be more; the last case is the cursor
	// for the next request. The id rides along so cases sharing a
	// created_at are never skipped across the page boundary.
	if len(cases) == limit {
		last := cases[len(cases)-1]
		cursor := last.CreatedAt
		resp.NextCursor = &cursor
		resp.NextCursorID = last.ID
	}

	return resp, nil
}

func (s *caseService) GetMyCases(authorID string, limit, offset int) (*dto.CaseListResponse, error) {
	return s.listByAuthor(authorID, true, limit, offset)
}

func (s *caseService) GetAuthorCases(authorID string, limit, offset int) (*dto.CaseListResponse, error) {
	return s.listByAuthor(authorID, false, limit, offset)
}

func (s *caseService) listByAuthor(authorID string, includeDrafts bool, limit, offset int) (*dto.CaseListResponse, error) {
	if limit < 1 || limit > 100 {
		limit = defaultFeedLimit
	}
	if offset < 0 {
		offset = 0
	}

	cases, total, err := s.caseRepo.ListByAuthor(authorID, includeDrafts, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CaseListResponse{
		Cases: make([]*dto.CaseResponse, 0, len(cases)),
		Total: total,
	}
	for i := range cases {
		resp.Cases = append(resp.Cases, dto.CaseToResponse(&cases[i]))
	}
	return resp, nil
}

func (s *caseService) decorateViewerState(resp *dto.CaseResponse, viewerID string) {
	if viewerID == "" || resp == nil {
		return
	}
	if liked, err := s.interactionRepo.IsLiked(viewerID, resp.ID); err == nil {
		resp.IsLiked = liked
	}
	if saved, err := s.interactionRepo.IsSaved(viewerID, resp.ID); err == nil {
		resp.IsSaved = saved
	}
}

func encodeStringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}
