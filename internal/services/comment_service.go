package services

import (
	"encoding/json"
	"errors"

	"medcase_backend/internal/logger"
	"medcase_backend/internal/models"
	"medcase_backend/internal/repositories"
	"medcase_backend/internal/services/dto"
	"medcase_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type CommentService interface {
	AddComment(userID, caseID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(caseID string, limit, offset int) (*dto.CommentListResponse, error)
	DeleteComment(actorID, commentID string, isAdmin bool) error
}

type commentService struct {
	commentRepo      repositories.CommentRepository
	caseRepo         repositories.CaseRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	caseRepo repositories.CaseRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) CommentService {
	return &commentService{
		commentRepo:      commentRepo,
		caseRepo:         caseRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *commentService) AddComment(userID, caseID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	c, err := s.caseRepo.FindByID(caseID)
	if err != nil {
		if errors.Is(err, repositories.ErrCaseNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if c.Status != models.CaseStatusPublished {
		return nil, apperrors.ErrCaseNotPublished
	}

	comment := &models.Comment{
		CaseID: caseID,
		UserID: userID,
		Text:   req.Text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifyCaseAuthor(c, comment)

	author, err := s.userRepo.FindByID(userID)
	if err == nil {
		comment.User = *author
	}
	return dto.CommentToResponse(comment), nil
}

func (s *commentService) ListComments(caseID string, limit, offset int) (*dto.CommentListResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := s.caseRepo.FindByID(caseID); err != nil {
		if errors.Is(err, repositories.ErrCaseNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	comments, total, err := s.commentRepo.ListByCase(caseID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CommentListResponse{
		Comments: make([]*dto.CommentResponse, 0, len(comments)),
		Total:    total,
	}
	for i := range comments {
		resp.Comments = append(resp.Comments, dto.CommentToResponse(&comments[i]))
	}
	return resp, nil
}

func (s *commentService) DeleteComment(actorID, commentID string, isAdmin bool) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !isAdmin && comment.UserID != actorID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// notifyCaseAuthor records an in-app notification for the case author.
// Self-comments are not notified. Failures are logged, never surfaced.
func (s *commentService) notifyCaseAuthor(c *models.Case, comment *models.Comment) {
	if c.AuthorID == comment.UserID {
		return
	}

	data, _ := json.Marshal(map[string]string{
		"case_id":    c.ID,
		"comment_id": comment.ID,
	})
	notification := &models.Notification{
		UserID:  c.AuthorID,
		Type:    models.NotificationTypeNewComment,
		Title:   "New comment on your case",
		Message: c.Title,
		Data:    datatypes.JSON(data),
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.WithError(err).Warn("failed to create comment notification", "case_id", c.ID)
	}
}
