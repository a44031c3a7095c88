package services

import (
	"encoding/json"
	"errors"
	"strings"

	"medcase_backend/internal/email"
	"medcase_backend/internal/logger"
	"medcase_backend/internal/models"
	"medcase_backend/internal/repositories"
	"medcase_backend/internal/services/dto"
	"medcase_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type VerificationService interface {
	// Doctor operations
	Submit(userID string, req *dto.SubmitVerificationRequest) (*dto.VerificationRequestResponse, error)
	GetMyStatus(userID string) (*dto.VerificationStatusResponse, error)

	// Admin operations
	GetRequest(requestID string) (*dto.VerificationRequestResponse, error)
	ListRequests(status models.VerificationStatus, limit, offset int) (*dto.VerificationListResponse, error)
	Approve(reviewerID, requestID string) (*dto.VerificationRequestResponse, error)
	Reject(reviewerID, requestID, reason string) (*dto.VerificationRequestResponse, error)
}

type verificationService struct {
	verificationRepo repositories.VerificationRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	email            email.Provider
}

func NewVerificationService(
	verificationRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	emailProvider email.Provider,
) VerificationService {
	return &verificationService{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		email:            emailProvider,
	}
}

// Submit files a verification request for the doctor. The role check is
// unconditional: students and admins cannot enter the review queue. A
// second submission while one is pending is refused; resubmitting after
// a rejection starts a fresh request.
func (s *verificationService) Submit(userID string, req *dto.SubmitVerificationRequest) (*dto.VerificationRequestResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleDoctor {
		return nil, apperrors.ErrInvalidUserRole
	}
	if user.DoctorVerificationStatus == models.DoctorVerificationVerified {
		return nil, apperrors.ErrInvalidOperation("verification", "doctor is already verified")
	}

	docs, err := json.Marshal(req.Documents)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	request := &models.VerificationRequest{
		UserID:    userID,
		Documents: datatypes.JSON(docs),
		Status:    models.VerificationStatusPending,
	}
	if err := s.verificationRepo.Submit(request); err != nil {
		if errors.Is(err, repositories.ErrPendingRequestExists) {
			return nil, apperrors.ErrVerificationPending
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.VerificationRequestToResponse(request), nil
}

func (s *verificationService) GetMyStatus(userID string) (*dto.VerificationStatusResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.VerificationStatusResponse{
		Status:          user.DoctorVerificationStatus,
		RejectionReason: user.RejectionReason,
	}

	latest, err := s.verificationRepo.FindLatestByUserID(userID)
	if err == nil {
		resp.LatestRequest = dto.VerificationRequestToResponse(latest)
	} else if !errors.Is(err, repositories.ErrRequestNotFound) {
		return nil, apperrors.InternalError(err)
	}

	return resp, nil
}

func (s *verificationService) GetRequest(requestID string) (*dto.VerificationRequestResponse, error) {
	request, err := s.verificationRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.VerificationRequestToResponse(request), nil
}

func (s *verificationService) ListRequests(status models.VerificationStatus, limit, offset int) (*dto.VerificationListResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	requests, total, err := s.verificationRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.VerificationListResponse{
		Requests: make([]*dto.VerificationRequestResponse, 0, len(requests)),
		Total:    total,
	}
	for i := range requests {
		resp.Requests = append(resp.Requests, dto.VerificationRequestToResponse(&requests[i]))
	}
	return resp, nil
}

func (s *verificationService) Approve(reviewerID, requestID string) (*dto.VerificationRequestResponse, error) {
	request, err := s.verificationRepo.Approve(requestID, reviewerID)
	if err != nil {
		return nil, s.mapReviewError(err)
	}

	s.notifyDecision(request, "")
	return dto.VerificationRequestToResponse(request), nil
}

// Reject refuses a pending request. The reason is mandatory and is
// persisted verbatim; the check runs before anything is written.
func (s *verificationService) Reject(reviewerID, requestID, reason string) (*dto.VerificationRequestResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.ErrRejectionReasonRequired
	}

	request, err := s.verificationRepo.Reject(requestID, reviewerID, reason)
	if err != nil {
		return nil, s.mapReviewError(err)
	}

	s.notifyDecision(request, reason)
	return dto.VerificationRequestToResponse(request), nil
}

func (s *verificationService) mapReviewError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrRequestNotFound):
		return apperrors.ErrNotFound(err)
	case errors.Is(err, repositories.ErrRequestNotPending):
		return apperrors.ErrVerificationNotPending
	default:
		return apperrors.InternalError(err)
	}
}

// notifyDecision records the in-app notification and sends the decision
// email after the review transaction has committed. Both are best
// effort: the review stands even if delivery fails.
func (s *verificationService) notifyDecision(request *models.VerificationRequest, reason string) {
	approved := request.Status == models.VerificationStatusApproved

	title := "Verification approved"
	message := "Your doctor verification has been approved. You can now publish cases."
	if !approved {
		title = "Verification rejected"
		message = reason
	}

	data, _ := json.Marshal(map[string]string{"request_id": request.ID})
	notification := &models.Notification{
		UserID:  request.UserID,
		Type:    models.NotificationTypeVerificationDecision,
		Title:   title,
		Message: message,
		Data:    datatypes.JSON(data),
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.WithError(err).Warn("failed to create decision notification", "request_id", request.ID)
	}

	user, err := s.userRepo.FindByID(request.UserID)
	if err != nil {
		logger.WithError(err).Warn("failed to load user for decision email", "request_id", request.ID)
		return
	}

	template := email.TemplateVerificationApproved
	templateData := email.TemplateData{"Name": user.Name}
	if !approved {
		template = email.TemplateVerificationRejected
		templateData["Reason"] = reason
	}

	go func() {
		if err := s.email.SendTemplate([]string{user.Email}, title, template, templateData); err != nil {
			logger.WithError(err).Error("failed to send decision email", "request_id", request.ID)
		}
	}()
}
