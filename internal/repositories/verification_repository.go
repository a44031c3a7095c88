package repositories

import (
	"errors"
	"time"

	"medcase_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRequestNotFound = errors.New("verification request not found")
	// ErrRequestNotPending means the request already reached a terminal
	// status; the transition is refused and nothing is written.
	ErrRequestNotPending = errors.New("verification request is not pending")
	// ErrPendingRequestExists guards against duplicate submissions while a
	// request is still under review.
	ErrPendingRequestExists = errors.New("pending verification request already exists")
)

type VerificationRepository interface {
	// Submit creates the request and flips the user mirror to pending in
	// one transaction. Fails if the user already has a pending request.
	Submit(request *models.VerificationRequest) error

	FindByID(id string) (*models.VerificationRequest, error)
	FindPendingByUserID(userID string) (*models.VerificationRequest, error)
	FindLatestByUserID(userID string) (*models.VerificationRequest, error)
	ListByStatus(status models.VerificationStatus, limit, offset int) ([]models.VerificationRequest, int64, error)
	CountByStatus(status models.VerificationStatus) (int64, error)

	// Approve moves a pending request to approved and flips the user
	// mirror to verified; both writes run in a single transaction so the
	// mirror cannot diverge from the request.
	Approve(requestID, reviewerID string) (*models.VerificationRequest, error)

	// Reject is symmetric to Approve, persisting the reason verbatim on
	// both the request and the user profile.
	Reject(requestID, reviewerID, reason string) (*models.VerificationRequest, error)
}

type VerificationRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

func (r *VerificationRepositoryImpl) Submit(request *models.VerificationRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var pending int64
		err := tx.Model(&models.VerificationRequest{}).
			Where("user_id = ? AND status = ?", request.UserID, models.VerificationStatusPending).
			Count(&pending).Error
		if err != nil {
			return err
		}
		if pending > 0 {
			return ErrPendingRequestExists
		}

		request.Status = models.VerificationStatusPending
		if request.SubmittedAt.IsZero() {
			request.SubmittedAt = time.Now()
		}

		if err := tx.Create(request).Error; err != nil {
			return err
		}

		result := tx.Model(&models.User{}).Where("id = ?", request.UserID).
			Updates(map[string]interface{}{
				"doctor_verification_status": models.DoctorVerificationPending,
				"rejection_reason":           "",
				"updated_at":                 time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

func (r *VerificationRepositoryImpl) FindByID(id string) (*models.VerificationRequest, error) {
	var request models.VerificationRequest
	err := r.db.Preload("User").First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *VerificationRepositoryImpl) FindPendingByUserID(userID string) (*models.VerificationRequest, error) {
	var request models.VerificationRequest
	err := r.db.Where("user_id = ? AND status = ?", userID, models.VerificationStatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *VerificationRepositoryImpl) FindLatestByUserID(userID string) (*models.VerificationRequest, error) {
	var request models.VerificationRequest
	err := r.db.Where("user_id = ?", userID).
		Order("submitted_at DESC").First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *VerificationRepositoryImpl) ListByStatus(status models.VerificationStatus, limit, offset int) ([]models.VerificationRequest, int64, error) {
	query := r.db.Model(&models.VerificationRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.VerificationRequest
	err := query.Preload("User").
		Order("submitted_at ASC").Limit(limit).Offset(offset).
		Find(&requests).Error

	return requests, total, err
}

func (r *VerificationRepositoryImpl) CountByStatus(status models.VerificationStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.VerificationRequest{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *VerificationRepositoryImpl) Approve(requestID, reviewerID string) (*models.VerificationRequest, error) {
	return r.review(requestID, reviewerID, models.VerificationStatusApproved, "")
}

func (r *VerificationRepositoryImpl) Reject(requestID, reviewerID, reason string) (*models.VerificationRequest, error) {
	return r.review(requestID, reviewerID, models.VerificationStatusRejected, reason)
}

// review performs the guarded pending -> terminal transition. The UPDATE
// is conditioned on status = 'pending', so of two concurrent reviewers
// only one can win; the loser sees RowsAffected == 0 and gets
// ErrRequestNotPending without having written anything.
func (r *VerificationRepositoryImpl) review(requestID, reviewerID string, status models.VerificationStatus, reason string) (*models.VerificationRequest, error) {
	var request models.VerificationRequest

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if request.Status != models.VerificationStatusPending {
			return ErrRequestNotPending
		}

		now := time.Now()

		result := tx.Model(&models.VerificationRequest{}).
			Where("id = ? AND status = ?", requestID, models.VerificationStatusPending).
			Updates(map[string]interface{}{
				"status":           status,
				"reviewed_at":      &now,
				"reviewer_id":      &reviewerID,
				"rejection_reason": reason,
				"updated_at":       now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRequestNotPending
		}

		mirror := models.DoctorVerificationVerified
		if status == models.VerificationStatusRejected {
			mirror = models.DoctorVerificationRejected
		}

		userResult := tx.Model(&models.User{}).Where("id = ?", request.UserID).
			Updates(map[string]interface{}{
				"doctor_verification_status": mirror,
				"rejection_reason":           reason,
				"updated_at":                 now,
			})
		if userResult.Error != nil {
			return userResult.Error
		}
		if userResult.RowsAffected == 0 {
			return ErrUserNotFound
		}

		request.Status = status
		request.ReviewedAt = &now
		request.ReviewerID = &reviewerID
		request.RejectionReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &request, nil
}
