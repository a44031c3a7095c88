package repositories

import (
	"errors"

	"medcase_backend/internal/models"

	"gorm.io/gorm"
)

// InteractionRepository covers likes and saves. Both toggles bundle the
// membership write and the denormalized counter update into one
// transaction.
type InteractionRepository interface {
	ToggleLike(userID, caseID string) (liked bool, err error)
	ToggleSave(userID, caseID string) (saved bool, err error)
	IsLiked(userID, caseID string) (bool, error)
	IsSaved(userID, caseID string) (bool, error)
	ListSavedCases(userID string, limit, offset int) ([]models.Case, int64, error)
}

type InteractionRepositoryImpl struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &InteractionRepositoryImpl{db: db}
}

func (r *InteractionRepositoryImpl) ToggleLike(userID, caseID string) (bool, error) {
	var liked bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("user_id = ? AND case_id = ?", userID, caseID).First(&existing).Error

		switch {
		case err == nil:
			// Already liked: remove and decrement.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			liked = false
			return tx.Model(&models.Case{}).Where("id = ?", caseID).
				Update("likes_count", gorm.Expr("likes_count - ?", 1)).Error

		case errors.Is(err, gorm.ErrRecordNotFound):
			like := &models.Like{UserID: userID, CaseID: caseID}
			if err := tx.Create(like).Error; err != nil {
				return err
			}
			liked = true
			return tx.Model(&models.Case{}).Where("id = ?", caseID).
				Update("likes_count", gorm.Expr("likes_count + ?", 1)).Error

		default:
			return err
		}
	})

	return liked, err
}

func (r *InteractionRepositoryImpl) ToggleSave(userID, caseID string) (bool, error) {
	var saved bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Save
		err := tx.Where("user_id = ? AND case_id = ?", userID, caseID).First(&existing).Error

		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			saved = false
			return tx.Model(&models.Case{}).Where("id = ?", caseID).
				Update("saves_count", gorm.Expr("saves_count - ?", 1)).Error

		case errors.Is(err, gorm.ErrRecordNotFound):
			save := &models.Save{UserID: userID, CaseID: caseID}
			if err := tx.Create(save).Error; err != nil {
				return err
			}
			saved = true
			return tx.Model(&models.Case{}).Where("id = ?", caseID).
				Update("saves_count", gorm.Expr("saves_count + ?", 1)).Error

		default:
			return err
		}
	})

	return saved, err
}

func (r *InteractionRepositoryImpl) IsLiked(userID, caseID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND case_id = ?", userID, caseID).Count(&count).Error
	return count > 0, err
}

func (r *InteractionRepositoryImpl) IsSaved(userID, caseID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Save{}).
		Where("user_id = ? AND case_id = ?", userID, caseID).Count(&count).Error
	return count > 0, err
}

func (r *InteractionRepositoryImpl) ListSavedCases(userID string, limit, offset int) ([]models.Case, int64, error) {
	base := r.db.Model(&models.Case{}).
		Joins("JOIN saves ON saves.case_id = cases.id").
		Where("saves.user_id = ? AND cases.status = ?", userID, models.CaseStatusPublished)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cases []models.Case
	err := base.Preload("Author").
		Order("saves.created_at DESC").Limit(limit).Offset(offset).
		Find(&cases).Error

	return cases, total, err
}
