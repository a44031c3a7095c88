package repositories

import (
	"errors"

	"medcase_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	// Create inserts the comment and bumps the parent counter in one
	// transaction.
	Create(comment *models.Comment) error
	FindByID(id string) (*models.Comment, error)
	ListByCase(caseID string, limit, offset int) ([]models.Comment, int64, error)
	// Delete removes the comment and decrements the parent counter in one
	// transaction.
	Delete(id string) error
	DeleteByCase(tx *gorm.DB, caseID string) error
}

type CommentRepositoryImpl struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		return tx.Model(&models.Case{}).Where("id = ?", comment.CaseID).
			Update("comments_count", gorm.Expr("comments_count + ?", 1)).Error
	})
}

func (r *CommentRepositoryImpl) FindByID(id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("User").First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) ListByCase(caseID string, limit, offset int) ([]models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{}).Where("case_id = ?", caseID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := query.Preload("User").
		Order("created_at ASC").Limit(limit).Offset(offset).
		Find(&comments).Error

	return comments, total, err
}

func (r *CommentRepositoryImpl) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return err
		}

		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}

		return tx.Model(&models.Case{}).Where("id = ?", comment.CaseID).
			Update("comments_count", gorm.Expr("comments_count - ?", 1)).Error
	})
}

// DeleteByCase removes every comment of a case inside the caller's
// transaction. The parent counter is not touched since the case itself is
// being removed.
func (r *CommentRepositoryImpl) DeleteByCase(tx *gorm.DB, caseID string) error {
	return tx.Where("case_id = ?", caseID).Delete(&models.Comment{}).Error
}
