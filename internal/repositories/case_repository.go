package repositories

import (
	"errors"
	"time"

	"medcase_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCaseNotFound = errors.New("case not found")

type CaseRepository interface {
	Create(c *models.Case) error
	FindByID(id string) (*models.Case, error)
	FindByIDWithAuthor(id string) (*models.Case, error)
	Update(id string, fields map[string]interface{}) error
	Publish(id string) error
	Remove(id string) error

	// Feed queries
	ListFeed(criteria CaseFilter) ([]models.Case, error)
	ListByAuthor(authorID string, includeDrafts bool, limit, offset int) ([]models.Case, int64, error)

	// Counters, atomic increments on the denormalized columns
	IncrementViews(id string) error
}

// CaseFilter drives the newsfeed query. Cursor is the created_at of the
// last case of the previous page; zero value means "from the top".
// CursorID breaks ties between cases sharing a created_at.
type CaseFilter struct {
	Specialty string
	Category  string
	Tag       string
	AuthorID  string
	Cursor    time.Time
	CursorID  string
	Limit     int
}

type CaseRepositoryImpl struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &CaseRepositoryImpl{db: db}
}

func (r *CaseRepositoryImpl) Create(c *models.Case) error {
	return r.db.Create(c).Error
}

func (r *CaseRepositoryImpl) FindByID(id string) (*models.Case, error) {
	var medCase models.Case
	err := r.db.First(&medCase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	return &medCase, nil
}

func (r *CaseRepositoryImpl) FindByIDWithAuthor(id string) (*models.Case, error) {
	var medCase models.Case
	err := r.db.Preload("Author").First(&medCase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	return &medCase, nil
}

func (r *CaseRepositoryImpl) Update(id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	result := r.db.Model(&models.Case{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCaseNotFound
	}
	return nil
}

func (r *CaseRepositoryImpl) Publish(id string) error {
	now := time.Now()

	result := r.db.Model(&models.Case{}).
		Where("id = ? AND status = ?", id, models.CaseStatusDraft).
		Updates(map[string]interface{}{
			"status":       models.CaseStatusPublished,
			"published_at": &now,
			"updated_at":   now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCaseNotFound
	}
	return nil
}

func (r *CaseRepositoryImpl) Remove(id string) error {
	result := r.db.Model(&models.Case{}).
		Where("id = ? AND status <> ?", id, models.CaseStatusRemoved).
		Updates(map[string]interface{}{
			"status":     models.CaseStatusRemoved,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCaseNotFound
	}
	return nil
}

func (r *CaseRepositoryImpl) ListFeed(criteria CaseFilter) ([]models.Case, error) {
	query := r.db.Preload("Author").
		Where("status = ?", models.CaseStatusPublished)

	if criteria.Specialty != "" {
		query = query.Where("specialty = ?", criteria.Specialty)
	}
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.Tag != "" {
		// jsonb containment on the tags array
		query = query.Where("tags @> ?", `["`+criteria.Tag+`"]`)
	}
	if criteria.AuthorID != "" {
		query = query.Where("author_id = ?", criteria.AuthorID)
	}
	if !criteria.Cursor.IsZero() {
		if criteria.CursorID != "" {
			query = query.Where("(created_at < ? OR (created_at = ? AND id < ?))",
				criteria.Cursor, criteria.Cursor, criteria.CursorID)
		} else {
			query = query.Where("created_at < ?", criteria.Cursor)
		}
	}

	limit := criteria.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var cases []models.Case
	err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&cases).Error
	return cases, err
}

func (r *CaseRepositoryImpl) ListByAuthor(authorID string, includeDrafts bool, limit, offset int) ([]models.Case, int64, error) {
	query := r.db.Model(&models.Case{}).Where("author_id = ?", authorID)

	if includeDrafts {
		query = query.Where("status <> ?", models.CaseStatusRemoved)
	} else {
		query = query.Where("status = ?", models.CaseStatusPublished)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cases []models.Case
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&cases).Error
	return cases, total, err
}

func (r *CaseRepositoryImpl) IncrementViews(id string) error {
	return r.db.Model(&models.Case{}).Where("id = ?", id).
		Update("views_count", gorm.Expr("views_count + ?", 1)).Error
}
