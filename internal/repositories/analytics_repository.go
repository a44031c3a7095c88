package repositories

import (
	"errors"
	"time"

	"medcase_backend/internal/models"

	"gorm.io/gorm"
)

// AnalyticsRepository backs the admin dashboards with read-aggregate
// queries over the other collections.
type AnalyticsRepository interface {
	GetUserStats() (*UserStats, error)
	GetRegistrationStats(days int) (*RegistrationStats, error)
	GetCaseStats(dateFrom, dateTo time.Time) (*CaseStats, error)
	GetTopCases(limit int) ([]models.Case, error)
	GetVerificationQueueStats() (*VerificationQueueStats, error)
}

type UserStats struct {
	Total           int64            `json:"total"`
	ByRole          map[string]int64 `json:"by_role"`
	ByStatus        map[string]int64 `json:"by_status"`
	VerifiedDoctors int64            `json:"verified_doctors"`
}

type RegistrationStats struct {
	Total     int64            `json:"total"`
	Today     int64            `json:"today"`
	ThisWeek  int64            `json:"this_week"`
	ThisMonth int64            `json:"this_month"`
	ByRole    map[string]int64 `json:"by_role"`
}

type CaseStats struct {
	TotalPublished int64 `json:"total_published"`
	TotalDrafts    int64 `json:"total_drafts"`
	NewInRange     int64 `json:"new_in_range"`
	TotalViews     int64 `json:"total_views"`
	TotalLikes     int64 `json:"total_likes"`
	TotalComments  int64 `json:"total_comments"`
}

type VerificationQueueStats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	// OldestPendingAge is the age of the oldest unreviewed request.
	OldestPendingAge time.Duration `json:"oldest_pending_age"`
}

type AnalyticsRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &AnalyticsRepositoryImpl{db: db}
}

func (r *AnalyticsRepositoryImpl) GetUserStats() (*UserStats, error) {
	stats := &UserStats{
		ByRole:   make(map[string]int64),
		ByStatus: make(map[string]int64),
	}

	if err := r.db.Model(&models.User{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var roleBuckets []bucket
	err := r.db.Model(&models.User{}).
		Select("role AS key, COUNT(*) AS count").Group("role").
		Scan(&roleBuckets).Error
	if err != nil {
		return nil, err
	}
	for _, b := range roleBuckets {
		stats.ByRole[b.Key] = b.Count
	}

	var statusBuckets []bucket
	err = r.db.Model(&models.User{}).
		Select("status AS key, COUNT(*) AS count").Group("status").
		Scan(&statusBuckets).Error
	if err != nil {
		return nil, err
	}
	for _, b := range statusBuckets {
		stats.ByStatus[b.Key] = b.Count
	}

	err = r.db.Model(&models.User{}).
		Where("role = ? AND doctor_verification_status = ?",
			models.UserRoleDoctor, models.DoctorVerificationVerified).
		Count(&stats.VerifiedDoctors).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *AnalyticsRepositoryImpl) GetRegistrationStats(days int) (*RegistrationStats, error) {
	stats := &RegistrationStats{
		ByRole: make(map[string]int64),
	}

	now := time.Now()
	since := now.AddDate(0, 0, -days)

	query := r.db.Model(&models.User{}).Where("created_at >= ?", since)
	if err := query.Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := r.db.Model(&models.User{}).Where("created_at >= ?", today).Count(&stats.Today).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.User{}).Where("created_at >= ?", now.AddDate(0, 0, -7)).Count(&stats.ThisWeek).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.User{}).Where("created_at >= ?", now.AddDate(0, -1, 0)).Count(&stats.ThisMonth).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string
		Count int64
	}
	var roleBuckets []bucket
	err := r.db.Model(&models.User{}).Where("created_at >= ?", since).
		Select("role AS key, COUNT(*) AS count").Group("role").
		Scan(&roleBuckets).Error
	if err != nil {
		return nil, err
	}
	for _, b := range roleBuckets {
		stats.ByRole[b.Key] = b.Count
	}

	return stats, nil
}

func (r *AnalyticsRepositoryImpl) GetCaseStats(dateFrom, dateTo time.Time) (*CaseStats, error) {
	stats := &CaseStats{}

	if err := r.db.Model(&models.Case{}).
		Where("status = ?", models.CaseStatusPublished).
		Count(&stats.TotalPublished).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&models.Case{}).
		Where("status = ?", models.CaseStatusDraft).
		Count(&stats.TotalDrafts).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&models.Case{}).
		Where("status = ? AND published_at BETWEEN ? AND ?",
			models.CaseStatusPublished, dateFrom, dateTo).
		Count(&stats.NewInRange).Error; err != nil {
		return nil, err
	}

	type totals struct {
		Views    int64
		Likes    int64
		Comments int64
	}
	var t totals
	err := r.db.Model(&models.Case{}).
		Where("status = ?", models.CaseStatusPublished).
		Select("COALESCE(SUM(views_count), 0) AS views, COALESCE(SUM(likes_count), 0) AS likes, COALESCE(SUM(comments_count), 0) AS comments").
		Scan(&t).Error
	if err != nil {
		return nil, err
	}

	stats.TotalViews = t.Views
	stats.TotalLikes = t.Likes
	stats.TotalComments = t.Comments

	return stats, nil
}

func (r *AnalyticsRepositoryImpl) GetTopCases(limit int) ([]models.Case, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var cases []models.Case
	err := r.db.Preload("Author").
		Where("status = ?", models.CaseStatusPublished).
		Order("likes_count + saves_count + comments_count DESC").
		Limit(limit).Find(&cases).Error

	return cases, err
}

func (r *AnalyticsRepositoryImpl) GetVerificationQueueStats() (*VerificationQueueStats, error) {
	stats := &VerificationQueueStats{}

	for status, target := range map[models.VerificationStatus]*int64{
		models.VerificationStatusPending:  &stats.Pending,
		models.VerificationStatusApproved: &stats.Approved,
		models.VerificationStatusRejected: &stats.Rejected,
	} {
		err := r.db.Model(&models.VerificationRequest{}).
			Where("status = ?", status).Count(target).Error
		if err != nil {
			return nil, err
		}
	}

	var oldest models.VerificationRequest
	err := r.db.Where("status = ?", models.VerificationStatusPending).
		Order("submitted_at ASC").First(&oldest).Error
	if err == nil {
		stats.OldestPendingAge = time.Since(oldest.SubmittedAt)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return stats, nil
}
