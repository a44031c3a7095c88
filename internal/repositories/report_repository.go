package repositories

import (
	"errors"
	"time"

	"medcase_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrReportNotOpen  = errors.New("report is not open")
)

type ReportRepository interface {
	Create(report *models.Report) error
	FindByID(id string) (*models.Report, error)
	ListByStatus(status models.ReportStatus, limit, offset int) ([]models.Report, int64, error)
	CountByStatus(status models.ReportStatus) (int64, error)

	// Resolve closes an open report. When removeTarget is set, the
	// reported case is removed (or the reported comment deleted) inside
	// the same transaction.
	Resolve(reportID, adminID, resolution string, removeTarget bool) error
	Dismiss(reportID, adminID string) error
}

type ReportRepositoryImpl struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

func (r *ReportRepositoryImpl) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *ReportRepositoryImpl) FindByID(id string) (*models.Report, error) {
	var report models.Report
	err := r.db.First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepositoryImpl) ListByStatus(status models.ReportStatus, limit, offset int) ([]models.Report, int64, error) {
	query := r.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	err := query.Order("created_at ASC").Limit(limit).Offset(offset).
		Find(&reports).Error

	return reports, total, err
}

func (r *ReportRepositoryImpl) CountByStatus(status models.ReportStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *ReportRepositoryImpl) Resolve(reportID, adminID, resolution string, removeTarget bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		report, err := r.closeReport(tx, reportID, adminID, models.ReportStatusResolved, resolution)
		if err != nil {
			return err
		}

		if !removeTarget {
			return nil
		}

		switch report.TargetType {
		case models.ReportTargetCase:
			return tx.Model(&models.Case{}).
				Where("id = ? AND status <> ?", report.TargetID, models.CaseStatusRemoved).
				Updates(map[string]interface{}{
					"status":     models.CaseStatusRemoved,
					"updated_at": time.Now(),
				}).Error

		case models.ReportTargetComment:
			var comment models.Comment
			if err := tx.First(&comment, "id = ?", report.TargetID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil // already gone
				}
				return err
			}
			if err := tx.Delete(&comment).Error; err != nil {
				return err
			}
			return tx.Model(&models.Case{}).Where("id = ?", comment.CaseID).
				Update("comments_count", gorm.Expr("comments_count - ?", 1)).Error

		default:
			return nil
		}
	})
}

func (r *ReportRepositoryImpl) Dismiss(reportID, adminID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		_, err := r.closeReport(tx, reportID, adminID, models.ReportStatusDismissed, "")
		return err
	})
}

// closeReport performs the guarded open -> terminal transition on the
// report row.
func (r *ReportRepositoryImpl) closeReport(tx *gorm.DB, reportID, adminID string, status models.ReportStatus, resolution string) (*models.Report, error) {
	var report models.Report
	if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if report.Status != models.ReportStatusOpen {
		return nil, ErrReportNotOpen
	}

	now := time.Now()

	result := tx.Model(&models.Report{}).
		Where("id = ? AND status = ?", reportID, models.ReportStatusOpen).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_by": &adminID,
			"resolved_at": &now,
			"resolution":  resolution,
			"updated_at":  now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrReportNotOpen
	}

	return &report, nil
}
