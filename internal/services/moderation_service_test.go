package services

import (
	"testing"

	"medcase_backend/internal/models"
	"medcase_backend/internal/services/dto"
	"medcase_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCase(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	c := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)

	report, err := container.ModerationService.ReportContent(student.ID, &dto.CreateReportRequest{
		TargetType: models.ReportTargetCase,
		TargetID:   c.ID,
		Reason:     "Patient identity is visible on the second image.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusOpen, report.Status)
	assert.Equal(t, c.ID, report.TargetID)
}

func TestReportUnknownTarget(t *testing.T) {
	container, db := newTestContainer(t)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	_, err := container.ModerationService.ReportContent(student.ID, &dto.CreateReportRequest{
		TargetType: models.ReportTargetCase,
		TargetID:   "no-such-case",
		Reason:     "Reporting a case that does not exist.",
	})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	_, err = container.ModerationService.ReportContent(student.ID, &dto.CreateReportRequest{
		TargetType: "profile",
		TargetID:   "whatever",
		Reason:     "Unknown target type.",
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Report{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestResolveReportRemovesCase(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)

	c := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)
	report, err := container.ModerationService.ReportContent(student.ID, &dto.CreateReportRequest{
		TargetType: models.ReportTargetCase,
		TargetID:   c.ID,
		Reason:     "Contains identifiable patient data.",
	})
	require.NoError(t, err)

	err = container.ModerationService.ResolveReport(admin.ID, report.ID, &dto.ResolveReportRequest{
		Resolution:   "Case removed, author notified out of band.",
		RemoveTarget: true,
	})
	require.NoError(t, err)

	var storedCase models.Case
	require.NoError(t, db.First(&storedCase, "id = ?", c.ID).Error)
	assert.Equal(t, models.CaseStatusRemoved, storedCase.Status)

	resolved, err := container.ModerationService.GetReport(report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, admin.ID, *resolved.ResolvedBy)
	assert.NotNil(t, resolved.ResolvedAt)
}

func TestResolveReportRemovesComment(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)

	c := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)
	comment, err := container.CommentService.AddComment(student.ID, c.ID, &dto.CreateCommentRequest{
		Text: "Abusive remark slated for removal.",
	})
	require.NoError(t, err)

	report, err := container.ModerationService.ReportContent(doctor.ID, &dto.CreateReportRequest{
		TargetType: models.ReportTargetComment,
		TargetID:   comment.ID,
		Reason:     "Abusive language.",
	})
	require.NoError(t, err)

	err = container.ModerationService.ResolveReport(admin.ID, report.ID, &dto.ResolveReportRequest{
		Resolution:   "Comment deleted.",
		RemoveTarget: true,
	})
	require.NoError(t, err)

	var comments int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.EqualValues(t, 0, comments)

	// The denormalized counter follows the deletion.
	var storedCase models.Case
	require.NoError(t, db.First(&storedCase, "id = ?", c.ID).Error)
	assert.Equal(t, 0, storedCase.CommentsCount)
}

func TestResolveWithoutRemovalKeepsTarget(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)

	c := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)
	report, err := container.ModerationService.ReportContent(student.ID, &dto.CreateReportRequest{
		TargetType: models.ReportTargetCase,
		TargetID:   c.ID,
		Reason:     "Possibly miscategorized.",
	})
	require.NoError(t, err)

	err = container.ModerationService.ResolveReport(admin.ID, report.ID, &dto.ResolveReportRequest{
		Resolution: "Category corrected, content is fine.",
	})
	require.NoError(t, err)

	var storedCase models.Case
	require.NoError(t, db.First(&storedCase, "id = ?", c.ID).Error)
	assert.Equal(t, models.CaseStatusPublished, storedCase.Status)
}

func TestDismissReport(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)

	c := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)
	report, err := container.ModerationService.ReportContent(student.ID, &dto.CreateReportRequest{
		TargetType: models.ReportTargetCase,
		TargetID:   c.ID,
		Reason:     "Disagrees with the diagnosis.",
	})
	require.NoError(t, err)

	require.NoError(t, container.ModerationService.DismissReport(admin.ID, report.ID))

	dismissed, err := container.ModerationService.GetReport(report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusDismissed, dismissed.Status)

	// A closed report cannot be reviewed again.
	err = container.ModerationService.DismissReport(admin.ID, report.ID)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)

	err = container.ModerationService.ResolveReport(admin.ID, report.ID, &dto.ResolveReportRequest{
		Resolution: "Trying to resolve after dismissal.",
	})
	require.Error(t, err)
}

func TestListReportsByStatus(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)

	first := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)
	second := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)

	r1, err := container.ModerationService.ReportContent(student.ID, &dto.CreateReportRequest{
		TargetType: models.ReportTargetCase, TargetID: first.ID, Reason: "First report.",
	})
	require.NoError(t, err)
	_, err = container.ModerationService.ReportContent(student.ID, &dto.CreateReportRequest{
		TargetType: models.ReportTargetCase, TargetID: second.ID, Reason: "Second report.",
	})
	require.NoError(t, err)

	open, err := container.ModerationService.ListReports(models.ReportStatusOpen, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, open.Total)

	require.NoError(t, container.ModerationService.DismissReport(admin.ID, r1.ID))

	open, err = container.ModerationService.ListReports(models.ReportStatusOpen, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, open.Total)

	dismissed, err := container.ModerationService.ListReports(models.ReportStatusDismissed, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, dismissed.Total)
}
