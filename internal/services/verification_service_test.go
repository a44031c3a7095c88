package services

import (
	"testing"

	"medcase_backend/internal/models"
	"medcase_backend/internal/services/dto"
	"medcase_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitTestRequest(t *testing.T, container *ServiceContainer, userID string) *dto.VerificationRequestResponse {
	t.Helper()

	resp, err := container.VerificationService.Submit(userID, &dto.SubmitVerificationRequest{
		Documents: []string{"uploads/license.pdf", "uploads/diploma.pdf"},
	})
	require.NoError(t, err)
	return resp
}

func TestVerificationSubmit(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationNone)

	resp := submitTestRequest(t, container, doctor.ID)

	assert.Equal(t, models.VerificationStatusPending, resp.Status)
	assert.Equal(t, []string{"uploads/license.pdf", "uploads/diploma.pdf"}, resp.Documents)
	assert.False(t, resp.SubmittedAt.IsZero())
	assert.Nil(t, resp.ReviewedAt)
	assert.Nil(t, resp.ReviewerID)

	// The user mirror flips to pending in the same transaction.
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", doctor.ID).Error)
	assert.Equal(t, models.DoctorVerificationPending, user.DoctorVerificationStatus)
}

func TestVerificationSubmitRequiresDoctorRole(t *testing.T) {
	container, db := newTestContainer(t)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	_, err := container.VerificationService.Submit(student.ID, &dto.SubmitVerificationRequest{
		Documents: []string{"uploads/card.pdf"},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)

	var count int64
	require.NoError(t, db.Model(&models.VerificationRequest{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVerificationSubmitDuplicatePending(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationNone)

	submitTestRequest(t, container, doctor.ID)

	_, err := container.VerificationService.Submit(doctor.ID, &dto.SubmitVerificationRequest{
		Documents: []string{"uploads/other.pdf"},
	})
	assert.ErrorIs(t, err, apperrors.ErrVerificationPending)

	var count int64
	require.NoError(t, db.Model(&models.VerificationRequest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestVerificationApprove(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationNone)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)

	request := submitTestRequest(t, container, doctor.ID)

	resp, err := container.VerificationService.Approve(admin.ID, request.ID)
	require.NoError(t, err)

	assert.Equal(t, models.VerificationStatusApproved, resp.Status)
	require.NotNil(t, resp.ReviewedAt)
	require.NotNil(t, resp.ReviewerID)
	assert.Equal(t, admin.ID, *resp.ReviewerID)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", doctor.ID).Error)
	assert.Equal(t, models.DoctorVerificationVerified, user.DoctorVerificationStatus)
	assert.True(t, user.CanPublishCases())

	// The doctor gets an in-app notification for the decision.
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", doctor.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeVerificationDecision, notifications[0].Type)
}

func TestVerificationRejectRequiresReason(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationNone)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)

	request := submitTestRequest(t, container, doctor.ID)

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := container.VerificationService.Reject(admin.ID, request.ID, reason)
		assert.ErrorIs(t, err, apperrors.ErrRejectionReasonRequired)
	}

	// Nothing was written: the request is still pending.
	var stored models.VerificationRequest
	require.NoError(t, db.First(&stored, "id = ?", request.ID).Error)
	assert.Equal(t, models.VerificationStatusPending, stored.Status)
	assert.Nil(t, stored.ReviewedAt)
}

func TestVerificationRejectPersistsReasonVerbatim(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationNone)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)

	request := submitTestRequest(t, container, doctor.ID)

	const reason = "License number does not match the registry.\nPlease resubmit with a current license."
	resp, err := container.VerificationService.Reject(admin.ID, request.ID, reason)
	require.NoError(t, err)

	assert.Equal(t, models.VerificationStatusRejected, resp.Status)
	assert.Equal(t, reason, resp.RejectionReason)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", doctor.ID).Error)
	assert.Equal(t, models.DoctorVerificationRejected, user.DoctorVerificationStatus)
	assert.Equal(t, reason, user.RejectionReason)
	assert.False(t, user.CanPublishCases())
}

func TestVerificationReviewIsFinal(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationNone)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)
	secondAdmin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)

	request := submitTestRequest(t, container, doctor.ID)

	first, err := container.VerificationService.Approve(admin.ID, request.ID)
	require.NoError(t, err)

	// A second reviewer loses cleanly: the decision is refused and the
	// original review is untouched.
	_, err = container.VerificationService.Reject(secondAdmin.ID, request.ID, "changed my mind")
	assert.ErrorIs(t, err, apperrors.ErrVerificationNotPending)

	_, err = container.VerificationService.Approve(secondAdmin.ID, request.ID)
	assert.ErrorIs(t, err, apperrors.ErrVerificationNotPending)

	var stored models.VerificationRequest
	require.NoError(t, db.First(&stored, "id = ?", request.ID).Error)
	assert.Equal(t, models.VerificationStatusApproved, stored.Status)
	require.NotNil(t, stored.ReviewerID)
	assert.Equal(t, admin.ID, *stored.ReviewerID)
	assert.Equal(t, first.ReviewedAt.Unix(), stored.ReviewedAt.Unix())

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", doctor.ID).Error)
	assert.Equal(t, models.DoctorVerificationVerified, user.DoctorVerificationStatus)
}

func TestVerificationResubmitAfterRejection(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationNone)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)

	first := submitTestRequest(t, container, doctor.ID)
	_, err := container.VerificationService.Reject(admin.ID, first.ID, "blurry documents")
	require.NoError(t, err)

	second := submitTestRequest(t, container, doctor.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.VerificationStatusPending, second.Status)

	// A fresh submission clears the stale rejection reason on the profile.
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", doctor.ID).Error)
	assert.Equal(t, models.DoctorVerificationPending, user.DoctorVerificationStatus)
	assert.Empty(t, user.RejectionReason)

	// The rejected request keeps its history.
	var old models.VerificationRequest
	require.NoError(t, db.First(&old, "id = ?", first.ID).Error)
	assert.Equal(t, models.VerificationStatusRejected, old.Status)
	assert.Equal(t, "blurry documents", old.RejectionReason)
}

func TestVerificationSubmitWhenAlreadyVerified(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)

	_, err := container.VerificationService.Submit(doctor.ID, &dto.SubmitVerificationRequest{
		Documents: []string{"uploads/license.pdf"},
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
}

func TestVerificationGetMyStatus(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationNone)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)

	status, err := container.VerificationService.GetMyStatus(doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DoctorVerificationNone, status.Status)
	assert.Nil(t, status.LatestRequest)

	request := submitTestRequest(t, container, doctor.ID)
	_, err = container.VerificationService.Reject(admin.ID, request.ID, "incomplete")
	require.NoError(t, err)

	status, err = container.VerificationService.GetMyStatus(doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DoctorVerificationRejected, status.Status)
	assert.Equal(t, "incomplete", status.RejectionReason)
	require.NotNil(t, status.LatestRequest)
	assert.Equal(t, request.ID, status.LatestRequest.ID)
}

func TestVerificationListRequests(t *testing.T) {
	container, db := newTestContainer(t)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)

	for i := 0; i < 3; i++ {
		doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationNone)
		submitTestRequest(t, container, doctor.ID)
	}

	list, err := container.VerificationService.ListRequests(models.VerificationStatusPending, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, list.Total)
	require.Len(t, list.Requests, 3)

	// Oldest submission first, so the queue is reviewed in order.
	for i := 1; i < len(list.Requests); i++ {
		assert.False(t, list.Requests[i].SubmittedAt.Before(list.Requests[i-1].SubmittedAt))
	}

	_, err = container.VerificationService.Approve(admin.ID, list.Requests[0].ID)
	require.NoError(t, err)

	list, err = container.VerificationService.ListRequests(models.VerificationStatusPending, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)
}
