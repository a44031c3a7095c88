package services

import (
	"testing"

	"medcase_backend/internal/models"
	"medcase_backend/internal/services/dto"
	"medcase_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	c := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)

	comment, err := container.CommentService.AddComment(student.ID, c.ID, &dto.CreateCommentRequest{
		Text: "Was an ultrasound considered before the CT?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Was an ultrasound considered before the CT?", comment.Text)
	require.NotNil(t, comment.Author)
	assert.Equal(t, student.ID, comment.Author.ID)

	var stored models.Case
	require.NoError(t, db.First(&stored, "id = ?", c.ID).Error)
	assert.Equal(t, 1, stored.CommentsCount)

	// The case author gets an in-app notification.
	notifications, err := container.NotificationService.ListNotifications(doctor.ID, false, 10, 0)
	require.NoError(t, err)
	require.Len(t, notifications.Notifications, 1)
	assert.Equal(t, models.NotificationTypeNewComment, notifications.Notifications[0].Type)
}

func TestAddCommentOnOwnCaseSkipsNotification(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)

	c := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)

	_, err := container.CommentService.AddComment(doctor.ID, c.ID, &dto.CreateCommentRequest{
		Text: "Follow-up imaging attached in the discussion section.",
	})
	require.NoError(t, err)

	count, err := container.NotificationService.UnreadCount(doctor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestAddCommentOnDraftRefused(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	draft := createTestCase(t, db, doctor.ID, models.CaseStatusDraft)

	_, err := container.CommentService.AddComment(student.ID, draft.ID, &dto.CreateCommentRequest{
		Text: "This should not be possible on a draft.",
	})
	assert.ErrorIs(t, err, apperrors.ErrCaseNotPublished)

	var comments int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.EqualValues(t, 0, comments)
}

func TestDeleteComment(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)
	other := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	c := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)

	comment, err := container.CommentService.AddComment(student.ID, c.ID, &dto.CreateCommentRequest{
		Text: "Deleting this one shortly.",
	})
	require.NoError(t, err)

	// Neither a stranger nor the case author may delete someone else's comment.
	err = container.CommentService.DeleteComment(other.ID, comment.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
	err = container.CommentService.DeleteComment(doctor.ID, comment.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	require.NoError(t, container.CommentService.DeleteComment(student.ID, comment.ID, false))

	var stored models.Case
	require.NoError(t, db.First(&stored, "id = ?", c.ID).Error)
	assert.Equal(t, 0, stored.CommentsCount)
}

func TestDeleteCommentAsAdmin(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)

	c := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)
	comment, err := container.CommentService.AddComment(student.ID, c.ID, &dto.CreateCommentRequest{
		Text: "Off-topic remark slated for moderation.",
	})
	require.NoError(t, err)

	require.NoError(t, container.CommentService.DeleteComment(admin.ID, comment.ID, true))

	list, err := container.CommentService.ListComments(c.ID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, list.Total)
}

func TestListComments(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	c := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)

	texts := []string{
		"First question about the history.",
		"Second question about the workup.",
		"Third question about the outcome.",
	}
	for _, text := range texts {
		_, err := container.CommentService.AddComment(student.ID, c.ID, &dto.CreateCommentRequest{Text: text})
		require.NoError(t, err)
	}

	list, err := container.CommentService.ListComments(c.ID, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, list.Total)
	assert.Len(t, list.Comments, 2)

	_, err = container.CommentService.ListComments("missing-case-id", 10, 0)
	require.Error(t, err)
}
