package services

import (
	"fmt"
	"testing"
	"time"

	"medcase_backend/internal/models"
	"medcase_backend/internal/services/dto"
	"medcase_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCaseRequiresVerifiedDoctor(t *testing.T) {
	container, db := newTestContainer(t)

	req := &dto.CreateCaseRequest{
		Title:     "Pediatric wrist fracture",
		Specialty: "orthopedics",
		Publish:   true,
	}

	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)
	_, err := container.CaseService.CreateCase(student.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrDoctorNotVerified)

	unverified := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationPending)
	_, err = container.CaseService.CreateCase(unverified.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrDoctorNotVerified)

	rejected := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationRejected)
	_, err = container.CaseService.CreateCase(rejected.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrDoctorNotVerified)

	verified := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	created, err := container.CaseService.CreateCase(verified.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusPublished, created.Status)
	require.NotNil(t, created.PublishedAt)
}

func TestCreateCaseAsDraftAndPublish(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)

	created, err := container.CaseService.CreateCase(doctor.ID, &dto.CreateCaseRequest{
		Title:           "Silent myocardial infarction",
		Specialty:       "cardiology",
		Tags:            []string{"ecg", "elderly"},
		ClinicalHistory: "72yo presenting with fatigue, no chest pain.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusDraft, created.Status)
	assert.Nil(t, created.PublishedAt)
	assert.Equal(t, []string{"ecg", "elderly"}, created.Tags)

	published, err := container.CaseService.PublishCase(doctor.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	// Publishing an already published case is refused.
	_, err = container.CaseService.PublishCase(doctor.ID, created.ID)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestDraftVisibleOnlyToAuthor(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	draft := createTestCase(t, db, doctor.ID, models.CaseStatusDraft)

	_, err := container.CaseService.GetCase(draft.ID, doctor.ID)
	require.NoError(t, err)

	_, err = container.CaseService.GetCase(draft.ID, student.ID)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestGetCaseIncrementsViews(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	c := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)

	for i := 0; i < 3; i++ {
		_, err := container.CaseService.GetCase(c.ID, student.ID)
		require.NoError(t, err)
	}

	// The author's own views do not count.
	_, err := container.CaseService.GetCase(c.ID, doctor.ID)
	require.NoError(t, err)

	var stored models.Case
	require.NoError(t, db.First(&stored, "id = ?", c.ID).Error)
	assert.Equal(t, 3, stored.ViewsCount)
}

func TestUpdateCaseOnlyByAuthor(t *testing.T) {
	container, db := newTestContainer(t)
	author := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	other := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)

	c := createTestCase(t, db, author.ID, models.CaseStatusPublished)

	title := "Updated title for the case"
	_, err := container.CaseService.UpdateCase(other.ID, c.ID, &dto.UpdateCaseRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrNotCaseAuthor)

	updated, err := container.CaseService.UpdateCase(author.ID, c.ID, &dto.UpdateCaseRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
}

func TestRemoveCase(t *testing.T) {
	container, db := newTestContainer(t)
	author := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	other := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)

	c := createTestCase(t, db, author.ID, models.CaseStatusPublished)

	err := container.CaseService.RemoveCase(other.ID, c.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrNotCaseAuthor)

	// An admin can remove someone else's case.
	require.NoError(t, container.CaseService.RemoveCase(other.ID, c.ID, true))

	var stored models.Case
	require.NoError(t, db.First(&stored, "id = ?", c.ID).Error)
	assert.Equal(t, models.CaseStatusRemoved, stored.Status)

	// Removed cases disappear from readers.
	_, err = container.CaseService.GetCase(c.ID, other.ID)
	require.Error(t, err)
}

func TestFeedCursorPagination(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		c := &models.Case{
			AuthorID:  doctor.ID,
			Title:     fmt.Sprintf("Case number %d in the feed", i),
			Specialty: "surgery",
			Status:    models.CaseStatusPublished,
			BaseModel: models.BaseModel{CreatedAt: base.Add(time.Duration(i) * time.Minute)},
		}
		require.NoError(t, db.Create(c).Error)
	}
	// Drafts never appear in the feed.
	createTestCase(t, db, doctor.ID, models.CaseStatusDraft)

	page1, err := container.CaseService.GetFeed(student.ID, &dto.CaseFeedFilter{Limit: 3})
	require.NoError(t, err)
	require.Len(t, page1.Cases, 3)
	require.NotNil(t, page1.NextCursor)

	// Newest first.
	assert.Equal(t, "Case number 4 in the feed", page1.Cases[0].Title)

	page2, err := container.CaseService.GetFeed(student.ID, &dto.CaseFeedFilter{
		Limit:  3,
		Cursor: page1.NextCursor,
	})
	require.NoError(t, err)
	require.Len(t, page2.Cases, 2)
	assert.Nil(t, page2.NextCursor)

	// No overlap between pages.
	seen := map[string]bool{}
	for _, c := range page1.Cases {
		seen[c.ID] = true
	}
	for _, c := range page2.Cases {
		assert.False(t, seen[c.ID])
	}
}

func TestFeedCursorTimestampTies(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	// Bulk imports land whole batches on one timestamp.
	stamp := time.Now().Add(-time.Hour).Truncate(time.Second)
	ids := map[string]bool{}
	for i := 0; i < 4; i++ {
		c := &models.Case{
			AuthorID:  doctor.ID,
			Title:     fmt.Sprintf("Imported case %d", i),
			Specialty: "radiology",
			Status:    models.CaseStatusPublished,
			BaseModel: models.BaseModel{CreatedAt: stamp},
		}
		require.NoError(t, db.Create(c).Error)
		ids[c.ID] = false
	}

	page1, err := container.CaseService.GetFeed(student.ID, &dto.CaseFeedFilter{Limit: 3})
	require.NoError(t, err)
	require.Len(t, page1.Cases, 3)
	require.NotNil(t, page1.NextCursor)
	require.NotEmpty(t, page1.NextCursorID)

	page2, err := container.CaseService.GetFeed(student.ID, &dto.CaseFeedFilter{
		Limit:    3,
		Cursor:   page1.NextCursor,
		CursorID: page1.NextCursorID,
	})
	require.NoError(t, err)
	require.Len(t, page2.Cases, 1)

	// Every case seen exactly once across the boundary.
	for _, c := range append(page1.Cases, page2.Cases...) {
		seen, known := ids[c.ID]
		require.True(t, known)
		require.False(t, seen, "case %s returned twice", c.ID)
		ids[c.ID] = true
	}
	for id, seen := range ids {
		assert.True(t, seen, "case %s skipped", id)
	}
}

func TestFeedSpecialtyFilter(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	surgery := createTestCase(t, db, doctor.ID, models.CaseStatusPublished)
	cardio := &models.Case{
		AuthorID:  doctor.ID,
		Title:     "Rhythm disturbance after ablation",
		Specialty: "cardiology",
		Status:    models.CaseStatusPublished,
	}
	require.NoError(t, db.Create(cardio).Error)

	feed, err := container.CaseService.GetFeed(student.ID, &dto.CaseFeedFilter{Specialty: "cardiology"})
	require.NoError(t, err)
	require.Len(t, feed.Cases, 1)
	assert.Equal(t, cardio.ID, feed.Cases[0].ID)
	assert.NotEqual(t, surgery.ID, feed.Cases[0].ID)
}

func TestGetMyCasesIncludesDrafts(t *testing.T) {
	container, db := newTestContainer(t)
	doctor := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)

	createTestCase(t, db, doctor.ID, models.CaseStatusDraft)
	createTestCase(t, db, doctor.ID, models.CaseStatusPublished)

	mine, err := container.CaseService.GetMyCases(doctor.ID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, mine.Total)

	public, err := container.CaseService.GetAuthorCases(doctor.ID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, public.Total)
	assert.Equal(t, models.CaseStatusPublished, public.Cases[0].Status)
}
