package services

import (
	"testing"
	"time"

	"medcase_backend/internal/models"
	"medcase_backend/internal/services/dto"
	"medcase_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	container, db := newTestContainer(t)
	user := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)

	name := "Dr. Renamed"
	bio := "Consultant radiologist, 12 years in practice."
	updated, err := container.UserService.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Name: &name,
		Bio:  &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, bio, updated.Bio)

	// Untouched fields survive a partial update.
	assert.Equal(t, user.Email, updated.Email)

	// An empty update is a no-op, not an error.
	again, err := container.UserService.UpdateProfile(user.ID, &dto.UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, name, again.Name)
}

func TestGetPublicProfileOmitsPrivateFields(t *testing.T) {
	container, db := newTestContainer(t)
	user := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)

	public, err := container.UserService.GetPublicProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, public.ID)
	assert.Equal(t, user.Name, public.Name)

	_, err = container.UserService.GetPublicProfile("no-such-user")
	require.Error(t, err)
}

func TestAdminCreateUser(t *testing.T) {
	container, _ := newTestContainer(t)

	created, err := container.UserService.CreateUser(&dto.AdminCreateUserRequest{
		Email:    "moderator@clinic.test",
		Password: "Str0ngEnough!",
		Name:     "Second Admin",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, created.Role)
	assert.Equal(t, models.UserStatusActive, created.Status)
	assert.True(t, created.IsEmailVerified)

	// Admin-created accounts can log in right away.
	_, err = container.AuthService.Login(&dto.LoginRequest{
		Email:    "moderator@clinic.test",
		Password: "Str0ngEnough!",
	})
	require.NoError(t, err)

	_, err = container.UserService.CreateUser(&dto.AdminCreateUserRequest{
		Email:    "moderator@clinic.test",
		Password: "Str0ngEnough!",
		Name:     "Duplicate",
		Role:     "student",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = container.UserService.CreateUser(&dto.AdminCreateUserRequest{
		Email:    "owner@clinic.test",
		Password: "Str0ngEnough!",
		Name:     "Bad Role",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestListUsersFilter(t *testing.T) {
	container, db := newTestContainer(t)
	createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)
	createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)
	createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationPending)

	all, err := container.UserService.ListUsers(&dto.AdminUserFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, all.Total)

	students, err := container.UserService.ListUsers(&dto.AdminUserFilter{Role: models.UserRoleStudent})
	require.NoError(t, err)
	assert.EqualValues(t, 2, students.Total)

	pending, err := container.UserService.ListUsers(&dto.AdminUserFilter{
		Role:               models.UserRoleDoctor,
		VerificationStatus: models.DoctorVerificationPending,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending.Total)

	paged, err := container.UserService.ListUsers(&dto.AdminUserFilter{Page: 1, PageSize: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 4, paged.Total)
	assert.Len(t, paged.Users, 3)
}

func TestUpdateUserStatus(t *testing.T) {
	container, db := newTestContainer(t)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)
	otherAdmin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	err := container.UserService.UpdateUserStatus(admin.ID, admin.ID, models.UserStatusSuspended)
	assert.ErrorIs(t, err, apperrors.ErrCannotModifySelf)

	err = container.UserService.UpdateUserStatus(admin.ID, otherAdmin.ID, models.UserStatusSuspended)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	require.NoError(t, container.UserService.UpdateUserStatus(admin.ID, student.ID, models.UserStatusSuspended))

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", student.ID).Error)
	assert.Equal(t, models.UserStatusSuspended, stored.Status)
}

func TestDeleteUser(t *testing.T) {
	container, db := newTestContainer(t)
	admin := createTestUser(t, db, models.UserRoleAdmin, models.DoctorVerificationNone)
	student := createTestUser(t, db, models.UserRoleStudent, models.DoctorVerificationNone)

	err := container.UserService.DeleteUser(admin.ID, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrCannotModifySelf)

	// Give the target a session; deletion must take it down too.
	require.NoError(t, db.Create(&models.RefreshToken{
		UserID:    student.ID,
		Token:     "session-to-be-revoked",
		ExpiresAt: time.Now().Add(time.Hour),
	}).Error)

	require.NoError(t, container.UserService.DeleteUser(admin.ID, student.ID))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", student.ID).Count(&users).Error)
	assert.EqualValues(t, 0, users)

	var tokens int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Where("user_id = ?", student.ID).Count(&tokens).Error)
	assert.EqualValues(t, 0, tokens)
}
