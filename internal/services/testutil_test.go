package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"medcase_backend/database"
	"medcase_backend/internal/config"
	"medcase_backend/internal/email"
	"medcase_backend/internal/models"
	"medcase_backend/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter int64

// newTestDB opens a fresh in-memory database per test so tests stay
// independent.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	return db
}

func newTestRepos(db *gorm.DB) Repositories {
	return Repositories{
		Users:         repositories.NewUserRepository(db),
		RefreshTokens: repositories.NewRefreshTokenRepository(db),
		Cases:         repositories.NewCaseRepository(db),
		Comments:      repositories.NewCommentRepository(db),
		Interactions:  repositories.NewInteractionRepository(db),
		Verifications: repositories.NewVerificationRepository(db),
		Notifications: repositories.NewNotificationRepository(db),
		Reports:       repositories.NewReportRepository(db),
		Analytics:     repositories.NewAnalyticsRepository(db),
		Uploads:       repositories.NewUploadRepository(db),
	}
}

func newTestContainer(t *testing.T) (*ServiceContainer, *gorm.DB) {
	t.Helper()

	initTestConfig()
	db := newTestDB(t)
	container := NewServiceContainer(newTestRepos(db), email.NewNoopProvider(), nil)
	return container, db
}

func initTestConfig() {
	if config.AppConfig != nil {
		return
	}
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Upload.MaxSize = 10 * 1024 * 1024
	config.AppConfig = cfg
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole, verification models.DoctorVerificationStatus) *models.User {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	user := &models.User{
		Email:                    fmt.Sprintf("user%d@example.com", n),
		PasswordHash:             "$2a$10$notarealhashnotarealhashnotarealhash",
		Role:                     role,
		Status:                   models.UserStatusActive,
		Name:                     fmt.Sprintf("User %d", n),
		IsEmailVerified:          true,
		DoctorVerificationStatus: verification,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCase(t *testing.T, db *gorm.DB, authorID string, status models.CaseStatus) *models.Case {
	t.Helper()

	c := &models.Case{
		AuthorID:  authorID,
		Title:     "Atypical presentation of appendicitis",
		Specialty: "surgery",
		Status:    status,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}
