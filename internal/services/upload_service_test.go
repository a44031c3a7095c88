package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"medcase_backend/internal/config"
	"medcase_backend/internal/models"
	"medcase_backend/internal/storage"
	"medcase_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadFixture(t *testing.T) (UploadService, *models.User) {
	t.Helper()

	initTestConfig()
	db := newTestDB(t)
	repos := newTestRepos(db)

	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	user := createTestUser(t, db, models.UserRoleDoctor, models.DoctorVerificationVerified)
	return NewUploadService(repos.Uploads, store), user
}

func newFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestUploadFile(t *testing.T) {
	svc, user := newUploadFixture(t)
	ctx := context.Background()

	resp, err := svc.UploadFile(ctx, user.ID, newFileHeader(t, "scan.PNG", "png bytes"), "cases", true)
	require.NoError(t, err)
	assert.Equal(t, "image/png", resp.MimeType)
	assert.Equal(t, "image", resp.FileType)
	assert.Equal(t, "scan.PNG", resp.OriginalName)
	assert.EqualValues(t, len("png bytes"), resp.Size)

	// Stored under the entity prefix with a generated name, not the
	// client-supplied one.
	assert.Contains(t, resp.URL, "/files/cases/")
	assert.NotContains(t, resp.URL, "scan")
}

func TestUploadFileTooLarge(t *testing.T) {
	svc, user := newUploadFixture(t)

	cfg := config.GetConfig()
	prev := cfg.Upload.MaxSize
	cfg.Upload.MaxSize = 4
	t.Cleanup(func() { cfg.Upload.MaxSize = prev })

	_, err := svc.UploadFile(context.Background(), user.ID, newFileHeader(t, "big.png", "way past four bytes"), "cases", true)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestUploadFileTypeWhitelist(t *testing.T) {
	svc, user := newUploadFixture(t)

	cfg := config.GetConfig()
	prev := cfg.Upload.AllowedTypes
	cfg.Upload.AllowedTypes = []string{"image/png", "application/pdf"}
	t.Cleanup(func() { cfg.Upload.AllowedTypes = prev })

	_, err := svc.UploadFile(context.Background(), user.ID, newFileHeader(t, "payload.exe", "MZ"), "cases", true)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	_, err = svc.UploadFile(context.Background(), user.ID, newFileHeader(t, "license.pdf", "%PDF-1.7"), "verification", false)
	require.NoError(t, err)
}

func TestUploadStorageQuota(t *testing.T) {
	svc, user := newUploadFixture(t)
	ctx := context.Background()

	cfg := config.GetConfig()
	prev := cfg.Upload.MaxUserStorage
	cfg.Upload.MaxUserStorage = 15
	t.Cleanup(func() { cfg.Upload.MaxUserStorage = prev })

	_, err := svc.UploadFile(ctx, user.ID, newFileHeader(t, "a.png", "ten bytes."), "cases", true)
	require.NoError(t, err)

	_, err = svc.UploadFile(ctx, user.ID, newFileHeader(t, "b.png", "ten bytes."), "cases", true)
	assert.ErrorIs(t, err, apperrors.ErrStorageLimitExceeded)
}

func TestDeleteUploadOwnerOnly(t *testing.T) {
	svc, user := newUploadFixture(t)
	ctx := context.Background()

	resp, err := svc.UploadFile(ctx, user.ID, newFileHeader(t, "scan.png", "png bytes"), "cases", true)
	require.NoError(t, err)

	err = svc.DeleteUpload(ctx, "someone-else", resp.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	require.NoError(t, svc.DeleteUpload(ctx, user.ID, resp.ID))

	_, err = svc.GetUpload(ctx, resp.ID)
	require.Error(t, err)
}

func TestGetUserUploads(t *testing.T) {
	svc, user := newUploadFixture(t)
	ctx := context.Background()

	_, err := svc.UploadFile(ctx, user.ID, newFileHeader(t, "one.png", "first"), "cases", true)
	require.NoError(t, err)
	_, err = svc.UploadFile(ctx, user.ID, newFileHeader(t, "two.pdf", "second"), "verification", false)
	require.NoError(t, err)

	uploads, total, err := svc.GetUserUploads(user.ID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, uploads, 2)
}
