package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"medcase_backend/internal/config"
	"medcase_backend/internal/logger"
	"medcase_backend/internal/models"
	"medcase_backend/internal/repositories"
	"medcase_backend/internal/services/dto"
	"medcase_backend/internal/storage"
	"medcase_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type UploadService interface {
	UploadFile(ctx context.Context, userID string, file *multipart.FileHeader, entityType string, isPublic bool) (*dto.UploadResponse, error)
	GetUpload(ctx context.Context, uploadID string) (*dto.UploadResponse, error)
	GetUserUploads(userID string, limit, offset int) ([]*dto.UploadResponse, int64, error)
	DeleteUpload(ctx context.Context, userID, uploadID string) error
}

type uploadService struct {
	uploadRepo repositories.UploadRepository
	store      storage.Storage
}

func NewUploadService(uploadRepo repositories.UploadRepository, store storage.Storage) UploadService {
	return &uploadService{
		uploadRepo: uploadRepo,
		store:      store,
	}
}

func (s *uploadService) UploadFile(ctx context.Context, userID string, file *multipart.FileHeader, entityType string, isPublic bool) (*dto.UploadResponse, error) {
	cfg := config.GetConfig()

	if err := s.validateFile(file, cfg.Upload.MaxSize, cfg.Upload.AllowedTypes); err != nil {
		return nil, err
	}
	if err := s.checkStorageLimit(userID, file.Size, cfg.Upload.MaxUserStorage); err != nil {
		return nil, err
	}

	mimeType := mimeTypeFromFilename(file.Filename)
	path := filepath.ToSlash(filepath.Join(
		entityType,
		fmt.Sprintf("%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(file.Filename))),
	))

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	if err := s.store.Save(ctx, path, src, mimeType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, path)
	if err != nil {
		logger.WithError(err).Warn("failed to resolve upload url", "path", path)
	}

	upload := &models.Upload{
		UserID:          userID,
		EntityType:      entityType,
		FileType:        fileTypeFromMIME(mimeType),
		Path:            path,
		MimeType:        mimeType,
		Size:            file.Size,
		IsPublic:        isPublic,
		OriginalName:    file.Filename,
		URL:             url,
		StorageProvider: cfg.Storage.Type,
	}
	if err := s.uploadRepo.Create(upload); err != nil {
		// Roll back the stored object so the bucket does not accumulate
		// records the database never saw.
		if delErr := s.store.Delete(ctx, path); delErr != nil {
			logger.WithError(delErr).Warn("failed to delete orphaned file", "path", path)
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.UploadToResponse(upload), nil
}

func (s *uploadService) GetUpload(ctx context.Context, uploadID string) (*dto.UploadResponse, error) {
	upload, err := s.uploadRepo.FindByID(uploadID)
	if err != nil {
		if errors.Is(err, repositories.ErrUploadNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.UploadToResponse(upload)
	if !upload.IsPublic {
		signed, err := s.store.GetSignedURL(ctx, upload.Path, 15*time.Minute)
		if err == nil {
			resp.URL = signed
		}
	}
	return resp, nil
}

func (s *uploadService) GetUserUploads(userID string, limit, offset int) ([]*dto.UploadResponse, int64, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	uploads, total, err := s.uploadRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	out := make([]*dto.UploadResponse, 0, len(uploads))
	for i := range uploads {
		out = append(out, dto.UploadToResponse(&uploads[i]))
	}
	return out, total, nil
}

func (s *uploadService) DeleteUpload(ctx context.Context, userID, uploadID string) error {
	upload, err := s.uploadRepo.FindByID(uploadID)
	if err != nil {
		if errors.Is(err, repositories.ErrUploadNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if upload.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.uploadRepo.Delete(uploadID); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.store.Delete(ctx, upload.Path); err != nil {
		logger.WithError(err).Warn("failed to delete stored file", "path", upload.Path)
	}
	return nil
}

func (s *uploadService) validateFile(file *multipart.FileHeader, maxSize int64, allowedTypes []string) error {
	if maxSize > 0 && file.Size > maxSize {
		return apperrors.ErrFileTooLarge
	}

	mimeType := mimeTypeFromFilename(file.Filename)
	if len(allowedTypes) > 0 {
		allowed := false
		for _, t := range allowedTypes {
			if t == mimeType {
				allowed = true
				break
			}
		}
		if !allowed {
			return apperrors.ErrInvalidFileType
		}
	}
	return nil
}

func (s *uploadService) checkStorageLimit(userID string, fileSize, maxStorage int64) error {
	if maxStorage <= 0 {
		return nil
	}

	used, err := s.uploadRepo.GetUserStorageUsed(userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if used+fileSize > maxStorage {
		return apperrors.ErrStorageLimitExceeded
	}
	return nil
}

func mimeTypeFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func fileTypeFromMIME(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	default:
		return "document"
	}
}
