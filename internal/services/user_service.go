package services

import (
	"errors"

	"medcase_backend/internal/auth"
	"medcase_backend/internal/models"
	"medcase_backend/internal/repositories"
	"medcase_backend/internal/services/dto"
	"medcase_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(userID string) (*dto.UserResponse, error)
	GetPublicProfile(userID string) (*dto.AuthorResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)

	// Admin operations
	CreateUser(req *dto.AdminCreateUserRequest) (*dto.UserResponse, error)
	ListUsers(filter *dto.AdminUserFilter) (*dto.UserListResponse, error)
	UpdateUserStatus(adminID, userID string, status models.UserStatus) error
	DeleteUser(adminID, userID string) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.UserToResponse(user), nil
}

func (s *userService) GetPublicProfile(userID string) (*dto.AuthorResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.UserToAuthor(user), nil
}

func (s *userService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Specialty != nil {
		fields["specialty"] = *req.Specialty
	}
	if req.Institution != nil {
		fields["institution"] = *req.Institution
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateProfile(userID, fields); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetProfile(userID)
}

func (s *userService) CreateUser(req *dto.AdminCreateUserRequest) (*dto.UserResponse, error) {
	if err := auth.ValidateRole(req.Role); err != nil {
		return nil, apperrors.ErrInvalidUserRole
	}
	role := models.UserRole(req.Role)

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Admin-created accounts skip the email verification loop.
	user := &models.User{
		Email:           req.Email,
		PasswordHash:    hash,
		Role:            role,
		Status:          models.UserStatusActive,
		Name:            req.Name,
		Specialty:       req.Specialty,
		Institution:     req.Institution,
		IsEmailVerified: true,
	}
	if role == models.UserRoleDoctor {
		user.DoctorVerificationStatus = models.DoctorVerificationNone
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.UserToResponse(user), nil
}

func (s *userService) ListUsers(filter *dto.AdminUserFilter) (*dto.UserListResponse, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := s.userRepo.FindWithFilter(repositories.UserFilter{
		Role:               filter.Role,
		Status:             filter.Status,
		VerificationStatus: filter.VerificationStatus,
		DateFrom:           filter.DateFrom,
		DateTo:             filter.DateTo,
		Search:             filter.Search,
		Page:               page,
		PageSize:           pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.UserListResponse{
		Users:    make([]*dto.UserResponse, 0, len(users)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range users {
		resp.Users = append(resp.Users, dto.UserToResponse(&users[i]))
	}
	return resp, nil
}

func (s *userService) UpdateUserStatus(adminID, userID string, status models.UserStatus) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}

	target, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if target.Role == models.UserRoleAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.userRepo.UpdateStatus(userID, status); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) DeleteUser(adminID, userID string) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}

	target, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if target.Role == models.UserRoleAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
