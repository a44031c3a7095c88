package dto

import (
	"time"

	"medcase_backend/internal/models"
)

// UserResponse is the full account view, used for /users/me and admin
// user listings.
type UserResponse struct {
	ID                       string                          `json:"id"`
	Email                    string                          `json:"email"`
	Name                     string                          `json:"name"`
	Role                     models.UserRole                 `json:"role"`
	Status                   models.UserStatus               `json:"status"`
	Specialty                string                          `json:"specialty,omitempty"`
	Institution              string                          `json:"institution,omitempty"`
	AvatarURL                string                          `json:"avatar_url,omitempty"`
	Bio                      string                          `json:"bio,omitempty"`
	IsEmailVerified          bool                            `json:"is_email_verified"`
	DoctorVerificationStatus models.DoctorVerificationStatus `json:"doctor_verification_status"`
	RejectionReason          string                          `json:"rejection_reason,omitempty"`
	CreatedAt                time.Time                       `json:"created_at"`
}

// AuthorResponse is the trimmed public view embedded in cases and comments.
type AuthorResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Role        models.UserRole `json:"role"`
	Specialty   string          `json:"specialty,omitempty"`
	Institution string          `json:"institution,omitempty"`
	AvatarURL   string          `json:"avatar_url,omitempty"`
}

type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Specialty   *string `json:"specialty,omitempty" validate:"omitempty,max=100"`
	Institution *string `json:"institution,omitempty" validate:"omitempty,max=200"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	AvatarURL   *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// AdminUserFilter narrows the admin user listing.
type AdminUserFilter struct {
	Role               models.UserRole                 `form:"role" validate:"omitempty,is-user-role"`
	Status             models.UserStatus               `form:"status"`
	VerificationStatus models.DoctorVerificationStatus `form:"verification_status"`
	DateFrom           *time.Time                      `form:"date_from"`
	DateTo             *time.Time                      `form:"date_to" validate:"omitempty,gtefield=DateFrom"`
	Search             string                          `form:"search"`
	Page               int                             `form:"page" validate:"omitempty,min=1"`
	PageSize           int                             `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required" validate:"required,oneof=active suspended banned"`
}

// AdminCreateUserRequest creates an account from the admin panel. The
// admin role can only be granted here, never through self-registration.
type AdminCreateUserRequest struct {
	Email       string `json:"email" binding:"required" validate:"required,email"`
	Password    string `json:"password" binding:"required" validate:"required,min=8"`
	Name        string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Role        string `json:"role" binding:"required" validate:"required,oneof=student doctor admin"`
	Specialty   string `json:"specialty" validate:"max=100"`
	Institution string `json:"institution" validate:"max=200"`
}

type UserListResponse struct {
	Users    []*UserResponse `json:"users"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

func UserToResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:                       u.ID,
		Email:                    u.Email,
		Name:                     u.Name,
		Role:                     u.Role,
		Status:                   u.Status,
		Specialty:                u.Specialty,
		Institution:              u.Institution,
		AvatarURL:                u.AvatarURL,
		Bio:                      u.Bio,
		IsEmailVerified:          u.IsEmailVerified,
		DoctorVerificationStatus: u.DoctorVerificationStatus,
		RejectionReason:          u.RejectionReason,
		CreatedAt:                u.CreatedAt,
	}
}

func UserToAuthor(u *models.User) *AuthorResponse {
	if u == nil {
		return nil
	}
	return &AuthorResponse{
		ID:          u.ID,
		Name:        u.Name,
		Role:        u.Role,
		Specialty:   u.Specialty,
		Institution: u.Institution,
		AvatarURL:   u.AvatarURL,
	}
}
