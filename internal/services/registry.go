package services

import (
	"medcase_backend/internal/email"
	"medcase_backend/internal/repositories"
	"medcase_backend/internal/storage"
)

// ServiceContainer holds every application service, wired once at
// startup.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	CaseService         CaseService
	CommentService      CommentService
	InteractionService  InteractionService
	VerificationService VerificationService
	NotificationService NotificationService
	ModerationService   ModerationService
	AnalyticsService    AnalyticsService
	UploadService       UploadService
	EmailService        email.Provider
}

// Repositories groups the persistence layer handed to NewServiceContainer.
type Repositories struct {
	Users         repositories.UserRepository
	RefreshTokens repositories.RefreshTokenRepository
	Cases         repositories.CaseRepository
	Comments      repositories.CommentRepository
	Interactions  repositories.InteractionRepository
	Verifications repositories.VerificationRepository
	Notifications repositories.NotificationRepository
	Reports       repositories.ReportRepository
	Analytics     repositories.AnalyticsRepository
	Uploads       repositories.UploadRepository
}

func NewServiceContainer(repos Repositories, emailProvider email.Provider, store storage.Storage) *ServiceContainer {
	return &ServiceContainer{
		AuthService:         NewAuthService(repos.Users, repos.RefreshTokens, emailProvider),
		UserService:         NewUserService(repos.Users),
		CaseService:         NewCaseService(repos.Cases, repos.Users, repos.Interactions),
		CommentService:      NewCommentService(repos.Comments, repos.Cases, repos.Users, repos.Notifications),
		InteractionService:  NewInteractionService(repos.Interactions, repos.Cases),
		VerificationService: NewVerificationService(repos.Verifications, repos.Users, repos.Notifications, emailProvider),
		NotificationService: NewNotificationService(repos.Notifications),
		ModerationService:   NewModerationService(repos.Reports, repos.Cases, repos.Comments),
		AnalyticsService:    NewAnalyticsService(repos.Analytics, repos.Reports),
		UploadService:       NewUploadService(repos.Uploads, store),
		EmailService:        emailProvider,
	}
}
