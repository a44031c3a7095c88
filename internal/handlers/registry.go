package handlers

import (
	"medcase_backend/internal/services"
	"medcase_backend/internal/validator"
)

// AppHandlers holds every HTTP handler, constructed once at startup.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	CaseHandler         *CaseHandler
	InteractionHandler  *InteractionHandler
	VerificationHandler *VerificationHandler
	NotificationHandler *NotificationHandler
	ReportHandler       *ReportHandler
	AdminHandler        *AdminHandler
	UploadHandler       *UploadHandler
	HealthHandler       *HealthHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, container.AuthService, container.UserService),
		UserHandler:         NewUserHandler(base, container.UserService, container.CaseService),
		CaseHandler:         NewCaseHandler(base, container.CaseService, container.CommentService),
		InteractionHandler:  NewInteractionHandler(base, container.InteractionService, container.CommentService),
		VerificationHandler: NewVerificationHandler(base, container.VerificationService),
		NotificationHandler: NewNotificationHandler(base, container.NotificationService),
		ReportHandler:       NewReportHandler(base, container.ModerationService),
		AdminHandler:        NewAdminHandler(base, container.UserService, container.AnalyticsService, container.ModerationService),
		UploadHandler:       NewUploadHandler(base, container.UploadService),
		HealthHandler:       NewHealthHandler(base),
	}
}
