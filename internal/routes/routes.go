package routes

import (
	"medcase_backend/internal/handlers"
	"medcase_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the full HTTP API.
//
// /api/v1          public: registration, login, token refresh
// /api/v1 (auth)   everything a signed-in student or doctor can do
// /api/v1/admin    admin dashboards, gated by role
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers) {
	appHandlers.HealthHandler.RegisterRoutes(router)

	api := router.Group("/api/v1")

	authorized := api.Group("")
	authorized.Use(middleware.AuthMiddleware())

	appHandlers.AuthHandler.RegisterRoutes(api, authorized)

	{
		appHandlers.UserHandler.RegisterRoutes(authorized)
		appHandlers.CaseHandler.RegisterRoutes(authorized)
		appHandlers.InteractionHandler.RegisterRoutes(authorized)
		appHandlers.VerificationHandler.RegisterRoutes(authorized)
		appHandlers.NotificationHandler.RegisterRoutes(authorized)
		appHandlers.ReportHandler.RegisterRoutes(authorized)
		appHandlers.UploadHandler.RegisterRoutes(authorized)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequirePermission("system:admin"))
	{
		appHandlers.AdminHandler.RegisterRoutes(admin)
		appHandlers.VerificationHandler.RegisterAdminRoutes(admin)
	}
}
