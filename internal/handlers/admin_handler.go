package handlers

import (
	"net/http"

	"medcase_backend/internal/models"
	"medcase_backend/internal/services"
	"medcase_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin dashboards: analytics, user management
// and moderation. Verification review has its own handler.
type AdminHandler struct {
	*BaseHandler
	userService       services.UserService
	analyticsService  services.AnalyticsService
	moderationService services.ModerationService
}

func NewAdminHandler(
	base *BaseHandler,
	userService services.UserService,
	analyticsService services.AnalyticsService,
	moderationService services.ModerationService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:       base,
		userService:       userService,
		analyticsService:  analyticsService,
		moderationService: moderationService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.GetDashboard)

	analytics := rg.Group("/analytics")
	{
		analytics.GET("/cases", h.GetCaseStats)
		analytics.GET("/cases/top", h.GetTopCases)
		analytics.GET("/registrations", h.GetRegistrationStats)
	}

	users := rg.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.PATCH("/:id/status", h.UpdateUserStatus)
		users.DELETE("/:id", h.DeleteUser)
	}

	reports := rg.Group("/reports")
	{
		reports.GET("", h.ListReports)
		reports.GET("/:id", h.GetReport)
		reports.POST("/:id/resolve", h.ResolveReport)
		reports.POST("/:id/dismiss", h.DismissReport)
	}
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	resp, err := h.analyticsService.GetDashboard()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) GetCaseStats(c *gin.Context) {
	var filter dto.CaseStatsFilter
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}

	stats, err := h.analyticsService.GetCaseStats(&filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) GetTopCases(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 10)

	resp, err := h.analyticsService.GetTopCases(limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) GetRegistrationStats(c *gin.Context) {
	days := ParseQueryInt(c, "days", 30)

	stats, err := h.analyticsService.GetRegistrationStats(days)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var filter dto.AdminUserFilter
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}

	resp, err := h.userService.ListUsers(&filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.UpdateUserStatus(adminID, c.Param("id"), req.Status); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user status updated"})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(adminID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	status := models.ReportStatus(c.DefaultQuery("status", string(models.ReportStatusOpen)))

	limit, offset := ParsePagination(c)
	resp, err := h.moderationService.ListReports(status, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) GetReport(c *gin.Context) {
	resp, err := h.moderationService.GetReport(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ResolveReport(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ResolveReportRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.moderationService.ResolveReport(adminID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "report resolved"})
}

func (h *AdminHandler) DismissReport(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.moderationService.DismissReport(adminID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "report dismissed"})
}
