package handlers

import (
	"net/http"

	"medcase_backend/internal/services"
	"medcase_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ReportHandler is the user-facing side of moderation: flagging cases
// and comments for admin review.
type ReportHandler struct {
	*BaseHandler
	moderationService services.ModerationService
}

func NewReportHandler(base *BaseHandler, moderationService services.ModerationService) *ReportHandler {
	return &ReportHandler{
		BaseHandler:       base,
		moderationService: moderationService,
	}
}

func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reports", h.CreateReport)
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	report, err := h.moderationService.ReportContent(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}
